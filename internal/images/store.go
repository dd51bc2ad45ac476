// Package images resizes uploaded pictures and stores them locally or on
// Cloudinary.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"etalase/internal/apperror"
	"etalase/pkg/config"
	"etalase/pkg/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sony/gobreaker"
)

// Store persists an encoded image and returns its public URL.
type Store interface {
	Save(ctx context.Context, folder, name string, data []byte) (string, error)
}

// LocalStore writes images below a directory served under /uploads.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *LocalStore) Save(_ context.Context, folder, name string, data []byte) (string, error) {
	dir := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", name, err)
	}
	return s.baseURL + "/uploads/" + folder + "/" + name, nil
}

// CloudinaryStore uploads images to Cloudinary. Calls go through a circuit
// breaker so an outage fails uploads fast instead of holding requests.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
	cb  *gobreaker.CircuitBreaker
}

func NewCloudinaryStore(cloudinaryURL string, log *logger.Logger) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}

	settings := gobreaker.Settings{
		Name:        "Cloudinary",
		MaxRequests: 3,
		Interval:    5 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().
				Str("name", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	}

	return &CloudinaryStore{cld: cld, cb: gobreaker.NewCircuitBreaker(settings)}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, folder, name string, data []byte) (string, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
			Folder:   folder,
			PublicID: strings.TrimSuffix(name, path.Ext(name)),
		})
		if err != nil {
			return nil, err
		}
		if result.SecureURL == "" {
			return nil, fmt.Errorf("cloudinary returned no url for %s", name)
		}
		return result.SecureURL, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", apperror.New(http.StatusServiceUnavailable, "Image storage is temporarily unavailable")
		}
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return res.(string), nil
}

// NewStore builds the store selected by cfg. Local files are served below
// baseURL.
func NewStore(cfg config.ImagesConfig, baseURL string, log *logger.Logger) (Store, error) {
	switch cfg.Store {
	case "", "local":
		return NewLocalStore(cfg.UploadsDir, baseURL), nil
	case "cloudinary":
		return NewCloudinaryStore(cfg.CloudinaryURL, log)
	default:
		return nil, fmt.Errorf("unsupported image store %q", cfg.Store)
	}
}
