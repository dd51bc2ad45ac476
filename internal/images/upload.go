package images

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"etalase/internal/apperror"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Field describes one multipart file field and the size its images are
// cropped to.
type Field struct {
	Name     string
	MaxCount int
	Width    int
	Height   int
}

const jpegQuality = 95

type uploadsKey struct{}

// Upload processes the image fields of a multipart request and records the
// stored URLs for the request validator. Requests of any other content type
// pass through untouched.
func Upload(store Store, folder string, fields ...Field) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
			return c.Next()
		}
		form, err := c.MultipartForm()
		if err != nil {
			return apperror.BadRequest("Invalid multipart form")
		}

		uploads := make(map[string][]string)
		for _, f := range fields {
			files := form.File[f.Name]
			if len(files) > f.MaxCount {
				return apperror.BadRequest(fmt.Sprintf("Too many files for %s, max %d", f.Name, f.MaxCount))
			}
			for _, fh := range files {
				if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image") {
					return apperror.BadRequest("Only Images allowed")
				}
				url, err := save(c.UserContext(), store, folder, fh, f)
				if err != nil {
					return err
				}
				uploads[f.Name] = append(uploads[f.Name], url)
			}
		}

		c.Locals(uploadsKey{}, uploads)
		return c.Next()
	}
}

// Uploaded returns the URLs stored by Upload, keyed by form field.
func Uploaded(c *fiber.Ctx) map[string][]string {
	u, _ := c.Locals(uploadsKey{}).(map[string][]string)
	return u
}

func save(ctx context.Context, store Store, folder string, fh *multipart.FileHeader, f Field) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", apperror.BadRequest("Only Images allowed")
	}
	img = imaging.Fill(img, f.Width, f.Height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", fh.Filename, err)
	}

	name := fmt.Sprintf("%s-%s-%d.jpeg", folder, uuid.NewString(), time.Now().UnixMilli())
	return store.Save(ctx, folder, name, buf.Bytes())
}
