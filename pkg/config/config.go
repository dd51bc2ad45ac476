package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Runtime modes.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config groups the application settings. It is loaded once in main and
// passed down explicitly.
type Config struct {
	App    AppConfig
	DB     DBConfig
	MQ     MQConfig
	Auth   AuthConfig
	Images ImagesConfig
}

// AppConfig holds general runtime settings.
type AppConfig struct {
	Env      string // development or production
	Port     string
	BaseURL  string
	LogLevel string
	DocsPath string
}

// IsDevelopment reports whether verbose diagnostics should be exposed.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// DBConfig selects the GORM dialect and its DSN.
type DBConfig struct {
	Driver string // postgres, mysql or sqlite
	DSN    string
}

// MQConfig holds the RabbitMQ settings. An empty URL disables catalog events.
type MQConfig struct {
	URL      string
	Exchange string
}

// AuthConfig holds the JWT settings.
type AuthConfig struct {
	Enabled   bool
	JWTSecret string
	ExpiresIn time.Duration
}

// ImagesConfig selects where uploaded images end up.
type ImagesConfig struct {
	Store         string // local or cloudinary
	UploadsDir    string
	CloudinaryURL string
}

// Load reads the configuration from the environment and, when present, from
// config.env in the working directory. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile("config.env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // the file is optional

	setDefaults(v)
	v.AutomaticEnv()

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			BaseURL:  v.GetString("BASE_URL"),
			LogLevel: v.GetString("LOG_LEVEL"),
			DocsPath: v.GetString("DOCS_PATH"),
		},
		DB: DBConfig{
			Driver: v.GetString("DB_DRIVER"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		MQ: MQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		Auth: AuthConfig{
			Enabled:   v.GetBool("AUTH_ENABLED"),
			JWTSecret: v.GetString("JWT_SECRET"),
			ExpiresIn: v.GetDuration("JWT_EXPIRES_IN"),
		},
		Images: ImagesConfig{
			Store:         v.GetString("IMAGE_STORE"),
			UploadsDir:    v.GetString("UPLOADS_DIR"),
			CloudinaryURL: v.GetString("CLOUDINARY_URL"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("APP_PORT", ":8000")
	v.SetDefault("BASE_URL", "http://localhost:8000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DOCS_PATH", "./docs/swagger.json")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=etalase port=5432 sslmode=disable")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "catalog")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRES_IN", "24h")
	v.SetDefault("IMAGE_STORE", "local")
	v.SetDefault("UPLOADS_DIR", "uploads")
	v.SetDefault("CLOUDINARY_URL", "")
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.App.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("invalid APP_ENV %q: want %s or %s", c.App.Env, EnvDevelopment, EnvProduction)
	}
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is set")
	}
	if c.Auth.ExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive")
	}
	switch c.Images.Store {
	case "local":
	case "cloudinary":
		if c.Images.CloudinaryURL == "" {
			return fmt.Errorf("CLOUDINARY_URL is required when IMAGE_STORE is cloudinary")
		}
	default:
		return fmt.Errorf("unsupported IMAGE_STORE %q", c.Images.Store)
	}
	return nil
}
