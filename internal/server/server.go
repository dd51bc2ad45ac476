// Package server assembles the Fiber application: ambient middleware,
// operational endpoints and the catalog API.
package server

import (
	"os"
	"time"

	"etalase/internal/handlers"
	"etalase/internal/images"
	"etalase/internal/metrics"
	"etalase/internal/middleware"
	"etalase/internal/repositories"
	"etalase/internal/services"
	"etalase/internal/validators"
	"etalase/pkg/config"
	"etalase/pkg/logger"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

const bodyLimit = 20 * 1024 * 1024

// Options are the dependencies built once in main.
type Options struct {
	Config *config.Config
	Log    *logger.Logger
	DB     *gorm.DB
	// Publisher receives catalog events. Nil disables them.
	Publisher services.EventPublisher
	Images    images.Store
}

// New builds the application. Nothing is shared between two apps except what
// opts carries.
func New(opts Options) *fiber.App {
	cfg, log := opts.Config, opts.Log
	dev := cfg.App.IsDevelopment()

	app := fiber.New(fiber.Config{
		AppName:      "etalase",
		ErrorHandler: middleware.ErrorHandler(dev, log),
		BodyLimit:    bodyLimit,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	m := metrics.New()
	app.Use(recover.New(recover.Config{EnableStackTrace: dev}))
	app.Use(m.Middleware())
	if dev {
		app.Use(fiberlogger.New())
	}

	if _, err := os.Stat(cfg.App.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsPath,
			Path:     "docs",
			Title:    "Etalase API",
		}))
	}

	app.Get("/health", health(opts.DB))
	app.Get("/metrics", m.Handler())
	app.Static("/uploads", cfg.Images.UploadsDir)

	categoryRepo := repositories.NewGORMCategoryRepository(opts.DB)
	subCategoryRepo := repositories.NewGORMSubCategoryRepository(opts.DB)
	brandRepo := repositories.NewGORMBrandRepository(opts.DB)
	productRepo := repositories.NewGORMProductRepository(opts.DB)
	userRepo := repositories.NewGORMUserRepository(opts.DB)

	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.ExpiresIn, log)

	var guard handlers.Guard
	if cfg.Auth.Enabled {
		guard = handlers.NewGuard(authService, log)
	}

	store := opts.Images
	if store == nil {
		store = images.NewLocalStore(cfg.Images.UploadsDir, cfg.App.BaseURL)
	}

	handlers.Register(app, handlers.Deps{
		Validate: validators.NewValidate(),
		Images:   store,
		Guard:    guard,
		Log:      log,

		Categories:    services.NewCategoryService(categoryRepo, opts.Publisher, log),
		SubCategories: services.NewSubCategoryService(subCategoryRepo, opts.Publisher, log),
		Brands:        services.NewBrandService(brandRepo, opts.Publisher, log),
		Products:      services.NewProductService(productRepo, opts.Publisher, log),
		Auth:          authService,

		CategoryLookup:    categoryRepo,
		BrandLookup:       brandRepo,
		SubCategoryLookup: subCategoryRepo,
		ProductLookup:     productRepo,
	})

	app.Use(middleware.NotFound)
	return app
}

func health(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "database": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
