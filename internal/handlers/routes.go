package handlers

import (
	"etalase/internal/images"
	"etalase/internal/middleware"
	"etalase/internal/models"
	"etalase/internal/services"
	"etalase/internal/validators"
	"etalase/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Roles allowed on write routes when auth is enabled.
var (
	editors = []string{models.RoleAdmin, models.RoleManager}
	admins  = []string{models.RoleAdmin}
)

// Guard protects write routes. The zero Guard lets every request through.
type Guard struct {
	auth fiber.Handler
}

// NewGuard requires a valid bearer token on guarded routes.
func NewGuard(tokens middleware.TokenValidator, log *logger.Logger) Guard {
	return Guard{auth: middleware.AuthRequired(tokens, log)}
}

func (g Guard) with(roles []string, handlers ...fiber.Handler) []fiber.Handler {
	if g.auth == nil {
		return handlers
	}
	return append([]fiber.Handler{g.auth, middleware.AllowedTo(roles...)}, handlers...)
}

// Deps are the collaborators of the API handlers.
type Deps struct {
	Validate *validator.Validate
	Images   images.Store
	Guard    Guard
	Log      *logger.Logger

	Categories    *services.CategoryService
	SubCategories *services.SubCategoryService
	Brands        *services.BrandService
	Products      *services.ProductService
	Auth          *services.AuthService

	// Lookups used by the request validators.
	CategoryLookup    validators.Exister
	BrandLookup       validators.Exister
	SubCategoryLookup validators.SubCategoryFinder
	ProductLookup     validators.ProductFinder
}

// Register mounts the catalog API under /api/v1.
func Register(router fiber.Router, d Deps) {
	api := router.Group("/api/v1")

	subcategories := NewSubCategoryHandler(d)
	NewCategoryHandler(d, subcategories).RegisterRoutes(api)
	subcategories.RegisterRoutes(api)
	NewBrandHandler(d).RegisterRoutes(api)
	NewProductHandler(d).RegisterRoutes(api)
	NewAuthHandler(d).RegisterRoutes(api)
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": data})
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"data": data})
}
