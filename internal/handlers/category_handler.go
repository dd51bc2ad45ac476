package handlers

import (
	"etalase/internal/dto"
	"etalase/internal/images"
	"etalase/internal/services"
	"etalase/internal/validators"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service       *services.CategoryService
	subcategories *SubCategoryHandler
	guard         Guard
	upload        fiber.Handler

	id     *validators.Chain[dto.IDParam]
	create *validators.Chain[dto.CreateCategoryInput]
	update *validators.Chain[dto.UpdateCategoryInput]
}

// NewCategoryHandler creates a new CategoryHandler. Subcategory routes are
// nested below each category.
func NewCategoryHandler(d Deps, subcategories *SubCategoryHandler) *CategoryHandler {
	return &CategoryHandler{
		service:       d.Categories,
		subcategories: subcategories,
		guard:         d.Guard,
		upload:        images.Upload(d.Images, "categories", images.Field{Name: "image", MaxCount: 1, Width: 600, Height: 600}),
		id:            validators.CategoryID(d.Validate),
		create:        validators.CreateCategory(d.Validate),
		update:        validators.UpdateCategory(d.Validate),
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Route("/:categoryId/subcategories", h.subcategories.RegisterNested)

	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.id.Handler(), h.HandleGetCategoryByID)
	categoryRoutes.Post("/", h.guard.with(editors, h.upload, h.create.Handler(), h.HandleCreateCategory)...)
	categoryRoutes.Patch("/:id", h.guard.with(editors, h.upload, h.update.Handler(), h.HandleUpdateCategory)...)
	categoryRoutes.Delete("/:id", h.guard.with(admins, h.id.Handler(), h.HandleDeleteCategory)...)
}

// HandleGetCategories retrieves one page of categories.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	page, err := h.service.ListCategories(c.UserContext(), dto.ParseListQuery(c.Queries()))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleGetCategoryByID retrieves a single category by its ID.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	in := validators.Input[dto.IDParam](c)
	category, err := h.service.GetCategoryByID(c.UserContext(), in.ID)
	if err != nil {
		return err
	}
	return ok(c, category)
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	category, err := h.service.CreateCategory(c.UserContext(), validators.Input[dto.CreateCategoryInput](c))
	if err != nil {
		return err
	}
	return created(c, category)
}

// HandleUpdateCategory updates an existing category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	category, err := h.service.UpdateCategory(c.UserContext(), validators.Input[dto.UpdateCategoryInput](c))
	if err != nil {
		return err
	}
	return ok(c, category)
}

// HandleDeleteCategory deletes a category.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.UserContext(), validators.Input[dto.IDParam](c).ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
