package handlers

import (
	"etalase/internal/dto"
	"etalase/internal/services"
	"etalase/internal/validators"

	"github.com/gofiber/fiber/v2"
)

// SubCategoryHandler handles HTTP requests for subcategories, both at
// /subcategories and nested below /categories/:categoryId.
type SubCategoryHandler struct {
	service *services.SubCategoryService
	guard   Guard

	id     *validators.Chain[dto.IDParam]
	parent *validators.Chain[dto.SubCategoryParent]
	create *validators.Chain[dto.CreateSubCategoryInput]
	update *validators.Chain[dto.UpdateSubCategoryInput]
}

// NewSubCategoryHandler creates a new SubCategoryHandler.
func NewSubCategoryHandler(d Deps) *SubCategoryHandler {
	return &SubCategoryHandler{
		service: d.SubCategories,
		guard:   d.Guard,
		id:      validators.SubCategoryID(d.Validate),
		parent:  validators.SubCategoryParent(d.Validate),
		create:  validators.CreateSubCategory(d.Validate, d.CategoryLookup),
		update:  validators.UpdateSubCategory(d.Validate, d.CategoryLookup),
	}
}

// RegisterRoutes registers the subcategory routes with the Fiber app.
func (h *SubCategoryHandler) RegisterRoutes(router fiber.Router) {
	subRoutes := router.Group("/subcategories")
	subRoutes.Get("/", h.parent.Handler(), h.HandleGetSubCategories)
	subRoutes.Get("/:id", h.id.Handler(), h.HandleGetSubCategoryByID)
	subRoutes.Post("/", h.guard.with(editors, h.create.Handler(), h.HandleCreateSubCategory)...)
	subRoutes.Patch("/:id", h.guard.with(editors, h.update.Handler(), h.HandleUpdateSubCategory)...)
	subRoutes.Delete("/:id", h.guard.with(admins, h.id.Handler(), h.HandleDeleteSubCategory)...)
}

// RegisterNested registers the routes mounted below a parent category. The
// parent id comes from the :categoryId path parameter.
func (h *SubCategoryHandler) RegisterNested(router fiber.Router) {
	router.Get("/", h.parent.Handler(), h.HandleGetSubCategories)
	router.Post("/", h.guard.with(editors, h.create.Handler(), h.HandleCreateSubCategory)...)
}

// HandleGetSubCategories lists subcategories, restricted to the parent
// category on the nested route.
func (h *SubCategoryHandler) HandleGetSubCategories(c *fiber.Ctx) error {
	parent := validators.Input[dto.SubCategoryParent](c)
	page, err := h.service.ListSubCategories(c.UserContext(), dto.ParseListQuery(c.Queries()), parent.CategoryID)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *SubCategoryHandler) HandleGetSubCategoryByID(c *fiber.Ctx) error {
	sub, err := h.service.GetSubCategoryByID(c.UserContext(), validators.Input[dto.IDParam](c).ID)
	if err != nil {
		return err
	}
	return ok(c, sub)
}

func (h *SubCategoryHandler) HandleCreateSubCategory(c *fiber.Ctx) error {
	sub, err := h.service.CreateSubCategory(c.UserContext(), validators.Input[dto.CreateSubCategoryInput](c))
	if err != nil {
		return err
	}
	return created(c, sub)
}

func (h *SubCategoryHandler) HandleUpdateSubCategory(c *fiber.Ctx) error {
	sub, err := h.service.UpdateSubCategory(c.UserContext(), validators.Input[dto.UpdateSubCategoryInput](c))
	if err != nil {
		return err
	}
	return ok(c, sub)
}

func (h *SubCategoryHandler) HandleDeleteSubCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteSubCategory(c.UserContext(), validators.Input[dto.IDParam](c).ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
