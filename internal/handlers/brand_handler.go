package handlers

import (
	"etalase/internal/dto"
	"etalase/internal/images"
	"etalase/internal/services"
	"etalase/internal/validators"

	"github.com/gofiber/fiber/v2"
)

// BrandHandler handles HTTP requests for brands.
type BrandHandler struct {
	service *services.BrandService
	guard   Guard
	upload  fiber.Handler

	id     *validators.Chain[dto.IDParam]
	create *validators.Chain[dto.CreateBrandInput]
	update *validators.Chain[dto.UpdateBrandInput]
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(d Deps) *BrandHandler {
	return &BrandHandler{
		service: d.Brands,
		guard:   d.Guard,
		upload:  images.Upload(d.Images, "brands", images.Field{Name: "image", MaxCount: 1, Width: 600, Height: 600}),
		id:      validators.BrandID(d.Validate),
		create:  validators.CreateBrand(d.Validate),
		update:  validators.UpdateBrand(d.Validate),
	}
}

// RegisterRoutes registers the brand routes with the Fiber app.
func (h *BrandHandler) RegisterRoutes(router fiber.Router) {
	brandRoutes := router.Group("/brands")
	brandRoutes.Get("/", h.HandleGetBrands)
	brandRoutes.Get("/:id", h.id.Handler(), h.HandleGetBrandByID)
	brandRoutes.Post("/", h.guard.with(editors, h.upload, h.create.Handler(), h.HandleCreateBrand)...)
	brandRoutes.Patch("/:id", h.guard.with(editors, h.upload, h.update.Handler(), h.HandleUpdateBrand)...)
	brandRoutes.Delete("/:id", h.guard.with(admins, h.id.Handler(), h.HandleDeleteBrand)...)
}

func (h *BrandHandler) HandleGetBrands(c *fiber.Ctx) error {
	page, err := h.service.ListBrands(c.UserContext(), dto.ParseListQuery(c.Queries()))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *BrandHandler) HandleGetBrandByID(c *fiber.Ctx) error {
	brand, err := h.service.GetBrandByID(c.UserContext(), validators.Input[dto.IDParam](c).ID)
	if err != nil {
		return err
	}
	return ok(c, brand)
}

func (h *BrandHandler) HandleCreateBrand(c *fiber.Ctx) error {
	brand, err := h.service.CreateBrand(c.UserContext(), validators.Input[dto.CreateBrandInput](c))
	if err != nil {
		return err
	}
	return created(c, brand)
}

func (h *BrandHandler) HandleUpdateBrand(c *fiber.Ctx) error {
	brand, err := h.service.UpdateBrand(c.UserContext(), validators.Input[dto.UpdateBrandInput](c))
	if err != nil {
		return err
	}
	return ok(c, brand)
}

func (h *BrandHandler) HandleDeleteBrand(c *fiber.Ctx) error {
	if err := h.service.DeleteBrand(c.UserContext(), validators.Input[dto.IDParam](c).ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
