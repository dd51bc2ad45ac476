package handlers

import (
	"etalase/internal/dto"
	"etalase/internal/images"
	"etalase/internal/services"
	"etalase/internal/validators"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	guard   Guard
	upload  fiber.Handler

	id     *validators.Chain[dto.IDParam]
	create *validators.Chain[dto.CreateProductInput]
	update *validators.Chain[dto.UpdateProductInput]
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(d Deps) *ProductHandler {
	return &ProductHandler{
		service: d.Products,
		guard:   d.Guard,
		upload: images.Upload(d.Images, "products",
			images.Field{Name: "imageCover", MaxCount: 1, Width: 2000, Height: 1333},
			images.Field{Name: "images", MaxCount: 5, Width: 2000, Height: 1333},
		),
		id:     validators.ProductID(d.Validate),
		create: validators.CreateProduct(d.Validate, d.CategoryLookup, d.BrandLookup, d.SubCategoryLookup),
		update: validators.UpdateProduct(d.Validate, d.CategoryLookup, d.BrandLookup, d.SubCategoryLookup, d.ProductLookup),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.id.Handler(), h.HandleGetProductByID)
	productRoutes.Post("/", h.guard.with(editors, h.upload, h.create.Handler(), h.HandleCreateProduct)...)
	productRoutes.Patch("/:id", h.guard.with(editors, h.upload, h.update.Handler(), h.HandleUpdateProduct)...)
	productRoutes.Delete("/:id", h.guard.with(admins, h.id.Handler(), h.HandleDeleteProduct)...)
}

// HandleGetProducts retrieves one page of products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	page, err := h.service.ListProducts(c.UserContext(), dto.ParseListQuery(c.Queries()))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), validators.Input[dto.IDParam](c).ID)
	if err != nil {
		return err
	}
	return ok(c, product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	product, err := h.service.CreateProduct(c.UserContext(), validators.Input[dto.CreateProductInput](c))
	if err != nil {
		return err
	}
	return created(c, product)
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	product, err := h.service.UpdateProduct(c.UserContext(), validators.Input[dto.UpdateProductInput](c))
	if err != nil {
		return err
	}
	return ok(c, product)
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), validators.Input[dto.IDParam](c).ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
