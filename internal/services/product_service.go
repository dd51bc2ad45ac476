package services

import (
	"context"

	"etalase/internal/dto"
	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/pkg/logger"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events events
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log *logger.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events{publisher: publisher, log: log},
	}
}

// ListProducts retrieves one page of products.
func (s *ProductService) ListProducts(ctx context.Context, q dto.ListQuery) (dto.Page[models.Product], error) {
	products, total, err := s.repo.List(ctx, q)
	if err != nil {
		return dto.Page[models.Product]{}, err
	}
	return dto.Page[models.Product]{Results: len(products), Pagination: dto.NewPagination(q, total), Data: products}, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "product", id)
	}
	return product, nil
}

// CreateProduct stores a validated product. References to category, brand
// and subcategories have already been checked by the request validator.
func (s *ProductService) CreateProduct(ctx context.Context, in *dto.CreateProductInput) (*models.Product, error) {
	product := &models.Product{
		Title:              in.Title,
		Slug:               in.Slug,
		Description:        in.Description,
		Quantity:           deref(in.Quantity),
		Sold:               deref(in.Sold),
		Price:              deref(in.Price),
		PriceAfterDiscount: in.PriceAfterDiscount,
		Colors:             in.Colors,
		ImageCover:         in.ImageCover,
		Images:             in.Images,
		CategoryID:         in.Category,
		SubCategories:      in.SubCategories,
		RatingsAverage:     in.RatingsAverage,
		RatingsQuantity:    deref(in.RatingsQuantity),
	}
	if in.Brand != "" {
		brand := in.Brand
		product.BrandID = &brand
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, translate(err, "product", "")
	}
	s.events.emit(ctx, "product", "created", product.ID, product)
	return product, nil
}

// UpdateProduct applies the provided fields to an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, in *dto.UpdateProductInput) (*models.Product, error) {
	p, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, translate(err, "product", in.ID)
	}

	set(&p.Title, in.Title)
	set(&p.Slug, in.Slug)
	set(&p.Description, in.Description)
	set(&p.Quantity, in.Quantity)
	set(&p.Sold, in.Sold)
	set(&p.Price, in.Price)
	set(&p.ImageCover, in.ImageCover)
	set(&p.Colors, in.Colors)
	set(&p.Images, in.Images)
	set(&p.CategoryID, in.Category)
	set(&p.SubCategories, in.SubCategories)
	set(&p.RatingsQuantity, in.RatingsQuantity)
	if in.PriceAfterDiscount != nil {
		p.PriceAfterDiscount = in.PriceAfterDiscount
	}
	if in.RatingsAverage != nil {
		p.RatingsAverage = in.RatingsAverage
	}
	if in.Brand != nil {
		if *in.Brand == "" {
			p.BrandID = nil
		} else {
			p.BrandID = in.Brand
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, translate(err, "product", in.ID)
	}
	s.events.emit(ctx, "product", "updated", p.ID, p)
	return p, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err, "product", id)
	}
	s.events.emit(ctx, "product", "deleted", id, nil)
	return nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
