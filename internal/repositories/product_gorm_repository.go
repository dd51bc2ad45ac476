package repositories

import (
	"context"

	"etalase/internal/dto"
	"etalase/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	*gormStore[models.Product]
}

var productColumns = Columns{
	"_id":                {Name: "id"},
	"title":              {Name: "title"},
	"slug":               {Name: "slug"},
	"description":        {Name: "description"},
	"quantity":           {Name: "quantity", Numeric: true},
	"sold":               {Name: "sold", Numeric: true},
	"price":              {Name: "price", Numeric: true},
	"priceAfterDiscount": {Name: "price_after_discount", Numeric: true},
	"colors":             {Name: "colors"},
	"imageCover":         {Name: "image_cover"},
	"images":             {Name: "images"},
	"category":           {Name: "category_id"},
	"subcategories":      {Name: "subcategories"},
	"brand":              {Name: "brand_id"},
	"ratingsAverage":     {Name: "ratings_average", Numeric: true},
	"ratingsQuantity":    {Name: "ratings_quantity", Numeric: true},
	"createdAt":          {Name: "created_at"},
	"updatedAt":          {Name: "updated_at"},
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		gormStore: newGormStore[models.Product](db, "product", productColumns, "title", "description"),
	}
}

// List returns one page of products.
func (r *GORMProductRepository) List(ctx context.Context, q dto.ListQuery) ([]models.Product, int64, error) {
	return r.gormStore.List(ctx, q)
}
