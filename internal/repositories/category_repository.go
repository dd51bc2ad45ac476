package repositories

import (
	"context"

	"etalase/internal/dto"
	"etalase/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, q dto.ListQuery) ([]models.Category, int64, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
}

// BrandRepository defines the interface for brand data access.
type BrandRepository interface {
	GetByID(ctx context.Context, id string) (*models.Brand, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, q dto.ListQuery) ([]models.Brand, int64, error)
	Create(ctx context.Context, brand *models.Brand) error
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id string) error
}

// SubCategoryRepository defines the interface for subcategory data access.
type SubCategoryRepository interface {
	GetByID(ctx context.Context, id string) (*models.SubCategory, error)
	// List narrows to one parent category when categoryID is not empty.
	List(ctx context.Context, q dto.ListQuery, categoryID string) ([]models.SubCategory, int64, error)
	// FindByIDs returns the stored subcategories among ids.
	FindByIDs(ctx context.Context, ids []string) ([]models.SubCategory, error)
	// ListByCategory returns every subcategory of a category.
	ListByCategory(ctx context.Context, categoryID string) ([]models.SubCategory, error)
	Create(ctx context.Context, sub *models.SubCategory) error
	Update(ctx context.Context, sub *models.SubCategory) error
	Delete(ctx context.Context, id string) error
}
