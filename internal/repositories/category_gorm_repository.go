package repositories

import (
	"context"
	"fmt"

	"etalase/internal/dto"
	"etalase/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	*gormStore[models.Category]
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		gormStore: newGormStore[models.Category](db, "category", baseColumns(nil), "name"),
	}
}

// List returns one page of categories.
func (r *GORMCategoryRepository) List(ctx context.Context, q dto.ListQuery) ([]models.Category, int64, error) {
	return r.gormStore.List(ctx, q)
}

// GORMBrandRepository is a GORM implementation of BrandRepository.
type GORMBrandRepository struct {
	*gormStore[models.Brand]
}

// NewGORMBrandRepository creates a new instance of GORMBrandRepository.
func NewGORMBrandRepository(db *gorm.DB) *GORMBrandRepository {
	return &GORMBrandRepository{
		gormStore: newGormStore[models.Brand](db, "brand", baseColumns(nil), "name"),
	}
}

// List returns one page of brands.
func (r *GORMBrandRepository) List(ctx context.Context, q dto.ListQuery) ([]models.Brand, int64, error) {
	return r.gormStore.List(ctx, q)
}

// GORMSubCategoryRepository is a GORM implementation of SubCategoryRepository.
type GORMSubCategoryRepository struct {
	*gormStore[models.SubCategory]
}

// NewGORMSubCategoryRepository creates a new instance of GORMSubCategoryRepository.
func NewGORMSubCategoryRepository(db *gorm.DB) *GORMSubCategoryRepository {
	cols := baseColumns(Columns{"category": {Name: "category_id"}})
	return &GORMSubCategoryRepository{
		gormStore: newGormStore[models.SubCategory](db, "subcategory", cols, "name"),
	}
}

// List returns one page of subcategories, optionally narrowed to a category.
func (r *GORMSubCategoryRepository) List(ctx context.Context, q dto.ListQuery, categoryID string) ([]models.SubCategory, int64, error) {
	if categoryID == "" {
		return r.gormStore.List(ctx, q)
	}
	return r.gormStore.List(ctx, q, func(db *gorm.DB) *gorm.DB {
		return db.Where("category_id = ?", categoryID)
	})
}

// FindByIDs returns the stored subcategories among ids.
func (r *GORMSubCategoryRepository) FindByIDs(ctx context.Context, ids []string) ([]models.SubCategory, error) {
	var subs []models.SubCategory
	if len(ids) == 0 {
		return subs, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to find subcategories: %w", err)
	}
	return subs, nil
}

// ListByCategory returns every subcategory of a category.
func (r *GORMSubCategoryRepository) ListByCategory(ctx context.Context, categoryID string) ([]models.SubCategory, error) {
	var subs []models.SubCategory
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subcategories of category %s: %w", categoryID, err)
	}
	return subs, nil
}
