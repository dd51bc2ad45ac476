package services

import (
	"context"

	"etalase/internal/dto"
	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/pkg/logger"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo   repositories.CategoryRepository
	events events
}

// NewCategoryService creates a new CategoryService. publisher may be nil.
func NewCategoryService(repo repositories.CategoryRepository, publisher EventPublisher, log *logger.Logger) *CategoryService {
	return &CategoryService{
		repo:   repo,
		events: events{publisher: publisher, log: log},
	}
}

// ListCategories retrieves one page of categories.
func (s *CategoryService) ListCategories(ctx context.Context, q dto.ListQuery) (dto.Page[models.Category], error) {
	categories, total, err := s.repo.List(ctx, q)
	if err != nil {
		return dto.Page[models.Category]{}, err
	}
	return dto.Page[models.Category]{Results: len(categories), Pagination: dto.NewPagination(q, total), Data: categories}, nil
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "category", id)
	}
	return category, nil
}

// CreateCategory stores a validated category.
func (s *CategoryService) CreateCategory(ctx context.Context, in *dto.CreateCategoryInput) (*models.Category, error) {
	category := &models.Category{Name: in.Name, Slug: in.Slug, Image: in.Image}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, translate(err, "category", "")
	}
	s.events.emit(ctx, "category", "created", category.ID, category)
	return category, nil
}

// UpdateCategory applies the provided fields to an existing category.
func (s *CategoryService) UpdateCategory(ctx context.Context, in *dto.UpdateCategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, translate(err, "category", in.ID)
	}
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Slug != nil {
		category.Slug = *in.Slug
	}
	if in.Image != nil {
		category.Image = *in.Image
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, translate(err, "category", in.ID)
	}
	s.events.emit(ctx, "category", "updated", category.ID, category)
	return category, nil
}

// DeleteCategory deletes a category by its ID.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err, "category", id)
	}
	s.events.emit(ctx, "category", "deleted", id, nil)
	return nil
}
