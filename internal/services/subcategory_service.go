package services

import (
	"context"

	"etalase/internal/dto"
	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/pkg/logger"
)

// SubCategoryService handles business logic related to subcategories.
type SubCategoryService struct {
	repo   repositories.SubCategoryRepository
	events events
}

// NewSubCategoryService creates a new SubCategoryService. publisher may be nil.
func NewSubCategoryService(repo repositories.SubCategoryRepository, publisher EventPublisher, log *logger.Logger) *SubCategoryService {
	return &SubCategoryService{
		repo:   repo,
		events: events{publisher: publisher, log: log},
	}
}

// ListSubCategories retrieves one page of subcategories. A non-empty
// categoryID restricts the page to that category's children.
func (s *SubCategoryService) ListSubCategories(ctx context.Context, q dto.ListQuery, categoryID string) (dto.Page[models.SubCategory], error) {
	subs, total, err := s.repo.List(ctx, q, categoryID)
	if err != nil {
		return dto.Page[models.SubCategory]{}, err
	}
	return dto.Page[models.SubCategory]{Results: len(subs), Pagination: dto.NewPagination(q, total), Data: subs}, nil
}

func (s *SubCategoryService) GetSubCategoryByID(ctx context.Context, id string) (*models.SubCategory, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "subcategory", id)
	}
	return sub, nil
}

func (s *SubCategoryService) CreateSubCategory(ctx context.Context, in *dto.CreateSubCategoryInput) (*models.SubCategory, error) {
	sub := &models.SubCategory{Name: in.Name, Slug: in.Slug, CategoryID: in.Category}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, translate(err, "subcategory", "")
	}
	s.events.emit(ctx, "subcategory", "created", sub.ID, sub)
	return sub, nil
}

func (s *SubCategoryService) UpdateSubCategory(ctx context.Context, in *dto.UpdateSubCategoryInput) (*models.SubCategory, error) {
	sub, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, translate(err, "subcategory", in.ID)
	}
	if in.Name != nil {
		sub.Name = *in.Name
	}
	if in.Slug != nil {
		sub.Slug = *in.Slug
	}
	if in.Category != nil {
		sub.CategoryID = *in.Category
	}
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, translate(err, "subcategory", in.ID)
	}
	s.events.emit(ctx, "subcategory", "updated", sub.ID, sub)
	return sub, nil
}

func (s *SubCategoryService) DeleteSubCategory(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err, "subcategory", id)
	}
	s.events.emit(ctx, "subcategory", "deleted", id, nil)
	return nil
}
