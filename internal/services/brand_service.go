package services

import (
	"context"

	"etalase/internal/dto"
	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/pkg/logger"
)

// BrandService handles business logic related to brands.
type BrandService struct {
	repo   repositories.BrandRepository
	events events
}

// NewBrandService creates a new BrandService. publisher may be nil.
func NewBrandService(repo repositories.BrandRepository, publisher EventPublisher, log *logger.Logger) *BrandService {
	return &BrandService{
		repo:   repo,
		events: events{publisher: publisher, log: log},
	}
}

func (s *BrandService) ListBrands(ctx context.Context, q dto.ListQuery) (dto.Page[models.Brand], error) {
	brands, total, err := s.repo.List(ctx, q)
	if err != nil {
		return dto.Page[models.Brand]{}, err
	}
	return dto.Page[models.Brand]{Results: len(brands), Pagination: dto.NewPagination(q, total), Data: brands}, nil
}

func (s *BrandService) GetBrandByID(ctx context.Context, id string) (*models.Brand, error) {
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "brand", id)
	}
	return brand, nil
}

func (s *BrandService) CreateBrand(ctx context.Context, in *dto.CreateBrandInput) (*models.Brand, error) {
	brand := &models.Brand{Name: in.Name, Slug: in.Slug, Image: in.Image}
	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, translate(err, "brand", "")
	}
	s.events.emit(ctx, "brand", "created", brand.ID, brand)
	return brand, nil
}

func (s *BrandService) UpdateBrand(ctx context.Context, in *dto.UpdateBrandInput) (*models.Brand, error) {
	brand, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, translate(err, "brand", in.ID)
	}
	if in.Name != nil {
		brand.Name = *in.Name
	}
	if in.Slug != nil {
		brand.Slug = *in.Slug
	}
	if in.Image != nil {
		brand.Image = *in.Image
	}
	if err := s.repo.Update(ctx, brand); err != nil {
		return nil, translate(err, "brand", in.ID)
	}
	s.events.emit(ctx, "brand", "updated", brand.ID, brand)
	return brand, nil
}

func (s *BrandService) DeleteBrand(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err, "brand", id)
	}
	s.events.emit(ctx, "brand", "deleted", id, nil)
	return nil
}
