package services_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"etalase/internal/apperror"
	"etalase/internal/dto"
	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/internal/services"
	"etalase/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, q dto.ListQuery) ([]models.Category, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, q dto.ListQuery) ([]models.Product, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher records published catalog events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func ptr[T any](v T) *T { return &v }

func TestCategoryService_CreateEmitsEvent(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	pub := new(MockPublisher)
	svc := services.NewCategoryService(repo, pub, logger.Nop())

	repo.On("Create", ctx, mock.AnythingOfType("*models.Category")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Category).ID = "cat-1" }).
		Return(nil).Once()
	pub.On("Publish", ctx, "category.created", mock.MatchedBy(func(e services.Event) bool {
		return e.Type == "category.created" && e.ID == "cat-1"
	})).Return(nil).Once()

	category, err := svc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Books", Slug: "books"})
	require.NoError(t, err)
	assert.Equal(t, "books", category.Slug)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCategoryService_PublishFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	pub := new(MockPublisher)
	svc := services.NewCategoryService(repo, pub, logger.Nop())

	repo.On("Delete", ctx, "cat-1").Return(nil).Once()
	pub.On("Publish", ctx, "category.deleted", mock.Anything).Return(errors.New("broker down")).Once()

	assert.NoError(t, svc.DeleteCategory(ctx, "cat-1"))
	pub.AssertExpectations(t)
}

func TestCategoryService_TranslatesRepositoryErrors(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := services.NewCategoryService(repo, nil, logger.Nop())

	repo.On("GetByID", ctx, "missing").Return(nil, fmt.Errorf("category with ID missing: %w", repositories.ErrNotFound)).Once()
	_, err := svc.GetCategoryByID(ctx, "missing")
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "No category for this id missing", appErr.Message)

	repo.On("Create", ctx, mock.AnythingOfType("*models.Category")).
		Return(fmt.Errorf("failed to create category: %w", repositories.ErrDuplicate)).Once()
	_, err = svc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Books", Slug: "books"})
	appErr, ok = apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Status)

	boom := errors.New("connection reset")
	repo.On("Delete", ctx, "cat-1").Return(boom).Once()
	err = svc.DeleteCategory(ctx, "cat-1")
	assert.ErrorIs(t, err, boom)
	_, ok = apperror.As(err)
	assert.False(t, ok)
	repo.AssertExpectations(t)
}

func TestCategoryService_UpdateAppliesProvidedFields(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := services.NewCategoryService(repo, nil, logger.Nop())

	stored := &models.Category{ID: "cat-1", Name: "Books", Slug: "books", Image: "http://img/books.jpeg"}
	repo.On("GetByID", ctx, "cat-1").Return(stored, nil).Once()
	repo.On("Update", ctx, stored).Return(nil).Once()

	updated, err := svc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: "cat-1", Name: ptr("Novels"), Slug: ptr("novels")})
	require.NoError(t, err)
	assert.Equal(t, "Novels", updated.Name)
	assert.Equal(t, "novels", updated.Slug)
	assert.Equal(t, "http://img/books.jpeg", updated.Image)
	repo.AssertExpectations(t)
}

func TestCategoryService_ListBuildsPage(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := services.NewCategoryService(repo, nil, logger.Nop())

	q := dto.ListQuery{Page: 1, Limit: 2}
	repo.On("List", ctx, q).Return([]models.Category{{Name: "A"}, {Name: "B"}}, int64(3), nil).Once()

	page, err := svc.ListCategories(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Results)
	assert.Equal(t, 2, page.Pagination.NumberOfPages)
	require.NotNil(t, page.Pagination.Next)
	assert.Equal(t, 2, *page.Pagination.Next)
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := services.NewProductService(repo, nil, logger.Nop())

	var saved *models.Product
	repo.On("Create", ctx, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Product) }).
		Return(nil).Once()

	_, err := svc.CreateProduct(ctx, &dto.CreateProductInput{
		Title:         "Android phone",
		Slug:          "android-phone",
		Description:   "A phone running the Android system",
		Quantity:      ptr(3),
		Price:         ptr(199.5),
		ImageCover:    "cover.jpeg",
		Category:      "cat-1",
		SubCategories: []string{"sub-1"},
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 3, saved.Quantity)
	assert.Equal(t, 0, saved.Sold)
	assert.Equal(t, 199.5, saved.Price)
	assert.Nil(t, saved.BrandID)
	assert.Equal(t, []string{"sub-1"}, saved.SubCategories)
}

func TestProductService_UpdateAppliesProvidedFields(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := services.NewProductService(repo, nil, logger.Nop())

	brand := "brand-1"
	stored := &models.Product{
		ID: "p-1", Title: "Android phone", Slug: "android-phone", Quantity: 3, Price: 200,
		CategoryID: "cat-1", BrandID: &brand, Colors: []string{"black"},
	}
	repo.On("GetByID", ctx, "p-1").Return(stored, nil).Once()
	repo.On("Update", ctx, stored).Return(nil).Once()

	updated, err := svc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:                 "p-1",
		PriceAfterDiscount: ptr(150.0),
		Colors:             &[]string{"white", "red"},
		Brand:              ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Android phone", updated.Title)
	assert.Equal(t, 200.0, updated.Price)
	require.NotNil(t, updated.PriceAfterDiscount)
	assert.Equal(t, 150.0, *updated.PriceAfterDiscount)
	assert.Equal(t, []string{"white", "red"}, updated.Colors)
	assert.Nil(t, updated.BrandID)
	repo.AssertExpectations(t)
}

func TestProductService_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := services.NewProductService(repo, nil, logger.Nop())

	repo.On("Delete", ctx, "p-1").Return(fmt.Errorf("product: %w", repositories.ErrNotFound)).Once()

	err := svc.DeleteProduct(ctx, "p-1")
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "No product for this id p-1", appErr.Message)
}
