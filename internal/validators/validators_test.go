package validators_test

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"etalase/internal/apperror"
	"etalase/internal/dto"
	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/internal/validators"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	phonesID  = "6f1c1b9e-1d2a-4c55-8a55-000000000001"
	booksID   = "6f1c1b9e-1d2a-4c55-8a55-000000000002"
	androidID = "6f1c1b9e-1d2a-4c55-8a55-000000000011"
	iosID     = "6f1c1b9e-1d2a-4c55-8a55-000000000012"
	novelsID  = "6f1c1b9e-1d2a-4c55-8a55-000000000021"
	brandID   = "6f1c1b9e-1d2a-4c55-8a55-000000000031"
	productID = "6f1c1b9e-1d2a-4c55-8a55-000000000041"
)

type MockExister struct {
	mock.Mock
}

func (m *MockExister) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// fakeSubCategories is an in-memory SubCategoryFinder.
type fakeSubCategories struct {
	all []models.SubCategory
	err error
}

func (f *fakeSubCategories) FindByIDs(_ context.Context, ids []string) ([]models.SubCategory, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.SubCategory
	for _, s := range f.all {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (f *fakeSubCategories) ListByCategory(_ context.Context, categoryID string) ([]models.SubCategory, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.SubCategory
	for _, s := range f.all {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

type MockProductFinder struct {
	mock.Mock
}

func (m *MockProductFinder) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func catalog() *fakeSubCategories {
	return &fakeSubCategories{all: []models.SubCategory{
		{ID: androidID, Name: "Android", CategoryID: phonesID},
		{ID: iosID, Name: "iOS", CategoryID: phonesID},
		{ID: novelsID, Name: "Novels", CategoryID: booksID},
	}}
}

func ptr[T any](v T) *T { return &v }

func validProduct() *dto.CreateProductInput {
	return &dto.CreateProductInput{
		Title:       "Android Phone X",
		Description: "A fast phone with a large screen and battery",
		Quantity:    ptr(10),
		Price:       ptr(500.0),
		ImageCover:  "http://localhost:8000/uploads/products/cover.jpeg",
		Category:    phonesID,
	}
}

func paths(errs []apperror.FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Path
	}
	return out
}

func messageFor(errs []apperror.FieldError, path string) string {
	for _, e := range errs {
		if e.Path == path {
			return e.Message
		}
	}
	return ""
}

func TestCheckDiscount(t *testing.T) {
	tests := []struct {
		name     string
		discount *float64
		price    *float64
		wantErr  bool
	}{
		{"lower", ptr(90.0), ptr(100.0), false},
		{"equal", ptr(100.0), ptr(100.0), true},
		{"higher", ptr(150.0), ptr(100.0), true},
		{"no discount", nil, ptr(100.0), false},
		{"no price", ptr(10.0), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validators.CheckDiscount(tt.discount, tt.price)
			if tt.wantErr {
				require.Len(t, errs, 1)
				assert.Equal(t, "priceAfterDiscount", errs[0].Path)
				assert.Equal(t, validators.MsgDiscountNotLower, errs[0].Message)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestCheckSubCategories(t *testing.T) {
	subs := catalog()
	phones, _ := subs.ListByCategory(context.Background(), phonesID)
	find := func(ids ...string) []models.SubCategory {
		found, _ := subs.FindByIDs(context.Background(), ids)
		return found
	}

	assert.Empty(t, validators.CheckSubCategories([]string{androidID, iosID}, find(androidID, iosID), phones, true))

	errs := validators.CheckSubCategories([]string{androidID, novelsID}, find(androidID, novelsID), phones, true)
	require.Len(t, errs, 1)
	assert.Equal(t, validators.MsgForeignSubCategory, errs[0].Message)

	missing := "6f1c1b9e-1d2a-4c55-8a55-000000000099"
	errs = validators.CheckSubCategories([]string{androidID, missing}, find(androidID, missing), phones, true)
	require.Len(t, errs, 1)
	assert.Equal(t, validators.MsgInvalidSubCategory, errs[0].Message)

	assert.Empty(t, validators.CheckSubCategories([]string{novelsID}, find(novelsID), nil, false))
	assert.Empty(t, validators.CheckSubCategories(nil, nil, nil, true))
}

func TestCheckPriceLength(t *testing.T) {
	assert.Empty(t, validators.CheckPriceLength(ptr(199.99)))
	assert.Empty(t, validators.CheckPriceLength(nil))

	errs := validators.CheckPriceLength(ptr(1e40))
	require.Len(t, errs, 1)
	assert.Equal(t, validators.MsgPriceTooLong, errs[0].Message)
}

func TestCreateProduct_Valid(t *testing.T) {
	categories, brands := new(MockExister), new(MockExister)
	categories.On("Exists", mock.Anything, phonesID).Return(true, nil).Once()
	brands.On("Exists", mock.Anything, brandID).Return(true, nil).Once()

	chain := validators.CreateProduct(validators.NewValidate(), categories, brands, catalog())

	in := validProduct()
	in.Brand = brandID
	in.SubCategories = []string{androidID, iosID, androidID}
	in.PriceAfterDiscount = ptr(450.0)

	errs, err := chain.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "android-phone-x", in.Slug)
	assert.Equal(t, []string{androidID, iosID}, in.SubCategories)
	categories.AssertExpectations(t)
	brands.AssertExpectations(t)
}

func TestCreateProduct_MissingCategory(t *testing.T) {
	categories, brands := new(MockExister), new(MockExister)
	chain := validators.CreateProduct(validators.NewValidate(), categories, brands, catalog())

	in := validProduct()
	in.Category = ""

	errs, err := chain.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"category"}, paths(errs))
	assert.Equal(t, "Product must be belong to a category", errs[0].Message)
	assert.Equal(t, "body", errs[0].Location)
	categories.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestCreateProduct_FieldMessages(t *testing.T) {
	chain := validators.CreateProduct(validators.NewValidate(), new(MockExister), new(MockExister), catalog())

	in := &dto.CreateProductInput{
		Title:          "abc",
		Description:    "short",
		Price:          ptr(100.0),
		Category:       "not-an-id",
		SubCategories:  []string{"bad"},
		RatingsAverage: ptr(7.0),
	}
	errs, err := chain.Validate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "must be at least 5 chars", messageFor(errs, "title"))
	assert.Equal(t, "Too short description", messageFor(errs, "description"))
	assert.Equal(t, "Product quantity is required", messageFor(errs, "quantity"))
	assert.Equal(t, "Product imageCover is required", messageFor(errs, "imageCover"))
	assert.Equal(t, "Invalid ID format for parent Category", messageFor(errs, "category"))
	assert.Equal(t, "Invalid SubCategory ID format", messageFor(errs, "subcategories"))
	assert.Equal(t, "Rating must be below or equal 5.0", messageFor(errs, "ratingsAverage"))
}

func TestCreateProduct_References(t *testing.T) {
	categories, brands := new(MockExister), new(MockExister)
	categories.On("Exists", mock.Anything, booksID).Return(false, nil).Once()
	brands.On("Exists", mock.Anything, brandID).Return(false, nil).Once()

	chain := validators.CreateProduct(validators.NewValidate(), categories, brands, catalog())

	in := validProduct()
	in.Category = booksID
	in.Brand = brandID
	in.SubCategories = []string{androidID}
	in.PriceAfterDiscount = ptr(500.0)

	errs, err := chain.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"priceAfterDiscount", "category", "brand", "subcategories"}, paths(errs))
	assert.Equal(t, "Invalid Category Id: "+booksID, messageFor(errs, "category"))
	assert.Equal(t, "Invalid Brand Id: "+brandID, messageFor(errs, "brand"))
	assert.Equal(t, validators.MsgForeignSubCategory, messageFor(errs, "subcategories"))
}

func TestCreateProduct_StoreFailureAborts(t *testing.T) {
	categories := new(MockExister)
	categories.On("Exists", mock.Anything, phonesID).Return(true, nil).Maybe()
	boom := errors.New("connection refused")

	chain := validators.CreateProduct(validators.NewValidate(), categories, new(MockExister), &fakeSubCategories{err: boom})

	in := validProduct()
	in.SubCategories = []string{androidID}

	_, err := chain.Validate(context.Background(), in)
	assert.ErrorIs(t, err, boom)
}

func TestUpdateProduct_DiscountAgainstStoredPrice(t *testing.T) {
	products := new(MockProductFinder)
	products.On("GetByID", mock.Anything, productID).
		Return(&models.Product{ID: productID, Price: 100, CategoryID: phonesID}, nil)

	chain := validators.UpdateProduct(validators.NewValidate(), new(MockExister), new(MockExister), catalog(), products)

	errs, err := chain.Validate(context.Background(), &dto.UpdateProductInput{ID: productID, PriceAfterDiscount: ptr(120.0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"priceAfterDiscount"}, paths(errs))

	errs, err = chain.Validate(context.Background(), &dto.UpdateProductInput{ID: productID, PriceAfterDiscount: ptr(80.0)})
	require.NoError(t, err)
	assert.Empty(t, errs)

	// the submitted price wins over the stored one
	errs, err = chain.Validate(context.Background(), &dto.UpdateProductInput{ID: productID, Price: ptr(200.0), PriceAfterDiscount: ptr(120.0)})
	require.NoError(t, err)
	assert.Empty(t, errs)

	// subcategories are checked against the stored category
	in := &dto.UpdateProductInput{ID: productID, SubCategories: &[]string{novelsID}}
	errs, err = chain.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, validators.MsgForeignSubCategory, messageFor(errs, "subcategories"))
}

func TestUpdateProduct_PriceAgainstStoredDiscount(t *testing.T) {
	products := new(MockProductFinder)
	products.On("GetByID", mock.Anything, productID).
		Return(&models.Product{ID: productID, Price: 100, PriceAfterDiscount: ptr(80.0), CategoryID: phonesID}, nil)

	chain := validators.UpdateProduct(validators.NewValidate(), new(MockExister), new(MockExister), catalog(), products)

	errs, err := chain.Validate(context.Background(), &dto.UpdateProductInput{ID: productID, Price: ptr(50.0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"priceAfterDiscount"}, paths(errs))
	assert.Equal(t, validators.MsgDiscountNotLower, errs[0].Message)

	errs, err = chain.Validate(context.Background(), &dto.UpdateProductInput{ID: productID, Price: ptr(80.0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"priceAfterDiscount"}, paths(errs))

	errs, err = chain.Validate(context.Background(), &dto.UpdateProductInput{ID: productID, Price: ptr(90.0)})
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestUpdateProduct_PriceWithoutStoredDiscount(t *testing.T) {
	products := new(MockProductFinder)
	products.On("GetByID", mock.Anything, productID).
		Return(&models.Product{ID: productID, Price: 100, CategoryID: phonesID}, nil)

	chain := validators.UpdateProduct(validators.NewValidate(), new(MockExister), new(MockExister), catalog(), products)

	errs, err := chain.Validate(context.Background(), &dto.UpdateProductInput{ID: productID, Price: ptr(5.0)})
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestUpdateProduct_CategoryMoveChecksStoredSubCategories(t *testing.T) {
	const deletedID = "6f1c1b9e-1d2a-4c55-8a55-0000000000dd"
	categories := new(MockExister)
	categories.On("Exists", mock.Anything, booksID).Return(true, nil)
	categories.On("Exists", mock.Anything, phonesID).Return(true, nil)

	products := new(MockProductFinder)
	products.On("GetByID", mock.Anything, productID).
		Return(&models.Product{ID: productID, Price: 100, CategoryID: phonesID, SubCategories: []string{androidID, deletedID}}, nil)

	chain := validators.UpdateProduct(validators.NewValidate(), categories, new(MockExister), catalog(), products)

	errs, err := chain.Validate(context.Background(), &dto.UpdateProductInput{ID: productID, Category: ptr(booksID)})
	require.NoError(t, err)
	assert.Equal(t, validators.MsgForeignSubCategory, messageFor(errs, "subcategories"))

	// staying in the same category ignores the deleted subcategory
	errs, err = chain.Validate(context.Background(), &dto.UpdateProductInput{ID: productID, Category: ptr(phonesID)})
	require.NoError(t, err)
	assert.Empty(t, errs)

	// replacing the subcategories with ones of the new category passes
	errs, err = chain.Validate(context.Background(), &dto.UpdateProductInput{ID: productID, Category: ptr(booksID), SubCategories: &[]string{novelsID}})
	require.NoError(t, err)
	assert.Empty(t, errs)

	// so does clearing them
	errs, err = chain.Validate(context.Background(), &dto.UpdateProductInput{ID: productID, Category: ptr(booksID), SubCategories: &[]string{}})
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestUpdateProduct_MissingProductLeavesItToHandler(t *testing.T) {
	products := new(MockProductFinder)
	products.On("GetByID", mock.Anything, productID).Return(nil, repositories.ErrNotFound)

	chain := validators.UpdateProduct(validators.NewValidate(), new(MockExister), new(MockExister), catalog(), products)

	errs, err := chain.Validate(context.Background(), &dto.UpdateProductInput{ID: productID, PriceAfterDiscount: ptr(10.0)})
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestIDChains(t *testing.T) {
	v := validators.NewValidate()
	tests := []struct {
		chain *validators.Chain[dto.IDParam]
		msg   string
	}{
		{validators.CategoryID(v), "Invalid Category ID format"},
		{validators.SubCategoryID(v), "Invalid SubCategory id format"},
		{validators.BrandID(v), "Invalid Brand id format"},
		{validators.ProductID(v), "Invalid Product ID format"},
	}
	for _, tt := range tests {
		errs, err := tt.chain.Validate(context.Background(), &dto.IDParam{ID: "123"})
		require.NoError(t, err)
		require.Len(t, errs, 1)
		assert.Equal(t, "id", errs[0].Path)
		assert.Equal(t, "params", errs[0].Location)
		assert.Equal(t, tt.msg, errs[0].Message)

		errs, err = tt.chain.Validate(context.Background(), &dto.IDParam{ID: phonesID})
		require.NoError(t, err)
		assert.Empty(t, errs)
	}
}

func TestCreateSubCategory_ParentFromPath(t *testing.T) {
	categories := new(MockExister)
	categories.On("Exists", mock.Anything, phonesID).Return(true, nil).Once()
	chain := validators.CreateSubCategory(validators.NewValidate(), categories)

	in := &dto.CreateSubCategoryInput{ParentID: phonesID, Name: "Android Phones"}
	errs, err := chain.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, phonesID, in.Category)
	assert.Equal(t, "android-phones", in.Slug)
	categories.AssertExpectations(t)
}

type MockEmailChecker struct {
	mock.Mock
}

func (m *MockEmailChecker) EmailInUse(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestSignup(t *testing.T) {
	users := new(MockEmailChecker)
	users.On("EmailInUse", mock.Anything, "ayu@example.com").Return(true, nil).Once()
	chain := validators.Signup(validators.NewValidate(), users)

	errs, err := chain.Validate(context.Background(), &dto.SignupInput{
		Name: "Ayu", Email: " Ayu@Example.com", Password: "secret1", PasswordConfirm: "secret2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Password Confirmation incorrect", messageFor(errs, "passwordConfirm"))
	assert.Equal(t, "E-mail already in use", messageFor(errs, "email"))
	users.AssertExpectations(t)
}

func newApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := apperror.As(err); ok {
				return c.Status(e.Status).JSON(fiber.Map{"message": e.Message, "errors": e.Fields})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		},
	})
	app.Patch("/categories/:id", handler, func(c *fiber.Ctx) error {
		return c.JSON(validators.Input[dto.UpdateCategoryInput](c))
	})
	return app
}

type errorBody struct {
	Message string                `json:"message"`
	Errors  []apperror.FieldError `json:"errors"`
}

func TestHandler_BindsParamsAndBody(t *testing.T) {
	app := newApp(validators.UpdateCategory(validators.NewValidate()).Handler())

	req := httptest.NewRequest(http.MethodPatch, "/categories/"+phonesID, strings.NewReader(`{"name":"Smart Phones"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var in struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&in))
	assert.Equal(t, "Smart Phones", in.Name)
}

func TestHandler_Rejections(t *testing.T) {
	app := newApp(validators.UpdateCategory(validators.NewValidate()).Handler())

	tests := []struct {
		name string
		path string
		body string
		msg  string
	}{
		{"bad id", "/categories/42", `{"name":"Phones"}`, "Invalid Category ID format"},
		{"wrong type", "/categories/" + phonesID, `{"name":12}`, "Category name must be a string"},
		{"malformed", "/categories/" + phonesID, `{"name":`, "Invalid request body"},
		{"too short", "/categories/" + phonesID, `{"name":"ab"}`, "Too short category name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body errorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.msg, body.Message)
		})
	}
}

func TestHandler_FormTypeErrors(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := apperror.As(err); ok {
				return c.Status(e.Status).JSON(fiber.Map{"message": e.Message, "errors": e.Fields})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		},
	})
	chain := validators.UpdateProduct(validators.NewValidate(), new(MockExister), new(MockExister), catalog(), new(MockProductFinder))
	app.Patch("/products/:id", chain.Handler(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	multipartForm := func(field, value string) (*strings.Reader, string) {
		var sb strings.Builder
		w := multipart.NewWriter(&sb)
		require.NoError(t, w.WriteField(field, value))
		require.NoError(t, w.Close())
		return strings.NewReader(sb.String()), w.FormDataContentType()
	}

	tests := []struct {
		name      string
		body      func() (*strings.Reader, string)
		path, msg string
	}{
		{"multipart price", func() (*strings.Reader, string) { return multipartForm("price", "abc") }, "price", "Product price must be a number"},
		{"multipart quantity", func() (*strings.Reader, string) { return multipartForm("quantity", "many") }, "quantity", "Product quantity must be a number"},
		{"urlencoded rating", func() (*strings.Reader, string) {
			return strings.NewReader("ratingsAverage=good"), fiber.MIMEApplicationForm
		}, "ratingsAverage", "ratingsAverage must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := tt.body()
			req := httptest.NewRequest(http.MethodPatch, "/products/"+productID, body)
			req.Header.Set("Content-Type", contentType)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var out errorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, tt.msg, out.Message)
			require.Len(t, out.Errors, 1)
			assert.Equal(t, tt.path, out.Errors[0].Path)
			assert.Equal(t, "body", out.Errors[0].Location)
		})
	}
}
