package validators

import (
	"context"
	"errors"
	"strconv"

	"etalase/internal/apperror"
	"etalase/internal/dto"
	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/pkg/slug"

	"github.com/go-playground/validator/v10"
)

const maxPriceLength = 32

var productMessages = Messages{
	"id":                   "Invalid Product ID format",
	"title.required":       "Product Title is required",
	"title.min":            "must be at least 5 chars",
	"title.max":            "Too long product title",
	"title.type":           "Product Title must be a string",
	"description.required": "Product description is required",
	"description.min":      "Too short description",
	"description.max":      "Too long description",
	"quantity.required":    "Product quantity is required",
	"quantity":             "Product quantity must be a number",
	"sold":                 "Product sold must be a number",
	"price.required":       "Product price is required",
	"price.lte":            "Too long product price",
	"price":                "Product price must be a number",
	"priceAfterDiscount":   "Product priceAfterDiscount must be a number",
	"colors":               "availableColors should be array of string",
	"imageCover.required":  "Product imageCover is required",
	"images.max":           "Too many images",
	"images":               "images should be array of string",
	"category.required":    "Product must be belong to a category",
	"category":             "Invalid ID format for parent Category",
	"subcategories":        "Invalid SubCategory ID format",
	"brand":                "Invalid Brand ID format",
	"ratingsAverage.gte":   "Rating must be above or equal 1.0",
	"ratingsAverage.lte":   "Rating must be below or equal 5.0",
	"ratingsAverage":       "ratingsAverage must be a number",
	"ratingsQuantity":      "ratingsQuantity must be a number",
}

// Messages for the relational product checks.
const (
	MsgPriceTooLong       = "To long price"
	MsgDiscountNotLower   = "priceAfterDiscount must be lower than price"
	MsgInvalidCategory    = "Invalid Category Id: %s"
	MsgInvalidBrand       = "Invalid Brand Id: %s"
	MsgInvalidSubCategory = "Invalid subcategories Ids"
	MsgForeignSubCategory = "This SubCategory does not belong to the correct Category"
)

func ProductID(v *validator.Validate) *Chain[dto.IDParam] {
	return New[dto.IDParam](v, productMessages)
}

// CreateProduct checks a new product and every reference it carries.
func CreateProduct(v *validator.Validate, categories, brands Exister, subs SubCategoryFinder) *Chain[dto.CreateProductInput] {
	return New[dto.CreateProductInput](v, productMessages).
		Prepare(func(in *dto.CreateProductInput) {
			in.Slug = slug.Make(in.Title)
			in.SubCategories = dedupe(in.SubCategories)
		}).
		Rule(func(in *dto.CreateProductInput) []apperror.FieldError {
			return CheckPriceLength(in.Price)
		}).
		Rule(func(in *dto.CreateProductInput) []apperror.FieldError {
			return CheckDiscount(in.PriceAfterDiscount, in.Price)
		}).
		Resolve("category", reference(categories, "category", MsgInvalidCategory,
			func(in *dto.CreateProductInput) string { return in.Category })).
		Resolve("brand", reference(brands, "brand", MsgInvalidBrand,
			func(in *dto.CreateProductInput) string { return in.Brand })).
		Resolve("subcategories", func(ctx context.Context, in *dto.CreateProductInput) (Rule[dto.CreateProductInput], error) {
			found, owned, err := loadSubCategories(ctx, subs, in.SubCategories, in.Category)
			if err != nil || found == nil {
				return nil, err
			}
			return func(in *dto.CreateProductInput) []apperror.FieldError {
				return CheckSubCategories(in.SubCategories, found, owned, validID(in.Category))
			}, nil
		})
}

// UpdateProduct checks the provided fields against the product they will
// produce: a new price or discount is compared with the stored counterpart,
// and a new category must own the subcategories the product keeps.
func UpdateProduct(v *validator.Validate, categories, brands Exister, subs SubCategoryFinder, products ProductFinder) *Chain[dto.UpdateProductInput] {
	return New[dto.UpdateProductInput](v, productMessages).
		Prepare(func(in *dto.UpdateProductInput) {
			if in.Title != nil {
				s := slug.Make(*in.Title)
				in.Slug = &s
			}
			if in.SubCategories != nil {
				ids := dedupe(*in.SubCategories)
				in.SubCategories = &ids
			}
		}).
		Rule(func(in *dto.UpdateProductInput) []apperror.FieldError {
			return CheckPriceLength(in.Price)
		}).
		Resolve("priceAfterDiscount", func(ctx context.Context, in *dto.UpdateProductInput) (Rule[dto.UpdateProductInput], error) {
			if in.PriceAfterDiscount == nil && in.Price == nil {
				return nil, nil
			}
			discount, price := in.PriceAfterDiscount, in.Price
			if discount == nil || price == nil {
				stored, err := storedProduct(ctx, products, in.ID)
				if err != nil || stored == nil {
					return nil, err
				}
				if discount == nil {
					discount = stored.PriceAfterDiscount
				}
				if price == nil {
					price = &stored.Price
				}
			}
			return func(*dto.UpdateProductInput) []apperror.FieldError {
				return CheckDiscount(discount, price)
			}, nil
		}).
		Resolve("category", reference(categories, "category", MsgInvalidCategory,
			func(in *dto.UpdateProductInput) string { return deref(in.Category) })).
		Resolve("brand", reference(brands, "brand", MsgInvalidBrand,
			func(in *dto.UpdateProductInput) string { return deref(in.Brand) })).
		Resolve("subcategories", func(ctx context.Context, in *dto.UpdateProductInput) (Rule[dto.UpdateProductInput], error) {
			if in.SubCategories != nil {
				if len(*in.SubCategories) == 0 {
					return nil, nil
				}
				category := deref(in.Category)
				if in.Category == nil {
					stored, err := storedProduct(ctx, products, in.ID)
					if err != nil || stored == nil {
						return nil, err
					}
					category = stored.CategoryID
				}
				return subCategoryRule[dto.UpdateProductInput](ctx, subs, *in.SubCategories, category)
			}
			if in.Category == nil {
				return nil, nil
			}
			// the category moves and the stored subcategories stay attached
			stored, err := storedProduct(ctx, products, in.ID)
			if err != nil || stored == nil || len(stored.SubCategories) == 0 {
				return nil, err
			}
			found, err := subs.FindByIDs(ctx, stored.SubCategories)
			if err != nil {
				return nil, err
			}
			// subcategories deleted since the product was saved are ignored
			ids := make([]string, len(found))
			for i, sc := range found {
				ids[i] = sc.ID
			}
			return subCategoryRule[dto.UpdateProductInput](ctx, subs, ids, *in.Category)
		})
}

// subCategoryRule loads what CheckSubCategories needs for ids in category.
func subCategoryRule[T any](ctx context.Context, subs SubCategoryFinder, ids []string, category string) (Rule[T], error) {
	found, owned, err := loadSubCategories(ctx, subs, ids, category)
	if err != nil || found == nil {
		return nil, err
	}
	return func(*T) []apperror.FieldError {
		return CheckSubCategories(ids, found, owned, validID(category))
	}, nil
}

// CheckPriceLength rejects prices whose decimal form is longer than 32 chars.
func CheckPriceLength(price *float64) []apperror.FieldError {
	if price == nil {
		return nil
	}
	if len(strconv.FormatFloat(*price, 'f', -1, 64)) > maxPriceLength {
		return []apperror.FieldError{FieldErr("price", *price, MsgPriceTooLong)}
	}
	return nil
}

// CheckDiscount requires the discounted price to be strictly lower than the
// price. Nothing is checked when either is missing.
func CheckDiscount(discount, price *float64) []apperror.FieldError {
	if discount == nil || price == nil {
		return nil
	}
	if *discount >= *price {
		return []apperror.FieldError{FieldErr("priceAfterDiscount", *discount, MsgDiscountNotLower)}
	}
	return nil
}

// CheckSubCategories compares the requested ids with what the store holds:
// every id must exist, and when the category is known every id must be one
// of its subcategories. ids are expected to be distinct.
func CheckSubCategories(ids []string, found, ofCategory []models.SubCategory, categoryKnown bool) []apperror.FieldError {
	if len(ids) == 0 {
		return nil
	}
	if len(found) != len(ids) {
		return []apperror.FieldError{FieldErr("subcategories", ids, MsgInvalidSubCategory)}
	}
	if !categoryKnown {
		return nil
	}
	owned := make(map[string]bool, len(ofCategory))
	for _, s := range ofCategory {
		owned[s.ID] = true
	}
	for _, id := range ids {
		if !owned[id] {
			return []apperror.FieldError{FieldErr("subcategories", ids, MsgForeignSubCategory)}
		}
	}
	return nil
}

// loadSubCategories returns nil slices when there is nothing to check.
func loadSubCategories(ctx context.Context, subs SubCategoryFinder, ids []string, category string) (found, owned []models.SubCategory, err error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}
	found, err = subs.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if found == nil {
		found = []models.SubCategory{}
	}
	if validID(category) {
		owned, err = subs.ListByCategory(ctx, category)
		if err != nil {
			return nil, nil, err
		}
	}
	return found, owned, nil
}

// storedProduct returns nil without error when the product is missing; the
// handler reports the 404.
func storedProduct(ctx context.Context, products ProductFinder, id string) (*models.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := products.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
