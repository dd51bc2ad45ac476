package validators

import (
	"etalase/internal/dto"
	"etalase/pkg/slug"

	"github.com/go-playground/validator/v10"
)

var subCategoryMessages = Messages{
	"id":                "Invalid SubCategory id format",
	"name.required":     "SubCategory required",
	"name.min":          "Too short Subcategory name",
	"name.max":          "Too long Subcategory name",
	"name.type":         "SubCategory name must be a string",
	"category.required": "subCategory must be belong to category",
	"category.uuid":     "Invalid Category id format",
	"category.type":     "Invalid Category id format",
	"categoryId":        "Invalid Category id format",
}

func SubCategoryID(v *validator.Validate) *Chain[dto.IDParam] {
	return New[dto.IDParam](v, subCategoryMessages)
}

// SubCategoryParent checks the parent id of the nested list route.
func SubCategoryParent(v *validator.Validate) *Chain[dto.SubCategoryParent] {
	return New[dto.SubCategoryParent](v, subCategoryMessages)
}

// CreateSubCategory takes the category from the path when the body has none.
func CreateSubCategory(v *validator.Validate, categories Exister) *Chain[dto.CreateSubCategoryInput] {
	return New[dto.CreateSubCategoryInput](v, subCategoryMessages).
		Prepare(func(in *dto.CreateSubCategoryInput) {
			if in.Category == "" {
				in.Category = in.ParentID
			}
			in.Slug = slug.Make(in.Name)
		}).
		Resolve("category", reference(categories, "category", "Invalid Category Id: %s",
			func(in *dto.CreateSubCategoryInput) string { return in.Category }))
}

func UpdateSubCategory(v *validator.Validate, categories Exister) *Chain[dto.UpdateSubCategoryInput] {
	return New[dto.UpdateSubCategoryInput](v, subCategoryMessages).
		Prepare(func(in *dto.UpdateSubCategoryInput) {
			if in.Name != nil {
				s := slug.Make(*in.Name)
				in.Slug = &s
			}
		}).
		Resolve("category", reference(categories, "category", "Invalid Category Id: %s",
			func(in *dto.UpdateSubCategoryInput) string {
				if in.Category == nil {
					return ""
				}
				return *in.Category
			}))
}
