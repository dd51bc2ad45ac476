package validators

import (
	"etalase/internal/dto"
	"etalase/pkg/slug"

	"github.com/go-playground/validator/v10"
)

var categoryMessages = Messages{
	"id":            "Invalid Category ID format",
	"name.required": "Category required",
	"name.min":      "Too short category name",
	"name.max":      "Too long category name",
	"name.type":     "Category name must be a string",
}

func CategoryID(v *validator.Validate) *Chain[dto.IDParam] {
	return New[dto.IDParam](v, categoryMessages)
}

func CreateCategory(v *validator.Validate) *Chain[dto.CreateCategoryInput] {
	return New[dto.CreateCategoryInput](v, categoryMessages).
		Prepare(func(in *dto.CreateCategoryInput) {
			in.Slug = slug.Make(in.Name)
		})
}

func UpdateCategory(v *validator.Validate) *Chain[dto.UpdateCategoryInput] {
	return New[dto.UpdateCategoryInput](v, categoryMessages).
		Prepare(func(in *dto.UpdateCategoryInput) {
			if in.Name != nil {
				s := slug.Make(*in.Name)
				in.Slug = &s
			}
		})
}
