package validators

import (
	"etalase/internal/dto"
	"etalase/pkg/slug"

	"github.com/go-playground/validator/v10"
)

var brandMessages = Messages{
	"id":            "Invalid Brand id format",
	"name.required": "Brand required",
	"name.min":      "Too short Brand name",
	"name.max":      "Too long Brand name",
	"name.type":     "Brand name must be a string",
}

func BrandID(v *validator.Validate) *Chain[dto.IDParam] {
	return New[dto.IDParam](v, brandMessages)
}

func CreateBrand(v *validator.Validate) *Chain[dto.CreateBrandInput] {
	return New[dto.CreateBrandInput](v, brandMessages).
		Prepare(func(in *dto.CreateBrandInput) {
			in.Slug = slug.Make(in.Name)
		})
}

func UpdateBrand(v *validator.Validate) *Chain[dto.UpdateBrandInput] {
	return New[dto.UpdateBrandInput](v, brandMessages).
		Prepare(func(in *dto.UpdateBrandInput) {
			if in.Name != nil {
				s := slug.Make(*in.Name)
				in.Slug = &s
			}
		})
}
