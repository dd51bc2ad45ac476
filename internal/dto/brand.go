package dto

// CreateBrandInput is the body of POST /brands.
type CreateBrandInput struct {
	Name  string `json:"name" form:"name" validate:"required,min=3,max=32"`
	Slug  string `json:"-" form:"-"`
	Image string `json:"-" form:"-"`
}

func (in *CreateBrandInput) SetUploads(u map[string][]string) {
	if urls := u["image"]; len(urls) > 0 {
		in.Image = urls[0]
	}
}

// UpdateBrandInput is the body of PATCH /brands/:id.
type UpdateBrandInput struct {
	ID    string  `json:"-" form:"-" params:"id" validate:"required,uuid"`
	Name  *string `json:"name" form:"name" validate:"omitempty,min=3,max=32"`
	Slug  *string `json:"-" form:"-"`
	Image *string `json:"-" form:"-"`
}

func (in *UpdateBrandInput) SetUploads(u map[string][]string) {
	if urls := u["image"]; len(urls) > 0 {
		in.Image = &urls[0]
	}
}
