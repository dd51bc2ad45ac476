package dto

// IDParam is the input of routes that only take a record id.
type IDParam struct {
	ID string `json:"-" form:"-" params:"id" validate:"required,uuid"`
}

// CreateCategoryInput is the body of POST /categories.
type CreateCategoryInput struct {
	Name  string `json:"name" form:"name" validate:"required,min=3,max=32"`
	Slug  string `json:"-" form:"-"`
	Image string `json:"-" form:"-"`
}

// SetUploads attaches the stored image URL.
func (in *CreateCategoryInput) SetUploads(u map[string][]string) {
	if urls := u["image"]; len(urls) > 0 {
		in.Image = urls[0]
	}
}

// UpdateCategoryInput is the body of PATCH /categories/:id. Nil fields are
// left untouched.
type UpdateCategoryInput struct {
	ID    string  `json:"-" form:"-" params:"id" validate:"required,uuid"`
	Name  *string `json:"name" form:"name" validate:"omitempty,min=3,max=32"`
	Slug  *string `json:"-" form:"-"`
	Image *string `json:"-" form:"-"`
}

// SetUploads attaches the stored image URL.
func (in *UpdateCategoryInput) SetUploads(u map[string][]string) {
	if urls := u["image"]; len(urls) > 0 {
		in.Image = &urls[0]
	}
}
