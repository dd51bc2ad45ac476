package dto

// CreateSubCategoryInput is the body of POST /subcategories and of
// POST /categories/:categoryId/subcategories. The path parameter fills
// Category when the body leaves it out.
type CreateSubCategoryInput struct {
	ParentID string `json:"-" form:"-" params:"categoryId" validate:"omitempty,uuid"`
	Name     string `json:"name" form:"name" validate:"required,min=2,max=32"`
	Slug     string `json:"-" form:"-"`
	Category string `json:"category" form:"category" validate:"required,uuid"`
}

// UpdateSubCategoryInput is the body of PATCH /subcategories/:id.
type UpdateSubCategoryInput struct {
	ID       string  `json:"-" form:"-" params:"id" validate:"required,uuid"`
	Name     *string `json:"name" form:"name" validate:"omitempty,min=2,max=32"`
	Slug     *string `json:"-" form:"-"`
	Category *string `json:"category" form:"category" validate:"omitempty,uuid"`
}

// SubCategoryParent is the input of GET /categories/:categoryId/subcategories.
type SubCategoryParent struct {
	CategoryID string `json:"-" form:"-" params:"categoryId" validate:"omitempty,uuid"`
}
