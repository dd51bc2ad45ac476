package dto

// CreateProductInput is the body of POST /products.
type CreateProductInput struct {
	Title              string   `json:"title" form:"title" validate:"required,min=5,max=100"`
	Slug               string   `json:"-" form:"-"`
	Description        string   `json:"description" form:"description" validate:"required,min=20,max=2000"`
	Quantity           *int     `json:"quantity" form:"quantity" validate:"required,gte=0"`
	Sold               *int     `json:"sold" form:"sold" validate:"omitempty,gte=0"`
	Price              *float64 `json:"price" form:"price" validate:"required,gte=0,lte=200000"`
	PriceAfterDiscount *float64 `json:"priceAfterDiscount" form:"priceAfterDiscount" validate:"omitempty,gte=0"`
	Colors             []string `json:"colors" form:"colors" validate:"omitempty,dive,required"`
	ImageCover         string   `json:"imageCover" form:"imageCover" validate:"required"`
	Images             []string `json:"images" form:"images" validate:"omitempty,max=5,dive,required"`
	Category           string   `json:"category" form:"category" validate:"required,uuid"`
	SubCategories      []string `json:"subcategories" form:"subcategories" validate:"omitempty,dive,uuid"`
	Brand              string   `json:"brand" form:"brand" validate:"omitempty,uuid"`
	RatingsAverage     *float64 `json:"ratingsAverage" form:"ratingsAverage" validate:"omitempty,gte=1,lte=5"`
	RatingsQuantity    *int     `json:"ratingsQuantity" form:"ratingsQuantity" validate:"omitempty,gte=0"`
}

// SetUploads attaches the stored cover and gallery URLs.
func (in *CreateProductInput) SetUploads(u map[string][]string) {
	if urls := u["imageCover"]; len(urls) > 0 {
		in.ImageCover = urls[0]
	}
	if urls := u["images"]; len(urls) > 0 {
		in.Images = urls
	}
}

// UpdateProductInput is the body of PATCH /products/:id. Nil fields are left
// untouched.
type UpdateProductInput struct {
	ID                 string    `json:"-" form:"-" params:"id" validate:"required,uuid"`
	Title              *string   `json:"title" form:"title" validate:"omitempty,min=5,max=100"`
	Slug               *string   `json:"-" form:"-"`
	Description        *string   `json:"description" form:"description" validate:"omitempty,min=20,max=2000"`
	Quantity           *int      `json:"quantity" form:"quantity" validate:"omitempty,gte=0"`
	Sold               *int      `json:"sold" form:"sold" validate:"omitempty,gte=0"`
	Price              *float64  `json:"price" form:"price" validate:"omitempty,gte=0,lte=200000"`
	PriceAfterDiscount *float64  `json:"priceAfterDiscount" form:"priceAfterDiscount" validate:"omitempty,gte=0"`
	Colors             *[]string `json:"colors" form:"colors" validate:"omitempty,dive,required"`
	ImageCover         *string   `json:"imageCover" form:"imageCover" validate:"omitempty"`
	Images             *[]string `json:"images" form:"images" validate:"omitempty,max=5,dive,required"`
	Category           *string   `json:"category" form:"category" validate:"omitempty,uuid"`
	SubCategories      *[]string `json:"subcategories" form:"subcategories" validate:"omitempty,dive,uuid"`
	Brand              *string   `json:"brand" form:"brand" validate:"omitempty,uuid"`
	RatingsAverage     *float64  `json:"ratingsAverage" form:"ratingsAverage" validate:"omitempty,gte=1,lte=5"`
	RatingsQuantity    *int      `json:"ratingsQuantity" form:"ratingsQuantity" validate:"omitempty,gte=0"`
}

// SetUploads attaches the stored cover and gallery URLs.
func (in *UpdateProductInput) SetUploads(u map[string][]string) {
	if urls := u["imageCover"]; len(urls) > 0 {
		in.ImageCover = &urls[0]
	}
	if urls := u["images"]; len(urls) > 0 {
		in.Images = &urls
	}
}
