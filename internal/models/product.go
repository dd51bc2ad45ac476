package models

import "time"

// Product is a sellable item. List fields are stored as JSON columns, the way
// a document store would keep them inline.
type Product struct {
	ID                 string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Title              string    `json:"title" gorm:"type:varchar(100);not null"`
	Slug               string    `json:"slug" gorm:"index;type:varchar(128)"`
	Description        string    `json:"description" gorm:"type:text;not null"`
	Quantity           int       `json:"quantity" gorm:"not null"`
	Sold               int       `json:"sold" gorm:"default:0"`
	Price              float64   `json:"price" gorm:"not null"`
	PriceAfterDiscount *float64  `json:"priceAfterDiscount,omitempty"`
	Colors             []string  `json:"colors" gorm:"serializer:json"`
	ImageCover         string    `json:"imageCover" gorm:"type:varchar(512);not null"`
	Images             []string  `json:"images" gorm:"serializer:json"`
	CategoryID         string    `json:"category" gorm:"index;type:varchar(36);not null"`
	SubCategories      []string  `json:"subcategories" gorm:"column:subcategories;serializer:json"`
	BrandID            *string   `json:"brand,omitempty" gorm:"index;type:varchar(36)"`
	RatingsAverage     *float64  `json:"ratingsAverage,omitempty"`
	RatingsQuantity    int       `json:"ratingsQuantity" gorm:"default:0"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
