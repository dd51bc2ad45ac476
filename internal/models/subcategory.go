package models

import "time"

// SubCategory belongs to exactly one Category.
type SubCategory struct {
	ID         string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name       string    `json:"name" gorm:"uniqueIndex;type:varchar(32);not null"`
	Slug       string    `json:"slug" gorm:"index;type:varchar(64)"`
	CategoryID string    `json:"category" gorm:"index;type:varchar(36);not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName keeps the table name readable; GORM would otherwise use sub_categories.
func (SubCategory) TableName() string { return "subcategories" }
