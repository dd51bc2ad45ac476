package models

import "time"

// Brand is the manufacturer a product may reference.
type Brand struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(32);not null"`
	Slug      string    `json:"slug" gorm:"index;type:varchar(64)"`
	Image     string    `json:"image,omitempty" gorm:"type:varchar(512)"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
