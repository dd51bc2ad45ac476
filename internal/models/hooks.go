package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (c *Category) BeforeCreate(*gorm.DB) error    { newID(&c.ID); return nil }
func (s *SubCategory) BeforeCreate(*gorm.DB) error { newID(&s.ID); return nil }
func (b *Brand) BeforeCreate(*gorm.DB) error       { newID(&b.ID); return nil }
func (p *Product) BeforeCreate(*gorm.DB) error     { newID(&p.ID); return nil }
func (u *User) BeforeCreate(*gorm.DB) error        { newID(&u.ID); return nil }
