package model

import (
	"time"
)

// Category represents a menu section. Categories are insert-only: new ones
// are appended at the end of the display order and never edited or deleted.
type Category struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Slug         string    `json:"slug" gorm:"type:varchar(100);not null"`
	SortOrder    int       `json:"sort_order" gorm:"not null"`
	RestaurantID uint      `json:"restaurant_id" gorm:"index;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
