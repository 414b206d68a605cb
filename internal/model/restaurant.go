package model

import (
	"time"
)

// Restaurant is the tenant root. Every category, product and settings row
// belongs to exactly one restaurant, and all admin queries are scoped by it.
type Restaurant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Slug      string    `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	OwnerID   *uint     `json:"owner_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RestaurantSettings holds per-tenant WiFi details shown on the public menu.
// At most one row exists per restaurant, enforced by the unique index and
// written with an upsert keyed on restaurant_id.
type RestaurantSettings struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"uniqueIndex;not null"`
	WifiName     string    `json:"wifi_name" gorm:"type:varchar(100)"`
	WifiPassword string    `json:"wifi_password" gorm:"type:varchar(100)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
