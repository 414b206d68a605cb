package model

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user account can hold. Owners manage exactly one restaurant,
// resellers manage any restaurant in their portfolio.
const (
	RoleOwner    = "owner"
	RoleReseller = "reseller"
)

// User represents the user model stored in the database
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password  string         `json:"-" gorm:"type:varchar(255)"`
	Role      string         `json:"role" gorm:"type:varchar(50);not null;default:'owner'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// LandingRoute returns the post-login destination for the user's role.
// An unknown or empty role falls back to the owner destination; callers
// should treat that fallback as a reportable condition, not a silent default.
func (u *User) LandingRoute() (route string, known bool) {
	switch u.Role {
	case RoleReseller:
		return "/reseller", true
	case RoleOwner:
		return "/admin", true
	default:
		return "/admin", false
	}
}
