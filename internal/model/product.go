package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProductImageURL is used when a product is saved without an image.
const DefaultProductImageURL = "https://images.unsplash.com/photo-1551024709-8f23befc6f87?auto=format&fit=crop&w=300&q=80"

// taxDivisor converts a tax-inclusive price to its pre-tax amount (21% VAT).
var taxDivisor = decimal.RequireFromString("1.21")

// Product is the central mutable entity of the admin module. The active flag
// controls public-menu visibility without deleting the row; deletes are hard.
type Product struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Name            string          `json:"name" gorm:"type:varchar(255);not null"`
	Description     string          `json:"description" gorm:"type:text"`
	Price           decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	PriceWithoutTax decimal.Decimal `json:"price_without_tax" gorm:"type:numeric(12,2)"`
	ImageURL        string          `json:"image_url" gorm:"type:text"`
	CategoryID      uint            `json:"category_id" gorm:"index;not null"`
	RestaurantID    uint            `json:"restaurant_id" gorm:"index;not null"`
	IsActive        bool            `json:"is_active" gorm:"not null"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PriceWithoutTax derives the pre-tax amount for a tax-inclusive price,
// rounded to 2 decimal places. It is a convenience default: the stored value
// remains independently editable and is persisted as entered at save time.
func PriceWithoutTax(price decimal.Decimal) decimal.Decimal {
	return price.Div(taxDivisor).Round(2)
}
