package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categories form the enumerated set a product must belong to. Category
// membership is validated in application code at request time.
var Categories = []string{
	"apparel",
	"stationery",
	"electronics",
	"home-decor",
	"packaging",
	"signage",
}

// ValidCategory reports whether c is a member of the category set.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Variant is an embedded color/size option on a product. Variants are stored
// inline with the product row, not as separate rows.
type Variant struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
	Stock int    `json:"stock"`
}

// Product is a sellable item owned by a seller.
type Product struct {
	ID          string          `json:"id"`
	SellerID    string          `json:"seller_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Variants    []Variant       `json:"variants,omitempty"`
	ImageKeys   []string        `json:"image_keys,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
