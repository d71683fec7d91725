package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryCommission is the per-category percentage subtracted from item
// revenue to determine platform earnings versus seller payout. Percent must
// be within [0, 100]; the bound is checked at request time.
type CategoryCommission struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	Percent   decimal.Decimal `json:"percent"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ValidCommissionPercent reports whether p lies within [0, 100].
func ValidCommissionPercent(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(decimal.NewFromInt(100))
}
