package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminEarnings is a platform-wide earnings snapshot over a period, computed
// from non-cancelled orders.
type AdminEarnings struct {
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	OrderCount      int             `json:"order_count"`
	GrossRevenue    decimal.Decimal `json:"gross_revenue"`
	TotalCommission decimal.Decimal `json:"total_commission"`
}

// SellerEarnings is one seller's earnings snapshot over a period. Revenue and
// payout are summed from the seller's embedded order lines.
type SellerEarnings struct {
	SellerID   string          `json:"seller_id"`
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
	Payout     decimal.Decimal `json:"payout"`
}
