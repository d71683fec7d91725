package repository

import (
	"context"
	"time"

	"printo/internal/model"
)

// OrderRepository defines data access for orders, payments, and the earnings
// aggregates computed from them.
type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) (*model.Order, error)
	FindByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.Order], error)
	// ListBySeller returns orders containing at least one line for the seller.
	ListBySeller(ctx context.Context, sellerID string, pq PageQuery) (*PageResult[model.Order], error)
	UpdateStatus(ctx context.Context, id, status string) error

	CreatePayment(ctx context.Context, p *model.Payment) (*model.Payment, error)
	FindPaymentByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id, status, gatewayPayID string) error

	AdminEarnings(ctx context.Context, from, to time.Time) (*model.AdminEarnings, error)
	SellerEarnings(ctx context.Context, sellerID string, from, to time.Time) (*model.SellerEarnings, error)
}
