package repository

import (
	"context"

	"printo/internal/model"
)

// ProductFilter narrows product listings. Empty fields are ignored.
type ProductFilter struct {
	Category   string
	SellerID   string
	ActiveOnly bool
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	List(ctx context.Context, f ProductFilter, pq PageQuery) (*PageResult[model.Product], error)
	Update(ctx context.Context, p *model.Product) (*model.Product, error)
	// SetActive flips the soft-delete flag.
	SetActive(ctx context.Context, id string, active bool) error
	// AddImageKey appends an object storage key to the product's image list.
	AddImageKey(ctx context.Context, id, key string) error
	// DecrementStock subtracts qty if enough stock remains. The bool reports
	// whether a row was updated.
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
	// IncrementStock adds qty back (order cancellation).
	IncrementStock(ctx context.Context, id string, qty int) error
}
