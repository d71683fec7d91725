package repository

import (
	"context"

	"printo/internal/model"
)

// CommissionRepository defines data access for category commissions.
type CommissionRepository interface {
	// Upsert inserts or replaces the commission row for a category.
	Upsert(ctx context.Context, c *model.CategoryCommission) (*model.CategoryCommission, error)
	FindByCategory(ctx context.Context, category string) (*model.CategoryCommission, error)
	List(ctx context.Context) ([]model.CategoryCommission, error)
	Delete(ctx context.Context, category string) error
}
