package repository

import (
	"context"

	"printo/internal/model"
)

// SellerRepository defines data access for seller profiles.
type SellerRepository interface {
	Create(ctx context.Context, s *model.Seller) (*model.Seller, error)
	FindByID(ctx context.Context, id string) (*model.Seller, error)
	FindByUserID(ctx context.Context, userID string) (*model.Seller, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Seller], error)
	// ListChildren returns sellers whose parent_id equals parentID.
	ListChildren(ctx context.Context, parentID string) ([]model.Seller, error)
	Update(ctx context.Context, s *model.Seller) (*model.Seller, error)
	UpdateVerification(ctx context.Context, id, status string) error
}
