package repository

import (
	"context"

	"printo/internal/model"
)

// NotificationRepository defines data access for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.Notification], error)
	MarkRead(ctx context.Context, id, userID string) error
	CountUnread(ctx context.Context, userID string) (int, error)
}

// BannerRepository defines data access for storefront banners.
type BannerRepository interface {
	Create(ctx context.Context, b *model.Banner) (*model.Banner, error)
	FindByID(ctx context.Context, id string) (*model.Banner, error)
	List(ctx context.Context, activeOnly bool) ([]model.Banner, error)
	Update(ctx context.Context, b *model.Banner) (*model.Banner, error)
	Delete(ctx context.Context, id string) error
}
