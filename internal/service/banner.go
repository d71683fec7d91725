package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"printo/internal/logger"
	"printo/internal/model"
	"printo/internal/repository"
	"printo/internal/storage"
)

// BannerService manages the admin-curated storefront banners.
type BannerService interface {
	// Create uploads the banner image and stores the banner record, rolling
	// back storage if the record fails.
	Create(ctx context.Context, title, linkURL string, r io.Reader, originalFilename, contentType string, size int64) (*model.Banner, error)
	Get(ctx context.Context, id string) (*model.Banner, error)
	// List returns banners; activeOnly limits to the public storefront set.
	List(ctx context.Context, activeOnly bool) ([]model.Banner, error)
	Update(ctx context.Context, b *model.Banner) (*model.Banner, error)
	// Delete removes the banner record and then its stored image.
	Delete(ctx context.Context, id string) error
	// ImageURL returns a presigned download URL for a banner image key.
	ImageURL(ctx context.Context, key string) (string, error)
}

type bannerService struct {
	banners repository.BannerRepository
	store   storage.Storage
}

// NewBannerService constructs a BannerService.
func NewBannerService(banners repository.BannerRepository, store storage.Storage) BannerService {
	return &bannerService{banners: banners, store: store}
}

func (s *bannerService) Create(ctx context.Context, title, linkURL string, r io.Reader, originalFilename, contentType string, size int64) (*model.Banner, error) {
	if title == "" {
		return nil, fmt.Errorf("banner title is required")
	}
	if r == nil {
		return nil, fmt.Errorf("banner image is required")
	}

	id := uuid.NewString()
	key := fmt.Sprintf("banners/%s%s", id, filepath.Ext(originalFilename))

	info, err := s.store.Put(ctx, key, r, storage.PutOptions{
		Size:        size,
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload banner image: %w", err)
	}

	now := time.Now().UTC()
	b := &model.Banner{
		ID:        id,
		Title:     title,
		ImageKey:  info.Key,
		LinkURL:   linkURL,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.banners.Create(ctx, b)
	if err != nil {
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			logger.L().Error("orphaned banner image",
				zap.String("key", info.Key),
				zap.Error(delErr))
		}
		return nil, fmt.Errorf("store banner: %w", err)
	}
	return stored, nil
}

func (s *bannerService) Get(ctx context.Context, id string) (*model.Banner, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	b, err := s.banners.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *bannerService) List(ctx context.Context, activeOnly bool) ([]model.Banner, error) {
	return s.banners.List(ctx, activeOnly)
}

func (s *bannerService) Update(ctx context.Context, b *model.Banner) (*model.Banner, error) {
	if b.ID == "" {
		return nil, ErrIDRequired
	}
	existing, err := s.Get(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if b.Title == "" {
		b.Title = existing.Title
	}
	if b.ImageKey == "" {
		b.ImageKey = existing.ImageKey
	}
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now().UTC()

	updated, err := s.banners.Update(ctx, b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *bannerService) Delete(ctx context.Context, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.banners.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if b.ImageKey != "" {
		if err := s.store.Delete(ctx, b.ImageKey); err != nil {
			logger.L().Warn("banner image cleanup failed",
				zap.String("key", b.ImageKey),
				zap.Error(err))
		}
	}
	return nil
}

func (s *bannerService) ImageURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrIDRequired
	}
	return s.store.PresignGet(ctx, key, 15*time.Minute)
}
