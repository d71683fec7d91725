package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"printo/internal/logger"
	"printo/internal/model"
	"printo/internal/repository"
)

// SellerListResult is the service-level DTO for paginated sellers.
type SellerListResult struct {
	Items []model.Seller `json:"data"`
	Total int            `json:"total"`
}

// SellerService defines the use cases around seller profiles and their
// admin-controlled verification status.
type SellerService interface {
	// CreateProfile creates the seller profile owned by userID. ParentID, when
	// set, must name an existing seller.
	CreateProfile(ctx context.Context, userID, parentID, shopName, phone, address, gstin string) (*model.Seller, error)

	Get(ctx context.Context, id string) (*model.Seller, error)
	GetByUser(ctx context.Context, userID string) (*model.Seller, error)
	List(ctx context.Context, limit, offset int) (*SellerListResult, error)
	Children(ctx context.Context, parentID string) ([]model.Seller, error)
	Update(ctx context.Context, s *model.Seller) (*model.Seller, error)

	// SetVerification sets the verification status. Admin only; enforced at
	// the route layer.
	SetVerification(ctx context.Context, id, status string) error
}

type sellerService struct {
	sellers repository.SellerRepository
}

// NewSellerService constructs a new SellerService.
func NewSellerService(sellers repository.SellerRepository) SellerService {
	return &sellerService{sellers: sellers}
}

func (s *sellerService) CreateProfile(ctx context.Context, userID, parentID, shopName, phone, address, gstin string) (*model.Seller, error) {
	if userID == "" || shopName == "" {
		return nil, fmt.Errorf("user id and shop name are required")
	}

	// The parent reference is reporting-only, but reject ids that point
	// nowhere at creation time.
	if parentID != "" {
		if _, err := s.sellers.FindByID(ctx, parentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("parent seller %s not found", parentID)
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	seller := &model.Seller{
		ID:           uuid.NewString(),
		UserID:       userID,
		ParentID:     parentID,
		ShopName:     shopName,
		Phone:        phone,
		Address:      address,
		GSTIN:        gstin,
		Verification: model.VerificationPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.sellers.Create(ctx, seller)
}

func (s *sellerService) Get(ctx context.Context, id string) (*model.Seller, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	seller, err := s.sellers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return seller, nil
}

func (s *sellerService) GetByUser(ctx context.Context, userID string) (*model.Seller, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	seller, err := s.sellers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return seller, nil
}

func (s *sellerService) List(ctx context.Context, limit, offset int) (*SellerListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.sellers.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &SellerListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *sellerService) Children(ctx context.Context, parentID string) ([]model.Seller, error) {
	if parentID == "" {
		return nil, ErrIDRequired
	}
	return s.sellers.ListChildren(ctx, parentID)
}

func (s *sellerService) Update(ctx context.Context, seller *model.Seller) (*model.Seller, error) {
	if seller.ID == "" {
		return nil, ErrIDRequired
	}
	updated, err := s.sellers.Update(ctx, seller)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *sellerService) SetVerification(ctx context.Context, id, status string) error {
	if id == "" {
		return ErrIDRequired
	}
	if !model.ValidVerification(status) {
		return fmt.Errorf("unknown verification status %q", status)
	}
	if err := s.sellers.UpdateVerification(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	logger.L().Info("seller verification updated", zap.String("seller_id", id), zap.String("status", status))
	return nil
}
