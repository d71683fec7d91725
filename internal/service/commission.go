package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"printo/internal/model"
	"printo/internal/repository"
)

// CommissionService manages the admin-set per-category commission rates.
type CommissionService interface {
	// Set inserts or replaces the rate for a category. Percent must be within
	// [0, 100] and the category must be a known one.
	Set(ctx context.Context, category string, percent decimal.Decimal) (*model.CategoryCommission, error)
	Get(ctx context.Context, category string) (*model.CategoryCommission, error)
	List(ctx context.Context) ([]model.CategoryCommission, error)
	Delete(ctx context.Context, category string) error
}

type commissionService struct {
	commissions repository.CommissionRepository
}

// NewCommissionService constructs a CommissionService.
func NewCommissionService(commissions repository.CommissionRepository) CommissionService {
	return &commissionService{commissions: commissions}
}

func (s *commissionService) Set(ctx context.Context, category string, percent decimal.Decimal) (*model.CategoryCommission, error) {
	if !model.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	if !model.ValidCommissionPercent(percent) {
		return nil, ErrInvalidPercent
	}

	now := time.Now().UTC()
	c := &model.CategoryCommission{
		ID:        uuid.NewString(),
		Category:  category,
		Percent:   percent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.commissions.Upsert(ctx, c)
}

func (s *commissionService) Get(ctx context.Context, category string) (*model.CategoryCommission, error) {
	if category == "" {
		return nil, ErrIDRequired
	}
	c, err := s.commissions.FindByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *commissionService) List(ctx context.Context) ([]model.CategoryCommission, error) {
	return s.commissions.List(ctx)
}

func (s *commissionService) Delete(ctx context.Context, category string) error {
	if category == "" {
		return ErrIDRequired
	}
	if err := s.commissions.Delete(ctx, category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
