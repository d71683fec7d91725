package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"printo/internal/model"
)

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) AdminEarnings(ctx context.Context, from, to time.Time) (*model.AdminEarnings, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminEarnings), args.Error(1)
}

func (m *MockDashboardService) SellerEarnings(ctx context.Context, sellerID string, from, to time.Time) (*model.SellerEarnings, error) {
	args := m.Called(ctx, sellerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SellerEarnings), args.Error(1)
}
