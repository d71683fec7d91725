package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"printo/internal/model"
)

type MockCommissionService struct {
	mock.Mock
}

func (m *MockCommissionService) Set(ctx context.Context, category string, percent decimal.Decimal) (*model.CategoryCommission, error) {
	args := m.Called(ctx, category, percent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CategoryCommission), args.Error(1)
}

func (m *MockCommissionService) Get(ctx context.Context, category string) (*model.CategoryCommission, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CategoryCommission), args.Error(1)
}

func (m *MockCommissionService) List(ctx context.Context) ([]model.CategoryCommission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryCommission), args.Error(1)
}

func (m *MockCommissionService) Delete(ctx context.Context, category string) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}
