package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"printo/internal/model"
)

type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) Upsert(ctx context.Context, c *model.CategoryCommission) (*model.CategoryCommission, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CategoryCommission), args.Error(1)
}

func (m *MockCommissionRepository) FindByCategory(ctx context.Context, category string) (*model.CategoryCommission, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CategoryCommission), args.Error(1)
}

func (m *MockCommissionRepository) List(ctx context.Context) ([]model.CategoryCommission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryCommission), args.Error(1)
}

func (m *MockCommissionRepository) Delete(ctx context.Context, category string) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}
