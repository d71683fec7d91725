package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"printo/internal/model"
	"printo/internal/service"
)

type MockSellerService struct {
	mock.Mock
}

func (m *MockSellerService) CreateProfile(ctx context.Context, userID, parentID, shopName, phone, address, gstin string) (*model.Seller, error) {
	args := m.Called(ctx, userID, parentID, shopName, phone, address, gstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Seller), args.Error(1)
}

func (m *MockSellerService) Get(ctx context.Context, id string) (*model.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Seller), args.Error(1)
}

func (m *MockSellerService) GetByUser(ctx context.Context, userID string) (*model.Seller, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Seller), args.Error(1)
}

func (m *MockSellerService) List(ctx context.Context, limit, offset int) (*service.SellerListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SellerListResult), args.Error(1)
}

func (m *MockSellerService) Children(ctx context.Context, parentID string) ([]model.Seller, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Seller), args.Error(1)
}

func (m *MockSellerService) Update(ctx context.Context, s *model.Seller) (*model.Seller, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Seller), args.Error(1)
}

func (m *MockSellerService) SetVerification(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
