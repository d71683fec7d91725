package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"printo/internal/model"
	"printo/internal/repository"
	"printo/internal/repository/mocks"
)

func TestSellerService_CreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending profile", func(t *testing.T) {
		repo := new(mocks.MockSellerRepository)
		svc := NewSellerService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(s *model.Seller) bool {
			return s.UserID == "user-1" &&
				s.ShopName == "Asha Prints" &&
				s.Verification == model.VerificationPending &&
				s.ID != ""
		})).Return(&model.Seller{ID: "seller-1"}, nil)

		seller, err := svc.CreateProfile(ctx, "user-1", "", "Asha Prints", "9800000000", "Pune", "27AAAAA0000A1Z5")

		assert.NoError(t, err)
		assert.Equal(t, "seller-1", seller.ID)
		repo.AssertExpectations(t)
	})

	t.Run("validates parent exists", func(t *testing.T) {
		repo := new(mocks.MockSellerRepository)
		svc := NewSellerService(repo)

		repo.On("FindByID", ctx, "ghost").Return(nil, sql.ErrNoRows)

		_, err := svc.CreateProfile(ctx, "user-1", "ghost", "Asha Prints", "", "", "")

		assert.ErrorContains(t, err, "parent seller ghost not found")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("links known parent", func(t *testing.T) {
		repo := new(mocks.MockSellerRepository)
		svc := NewSellerService(repo)

		repo.On("FindByID", ctx, "seller-parent").Return(&model.Seller{ID: "seller-parent"}, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(s *model.Seller) bool {
			return s.ParentID == "seller-parent"
		})).Return(&model.Seller{ID: "seller-2", ParentID: "seller-parent"}, nil)

		seller, err := svc.CreateProfile(ctx, "user-2", "seller-parent", "Branch Shop", "", "", "")

		assert.NoError(t, err)
		assert.Equal(t, "seller-parent", seller.ParentID)
	})

	t.Run("requires shop name", func(t *testing.T) {
		repo := new(mocks.MockSellerRepository)
		svc := NewSellerService(repo)

		_, err := svc.CreateProfile(ctx, "user-1", "", "", "", "", "")

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSellerService_SetVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("verifies seller", func(t *testing.T) {
		repo := new(mocks.MockSellerRepository)
		svc := NewSellerService(repo)

		repo.On("UpdateVerification", ctx, "seller-1", model.VerificationVerified).Return(nil)

		assert.NoError(t, svc.SetVerification(ctx, "seller-1", model.VerificationVerified))
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		repo := new(mocks.MockSellerRepository)
		svc := NewSellerService(repo)

		err := svc.SetVerification(ctx, "seller-1", "maybe")

		assert.ErrorContains(t, err, "unknown verification status")
		repo.AssertNotCalled(t, "UpdateVerification", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown seller", func(t *testing.T) {
		repo := new(mocks.MockSellerRepository)
		svc := NewSellerService(repo)

		repo.On("UpdateVerification", ctx, "missing", model.VerificationRejected).Return(sql.ErrNoRows)

		assert.ErrorIs(t, svc.SetVerification(ctx, "missing", model.VerificationRejected), ErrNotFound)
	})
}

func TestSellerService_Children(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockSellerRepository)
	svc := NewSellerService(repo)

	repo.On("ListChildren", ctx, "seller-parent").Return([]model.Seller{
		{ID: "seller-2", ParentID: "seller-parent"},
		{ID: "seller-3", ParentID: "seller-parent"},
	}, nil)

	children, err := svc.Children(ctx, "seller-parent")

	assert.NoError(t, err)
	assert.Len(t, children, 2)

	_, err = svc.Children(ctx, "")
	assert.ErrorIs(t, err, ErrIDRequired)
}

func TestSellerService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockSellerRepository)
	svc := NewSellerService(repo)

	// Limit falls back to the default page size.
	repo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.Seller]{Items: []model.Seller{{ID: "seller-1"}}, Total: 1}, nil)

	res, err := svc.List(ctx, 0, -5)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	repo.AssertExpectations(t)
}
