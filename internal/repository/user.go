package repository

import (
	"context"

	"printo/internal/model"
)

// UserRepository defines data access for user accounts.
// No business logic here — strictly persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
