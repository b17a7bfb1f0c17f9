package repository

import (
	"context"

	"github.com/Getinger96/KannMind-Backend/internal/domain/entity"
)

// UserRepository defines identity-store persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ExistAll reports whether every id refers to a stored user.
	ExistAll(ctx context.Context, ids []string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
}
