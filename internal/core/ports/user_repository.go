package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// UserRepository defines the interface for identity persistence.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrUserExists on an email uniqueness violation.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
