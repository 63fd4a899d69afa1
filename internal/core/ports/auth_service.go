package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// AuthService implements registration and login against the identity store.
type AuthService interface {
	// Register creates a new user and returns it together with a signed
	// bearer token. The role is ADMIN only when the submitted credentials
	// match the configured admin pair, USER otherwise.
	Register(ctx context.Context, email, password string) (*domain.User, string, error)
	// Login verifies credentials and returns the user and a signed token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}
