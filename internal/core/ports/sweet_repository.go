package ports

import (
	"context"

	"github.com/sweetshop/inventory-system/internal/core/domain"
)

// SearchFilter carries the parsed search criteria. Text is matched as a
// case-insensitive substring of name or category; Price, when non-nil, adds
// an exact price-equality clause to the disjunction.
type SearchFilter struct {
	Text  string
	Price *float64
}

// UpdateFields carries a partial update. Nil fields are left untouched.
type UpdateFields struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
	Image    *string
}

// SweetRepository defines persistence operations for the sweet catalog.
type SweetRepository interface {
	// Create inserts a new sweet and returns it with the store-assigned id.
	// Returns domain.ErrSweetExists on a (name, category) uniqueness violation.
	Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	// ExistsByNameCategory is the fast-path duplicate pre-check; the unique
	// index remains the final authority.
	ExistsByNameCategory(ctx context.Context, name, category string) (bool, error)
	FindAll(ctx context.Context) ([]*domain.Sweet, error)
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Sweet, error)
	// Update applies the non-nil fields atomically and returns the updated
	// document. Returns domain.ErrSweetNotFound for malformed or unknown ids
	// and domain.ErrSweetExists on a uniqueness violation after a rename.
	Update(ctx context.Context, id string, fields UpdateFields) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	// AdjustStock atomically adds delta to quantityInStock, but only when the
	// result stays non-negative. Returns domain.ErrSweetNotFound when no
	// document satisfies the condition (missing id or insufficient stock —
	// callers disambiguate with FindByID).
	AdjustStock(ctx context.Context, id string, delta int) (*domain.Sweet, error)
}
