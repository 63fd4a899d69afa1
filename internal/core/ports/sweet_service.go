package ports

import (
	"context"
	"time"
)

// CreateSweetInput carries all data needed to create a catalog entry.
type CreateSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int
	Image    string
}

// UpdateSweetInput carries a partial update; nil fields stay unchanged.
type UpdateSweetInput struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
	Image    *string
}

// SweetResult is the external representation of a catalog entry. The
// persisted quantityInStock field is exposed as Quantity.
type SweetResult struct {
	ID        string
	Name      string
	Category  string
	Price     float64
	Quantity  int
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SweetService is the inventory engine consumed by the HTTP layer.
type SweetService interface {
	Create(ctx context.Context, input CreateSweetInput) (*SweetResult, error)
	List(ctx context.Context) ([]SweetResult, error)
	Search(ctx context.Context, query string) ([]SweetResult, error)
	Update(ctx context.Context, id string, input UpdateSweetInput) (*SweetResult, error)
	Delete(ctx context.Context, id string) error
	Purchase(ctx context.Context, id string, quantity int) (*SweetResult, error)
	Restock(ctx context.Context, id string, quantity int) (*SweetResult, error)
}
