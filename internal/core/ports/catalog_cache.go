package ports

import "context"

// CatalogCache is a byte-level cache for the serialized catalog listing.
// Implementations are best-effort: a miss or an error simply falls back to
// the repository.
type CatalogCache interface {
	Get(ctx context.Context) ([]byte, bool)
	Set(ctx context.Context, payload []byte)
	Invalidate(ctx context.Context)
}
