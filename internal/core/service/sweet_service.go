package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-system/internal/api/metrics"
	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// InventoryService implements the catalog mutations and queries. It holds no
// state of its own; every operation is a read-validate-write against the
// repository.
type InventoryService struct {
	repo   ports.SweetRepository
	cache  ports.CatalogCache
	logger zerolog.Logger
}

func NewInventoryService(repo ports.SweetRepository, cache ports.CatalogCache, logger zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, cache: cache, logger: logger}
}

// Create validates the input, rejects duplicate (name, category) pairs, and
// persists a new sweet. The pre-check is a fast path only; a concurrent
// insert is still caught by the unique index and reported the same way.
func (s *InventoryService) Create(ctx context.Context, input ports.CreateSweetInput) (*ports.SweetResult, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	image := strings.TrimSpace(input.Image)

	if name == "" || category == "" || image == "" {
		return nil, domain.NewValidationError("Name, category, price, and quantity are required")
	}
	if input.Price < 0 {
		return nil, domain.NewValidationError("Price must be a non-negative number")
	}
	if input.Quantity < 0 {
		return nil, domain.NewValidationError("Quantity must be a non-negative integer")
	}

	exists, err := s.repo.ExistsByNameCategory(ctx, name, category)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrSweetExists
	}

	now := time.Now().UTC()
	sweet := &domain.Sweet{
		Name:            name,
		Category:        category,
		Price:           input.Price,
		QuantityInStock: input.Quantity,
		Image:           image,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, sweet)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	metrics.SweetsCreatedTotal.WithLabelValues(category).Inc()
	s.logger.Info().Str("sweet_id", created.ID).Str("name", name).Str("category", category).Msg("sweet created")

	return toResult(created), nil
}

// List returns the full catalog in store order, served from the cache when warm.
func (s *InventoryService) List(ctx context.Context) ([]ports.SweetResult, error) {
	if payload, ok := s.cache.Get(ctx); ok {
		var cached []ports.SweetResult
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
		// Corrupt entry: drop it and fall through to the repository.
		s.cache.Invalidate(ctx)
	}

	sweets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	results := toResults(sweets)
	if payload, err := json.Marshal(results); err == nil {
		s.cache.Set(ctx, payload)
	}
	return results, nil
}

// Search filters the catalog by the query string. An empty query returns an
// empty list rather than the full catalog; this mirrors the original search
// endpoint and keeps list-all and search distinct.
func (s *InventoryService) Search(ctx context.Context, query string) ([]ports.SweetResult, error) {
	if query == "" {
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
		return []ports.SweetResult{}, nil
	}

	filter := BuildSearchFilter(query)
	kind := "text"
	if filter.Price != nil {
		kind = "numeric"
	}
	metrics.SearchesTotal.WithLabelValues(kind).Inc()

	sweets, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toResults(sweets), nil
}

// BuildSearchFilter turns a raw query string into the repository filter:
// always a substring clause, plus a price-equality clause when the query
// parses cleanly as a number. Parse failures are not errors.
func BuildSearchFilter(query string) ports.SearchFilter {
	filter := ports.SearchFilter{Text: query}
	if price, err := strconv.ParseFloat(query, 64); err == nil {
		filter.Price = &price
	}
	return filter
}

// Update applies a partial update. Only supplied fields change; the
// repository applies them in a single atomic write.
func (s *InventoryService) Update(ctx context.Context, id string, input ports.UpdateSweetInput) (*ports.SweetResult, error) {
	fields := ports.UpdateFields{Price: input.Price, Quantity: input.Quantity}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewValidationError("Name must not be empty")
		}
		fields.Name = &name
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, domain.NewValidationError("Category must not be empty")
		}
		fields.Category = &category
	}
	if input.Image != nil {
		image := strings.TrimSpace(*input.Image)
		if image == "" {
			return nil, domain.NewValidationError("Image must not be empty")
		}
		fields.Image = &image
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, domain.NewValidationError("Price must be a non-negative number")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, domain.NewValidationError("Quantity must be a non-negative integer")
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return toResult(updated), nil
}

// Delete removes a sweet. Deleting an unknown or already-deleted id fails
// with domain.ErrSweetNotFound.
func (s *InventoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info().Str("sweet_id", id).Msg("sweet deleted")
	return nil
}

// Purchase decrements stock by quantity. The decrement is conditional at the
// store level, so stock can never go negative even under concurrent
// purchases of the same sweet. Draining stock to exactly zero is valid.
func (s *InventoryService) Purchase(ctx context.Context, id string, quantity int) (*ports.SweetResult, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("Quantity must be a positive number")
	}

	updated, err := s.repo.AdjustStock(ctx, id, -quantity)
	if err != nil {
		if !errors.Is(err, domain.ErrSweetNotFound) {
			return nil, err
		}
		// No document matched: either the sweet is gone or the conditional
		// decrement found insufficient stock.
		if _, ferr := s.repo.FindByID(ctx, id); ferr != nil {
			return nil, ferr
		}
		metrics.PurchasesTotal.WithLabelValues("insufficient_stock").Inc()
		return nil, domain.ErrInsufficientStock
	}

	s.invalidate(ctx)
	metrics.PurchasesTotal.WithLabelValues("success").Inc()
	metrics.UnitsPurchased.Observe(float64(quantity))
	s.logger.Info().Str("sweet_id", id).Int("quantity", quantity).Int("stock", updated.QuantityInStock).Msg("purchase completed")

	return toResult(updated), nil
}

// Restock increments stock by quantity. Repeated restocks accumulate.
func (s *InventoryService) Restock(ctx context.Context, id string, quantity int) (*ports.SweetResult, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("Quantity must be a positive number")
	}

	updated, err := s.repo.AdjustStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	metrics.RestocksTotal.Inc()
	s.logger.Info().Str("sweet_id", id).Int("quantity", quantity).Int("stock", updated.QuantityInStock).Msg("restock completed")

	return toResult(updated), nil
}

func (s *InventoryService) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx)
}

func toResult(sweet *domain.Sweet) *ports.SweetResult {
	return &ports.SweetResult{
		ID:        sweet.ID,
		Name:      sweet.Name,
		Category:  sweet.Category,
		Price:     sweet.Price,
		Quantity:  sweet.QuantityInStock,
		Image:     sweet.Image,
		CreatedAt: sweet.CreatedAt,
		UpdatedAt: sweet.UpdatedAt,
	}
}

func toResults(sweets []*domain.Sweet) []ports.SweetResult {
	results := make([]ports.SweetResult, 0, len(sweets))
	for _, sweet := range sweets {
		results = append(results, *toResult(sweet))
	}
	return results
}
