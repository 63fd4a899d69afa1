package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// stubSweetRepo is an in-memory SweetRepository. AdjustStock is guarded by a
// mutex and applies the same conditional semantics as the Mongo
// implementation, so the concurrency tests exercise the real invariant.
type stubSweetRepo struct {
	mu     sync.Mutex
	seq    int
	order  []string
	sweets map[string]*domain.Sweet
}

func newStubSweetRepo() *stubSweetRepo {
	return &stubSweetRepo{sweets: make(map[string]*domain.Sweet)}
}

func cloneSweet(s *domain.Sweet) *domain.Sweet {
	clone := *s
	return &clone
}

func (r *stubSweetRepo) Create(_ context.Context, s *domain.Sweet) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sweets {
		if existing.Name == s.Name && existing.Category == s.Category {
			return nil, domain.ErrSweetExists
		}
	}

	r.seq++
	copy := cloneSweet(s)
	copy.ID = fmt.Sprintf("sweet_%d", r.seq)
	r.sweets[copy.ID] = copy
	r.order = append(r.order, copy.ID)
	return cloneSweet(copy), nil
}

func (r *stubSweetRepo) FindByID(_ context.Context, id string) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	return cloneSweet(s), nil
}

func (r *stubSweetRepo) ExistsByNameCategory(_ context.Context, name, category string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sweets {
		if s.Name == name && s.Category == category {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSweetRepo) FindAll(_ context.Context) ([]*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Sweet, 0, len(r.order))
	for _, id := range r.order {
		if s, ok := r.sweets[id]; ok {
			out = append(out, cloneSweet(s))
		}
	}
	return out, nil
}

func (r *stubSweetRepo) Search(_ context.Context, filter ports.SearchFilter) ([]*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	text := strings.ToLower(filter.Text)
	out := make([]*domain.Sweet, 0)
	for _, id := range r.order {
		s, ok := r.sweets[id]
		if !ok {
			continue
		}
		match := strings.Contains(strings.ToLower(s.Name), text) ||
			strings.Contains(strings.ToLower(s.Category), text)
		if filter.Price != nil && s.Price == *filter.Price {
			match = true
		}
		if match {
			out = append(out, cloneSweet(s))
		}
	}
	return out, nil
}

func (r *stubSweetRepo) Update(_ context.Context, id string, fields ports.UpdateFields) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if fields.Name != nil {
		s.Name = *fields.Name
	}
	if fields.Category != nil {
		s.Category = *fields.Category
	}
	if fields.Price != nil {
		s.Price = *fields.Price
	}
	if fields.Quantity != nil {
		s.QuantityInStock = *fields.Quantity
	}
	if fields.Image != nil {
		s.Image = *fields.Image
	}
	return cloneSweet(s), nil
}

func (r *stubSweetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sweets[id]; !ok {
		return domain.ErrSweetNotFound
	}
	delete(r.sweets, id)
	return nil
}

func (r *stubSweetRepo) AdjustStock(_ context.Context, id string, delta int) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sweets[id]
	if !ok || s.QuantityInStock+delta < 0 {
		return nil, domain.ErrSweetNotFound
	}
	s.QuantityInStock += delta
	return cloneSweet(s), nil
}

// noopCache satisfies ports.CatalogCache without caching anything.
type noopCache struct{}

func (noopCache) Get(context.Context) ([]byte, bool) { return nil, false }
func (noopCache) Set(context.Context, []byte)        {}
func (noopCache) Invalidate(context.Context)         {}

func newTestService() (*InventoryService, *stubSweetRepo) {
	repo := newStubSweetRepo()
	return NewInventoryService(repo, noopCache{}, zerolog.Nop()), repo
}

func mustCreate(t *testing.T, svc *InventoryService, name, category string, price float64, quantity int) *ports.SweetResult {
	t.Helper()
	sweet, err := svc.Create(context.Background(), ports.CreateSweetInput{
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: quantity,
		Image:    "https://example.com/" + strings.ToLower(name) + ".jpg",
	})
	if err != nil {
		t.Fatalf("create %s failed: %v", name, err)
	}
	return sweet
}

func TestCreate_Success(t *testing.T) {
	svc, _ := newTestService()

	sweet := mustCreate(t, svc, "Kaju Katli", "Indian", 500, 20)
	if sweet.ID == "" {
		t.Fatalf("expected store-assigned id")
	}
	if sweet.Quantity != 20 {
		t.Fatalf("expected quantity 20, got %d", sweet.Quantity)
	}
	if sweet.Price != 500 {
		t.Fatalf("expected price 500, got %v", sweet.Price)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	cases := []ports.CreateSweetInput{
		{Name: "", Category: "Indian", Price: 10, Quantity: 1, Image: "x"},
		{Name: "Barfi", Category: "  ", Price: 10, Quantity: 1, Image: "x"},
		{Name: "Barfi", Category: "Indian", Price: 10, Quantity: 1, Image: ""},
		{Name: "Barfi", Category: "Indian", Price: -1, Quantity: 1, Image: "x"},
		{Name: "Barfi", Category: "Indian", Price: 10, Quantity: -1, Image: "x"},
	}
	for i, input := range cases {
		_, err := svc.Create(context.Background(), input)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("case %d: expected ValidationError, got %v", i, err)
		}
	}
}

func TestCreate_Duplicate(t *testing.T) {
	svc, _ := newTestService()

	mustCreate(t, svc, "Kaju Katli", "Indian", 500, 20)
	_, err := svc.Create(context.Background(), ports.CreateSweetInput{
		Name: "Kaju Katli", Category: "Indian", Price: 450, Quantity: 5, Image: "x",
	})
	if !errors.Is(err, domain.ErrSweetExists) {
		t.Fatalf("expected ErrSweetExists, got %v", err)
	}
}

func TestCreate_SameNameDifferentCategory(t *testing.T) {
	svc, _ := newTestService()

	mustCreate(t, svc, "Fudge", "Indian", 100, 5)
	if _, err := svc.Create(context.Background(), ports.CreateSweetInput{
		Name: "Fudge", Category: "Western", Price: 100, Quantity: 5, Image: "x",
	}); err != nil {
		t.Fatalf("distinct (name, category) pair must be allowed: %v", err)
	}
}

func TestPurchase_DecrementsStock(t *testing.T) {
	svc, _ := newTestService()
	sweet := mustCreate(t, svc, "Kaju Katli", "Indian", 500, 20)

	updated, err := svc.Purchase(context.Background(), sweet.ID, 5)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if updated.Quantity != 15 {
		t.Fatalf("expected stock 15, got %d", updated.Quantity)
	}
}

func TestPurchase_ToZeroIsValid(t *testing.T) {
	svc, _ := newTestService()
	sweet := mustCreate(t, svc, "Jalebi", "Indian", 150, 7)

	updated, err := svc.Purchase(context.Background(), sweet.ID, 7)
	if err != nil {
		t.Fatalf("draining stock to zero must succeed: %v", err)
	}
	if updated.Quantity != 0 {
		t.Fatalf("expected stock 0, got %d", updated.Quantity)
	}
}

func TestPurchase_InsufficientStock(t *testing.T) {
	svc, repo := newTestService()
	sweet := mustCreate(t, svc, "Ladoo", "Indian", 200, 10)

	_, err := svc.Purchase(context.Background(), sweet.ID, 11)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// No partial decrement.
	current, _ := repo.FindByID(context.Background(), sweet.ID)
	if current.QuantityInStock != 10 {
		t.Fatalf("stock changed on failed purchase: %d", current.QuantityInStock)
	}
}

func TestPurchase_Validation(t *testing.T) {
	svc, _ := newTestService()
	sweet := mustCreate(t, svc, "Barfi", "Indian", 400, 30)

	for _, qty := range []int{0, -5} {
		_, err := svc.Purchase(context.Background(), sweet.ID, qty)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("quantity %d: expected ValidationError, got %v", qty, err)
		}
	}
}

func TestPurchase_UnknownSweet(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Purchase(context.Background(), "missing", 1)
	if !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

func TestPurchase_Concurrent_NeverOversells(t *testing.T) {
	svc, repo := newTestService()
	const stock = 10
	const buyers = 25
	sweet := mustCreate(t, svc, "Rasgulla", "Indian", 300, stock)

	var wg sync.WaitGroup
	errs := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(context.Background(), sweet.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes, insufficient := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != stock {
		t.Fatalf("expected exactly %d successful purchases, got %d", stock, successes)
	}
	if insufficient != buyers-stock {
		t.Fatalf("expected %d insufficient-stock failures, got %d", buyers-stock, insufficient)
	}

	final, _ := repo.FindByID(context.Background(), sweet.ID)
	if final.QuantityInStock != 0 {
		t.Fatalf("expected final stock 0, got %d", final.QuantityInStock)
	}
}

func TestRestock_Accumulates(t *testing.T) {
	svc, _ := newTestService()
	sweet := mustCreate(t, svc, "Kaju Katli", "Indian", 500, 20)

	if _, err := svc.Restock(context.Background(), sweet.ID, 10); err != nil {
		t.Fatalf("first restock failed: %v", err)
	}
	updated, err := svc.Restock(context.Background(), sweet.ID, 5)
	if err != nil {
		t.Fatalf("second restock failed: %v", err)
	}
	if updated.Quantity != 35 {
		t.Fatalf("expected stock 35 after two restocks, got %d", updated.Quantity)
	}
}

func TestRestock_Validation(t *testing.T) {
	svc, _ := newTestService()
	sweet := mustCreate(t, svc, "Halwa", "Indian", 250, 10)

	for _, qty := range []int{0, -3} {
		_, err := svc.Restock(context.Background(), sweet.ID, qty)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("quantity %d: expected ValidationError, got %v", qty, err)
		}
	}
}

func TestRestock_UnknownSweet(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Restock(context.Background(), "missing", 5)
	if !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

func TestUpdate_Partial(t *testing.T) {
	svc, _ := newTestService()
	sweet := mustCreate(t, svc, "Kaju Katli", "Indian", 500, 20)

	name := "Kaju Katli Updated"
	updated, err := svc.Update(context.Background(), sweet.ID, ports.UpdateSweetInput{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if updated.Category != "Indian" || updated.Price != 500 || updated.Quantity != 20 {
		t.Fatalf("unspecified fields changed: %+v", updated)
	}

	price := 600.0
	quantity := 25
	updated, err = svc.Update(context.Background(), sweet.ID, ports.UpdateSweetInput{Price: &price, Quantity: &quantity})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Price != 600 || updated.Quantity != 25 {
		t.Fatalf("price/quantity not updated: %+v", updated)
	}
	if updated.Name != name {
		t.Fatalf("name lost on second update: %q", updated.Name)
	}
}

func TestUpdate_Validation(t *testing.T) {
	svc, _ := newTestService()
	sweet := mustCreate(t, svc, "Barfi", "Indian", 400, 30)

	badPrice := -1.0
	if _, err := svc.Update(context.Background(), sweet.ID, ports.UpdateSweetInput{Price: &badPrice}); err == nil {
		t.Fatalf("expected error for negative price")
	}
	badQty := -2
	if _, err := svc.Update(context.Background(), sweet.ID, ports.UpdateSweetInput{Quantity: &badQty}); err == nil {
		t.Fatalf("expected error for negative quantity")
	}
	empty := " "
	if _, err := svc.Update(context.Background(), sweet.ID, ports.UpdateSweetInput{Name: &empty}); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestUpdate_UnknownSweet(t *testing.T) {
	svc, _ := newTestService()

	name := "Ghost"
	_, err := svc.Update(context.Background(), "missing", ports.UpdateSweetInput{Name: &name})
	if !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

func TestDelete_Twice(t *testing.T) {
	svc, _ := newTestService()
	sweet := mustCreate(t, svc, "Jalebi", "Indian", 150, 10)

	if err := svc.Delete(context.Background(), sweet.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), sweet.ID); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("second delete: expected ErrSweetNotFound, got %v", err)
	}
}

func TestList_ReturnsAll(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, "Kaju Katli", "Indian", 500, 20)
	mustCreate(t, svc, "Brownie", "Western", 120, 15)

	results, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 sweets, got %d", len(results))
	}
	if results[0].Name != "Kaju Katli" {
		t.Fatalf("expected insertion order, got %q first", results[0].Name)
	}
}

func TestSearch_EmptyQueryReturnsNothing(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, "Kaju Katli", "Indian", 500, 20)

	results, err := svc.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("empty query must return empty list, got %d results", len(results))
	}
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, "Kaju Katli", "Indian", 500, 20)
	mustCreate(t, svc, "Brownie", "Western", 120, 15)

	results, err := svc.Search(context.Background(), "kAJU")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Kaju Katli" {
		t.Fatalf("unexpected results: %+v", results)
	}

	results, _ = svc.Search(context.Background(), "western")
	if len(results) != 1 || results[0].Name != "Brownie" {
		t.Fatalf("category match failed: %+v", results)
	}
}

func TestSearch_NumericMatchesPrice(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, "Kaju Katli", "Indian", 500, 20)
	mustCreate(t, svc, "Rasgulla", "Indian", 500, 10)
	mustCreate(t, svc, "Jalebi", "Indian", 150, 5)

	results, err := svc.Search(context.Background(), "500")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 sweets priced 500, got %d", len(results))
	}
	for _, r := range results {
		if r.Price != 500 {
			t.Fatalf("unexpected price in results: %v", r.Price)
		}
	}
}

func TestBuildSearchFilter(t *testing.T) {
	f := BuildSearchFilter("chocolate")
	if f.Text != "chocolate" || f.Price != nil {
		t.Fatalf("non-numeric query must omit price clause: %+v", f)
	}

	f = BuildSearchFilter("12.5")
	if f.Price == nil || *f.Price != 12.5 {
		t.Fatalf("numeric query must set price clause: %+v", f)
	}
	if f.Text != "12.5" {
		t.Fatalf("numeric query keeps substring clause: %+v", f)
	}
}
