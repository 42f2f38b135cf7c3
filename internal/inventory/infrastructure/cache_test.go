package infrastructure

import (
	"context"
	"testing"

	"storefront/internal/inventory/domain"
)

type fakeCache struct {
	entries       map[string]domain.Product
	gets          int
	sets          int
	invalidations []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.Product)}
}

func (c *fakeCache) Get(ctx context.Context, id string) (*domain.Product, bool) {
	c.gets++
	p, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	copied := p
	return &copied, true
}

func (c *fakeCache) Set(ctx context.Context, product *domain.Product) {
	c.sets++
	c.entries[product.ID] = *product
}

func (c *fakeCache) Invalidate(ctx context.Context, id string) {
	c.invalidations = append(c.invalidations, id)
	delete(c.entries, id)
}

func TestCachedRepositoryReadThrough(t *testing.T) {
	inner := NewMemoryProductRepository()
	if err := inner.Create(context.Background(), &domain.Product{ID: "p-1", Name: "Keyboard", StockQuantity: 5}); err != nil {
		t.Fatal(err)
	}
	cache := newFakeCache()
	repo := NewCachedProductRepository(inner, cache)

	// First read misses and populates the cache.
	product, err := repo.FindByID(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if product.Name != "Keyboard" {
		t.Fatalf("product: %+v", product)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}

	// Second read is served from the cache.
	if _, err := repo.FindByID(context.Background(), "p-1"); err != nil {
		t.Fatal(err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache repopulated on hit: sets = %d", cache.sets)
	}
}

func TestCachedRepositoryMissPropagatesNotFound(t *testing.T) {
	repo := NewCachedProductRepository(NewMemoryProductRepository(), newFakeCache())

	if _, err := repo.FindByID(context.Background(), "ghost"); err != domain.ErrProductNotFound {
		t.Fatalf("got %v, want ErrProductNotFound", err)
	}
}

func TestDecrementInvalidatesBeforeWrite(t *testing.T) {
	inner := NewMemoryProductRepository()
	if err := inner.Create(context.Background(), &domain.Product{ID: "p-1", Name: "Keyboard", StockQuantity: 5}); err != nil {
		t.Fatal(err)
	}
	cache := newFakeCache()
	repo := NewCachedProductRepository(inner, cache)

	// Warm the cache, then mutate through the decorator.
	if _, err := repo.FindByID(context.Background(), "p-1"); err != nil {
		t.Fatal(err)
	}
	newQty, err := repo.DecrementStock(context.Background(), "p-1", 2)
	if err != nil {
		t.Fatalf("DecrementStock: %v", err)
	}
	if newQty != 3 {
		t.Fatalf("new quantity = %d, want 3", newQty)
	}
	if len(cache.invalidations) != 1 || cache.invalidations[0] != "p-1" {
		t.Fatalf("invalidations: %v", cache.invalidations)
	}

	// The next read must see the decremented quantity, not a stale entry.
	product, err := repo.FindByID(context.Background(), "p-1")
	if err != nil {
		t.Fatal(err)
	}
	if product.StockQuantity != 3 {
		t.Fatalf("stale read after decrement: %d", product.StockQuantity)
	}
}

func TestDecrementInvalidatesEvenWhenRejected(t *testing.T) {
	inner := NewMemoryProductRepository()
	if err := inner.Create(context.Background(), &domain.Product{ID: "p-1", Name: "Keyboard", StockQuantity: 1}); err != nil {
		t.Fatal(err)
	}
	cache := newFakeCache()
	repo := NewCachedProductRepository(inner, cache)

	if _, err := repo.DecrementStock(context.Background(), "p-1", 5); err != domain.ErrInsufficientStock {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}
	if len(cache.invalidations) != 1 {
		t.Fatalf("invalidations: %v", cache.invalidations)
	}
}
