package infrastructure

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/internal/inventory/domain"
)

// MemoryProductRepository is the store used when no MySQL DSN is
// configured: local development and hermetic tests. Same contract as the
// gorm repository, including atomicity of DecrementStock.
type MemoryProductRepository struct {
	mu       sync.Mutex
	products map[string]domain.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{products: make(map[string]domain.Product)}
}

func (r *MemoryProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.StockQuantity > 0 {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	copied := p
	return &copied, nil
}

func (r *MemoryProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) DecrementStock(ctx context.Context, id string, qty int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return 0, domain.ErrProductNotFound
	}
	if p.StockQuantity < qty {
		return 0, domain.ErrInsufficientStock
	}
	p.StockQuantity -= qty
	p.UpdatedAt = time.Now().UTC()
	r.products[id] = p
	return p.StockQuantity, nil
}
