package infrastructure

import (
	"context"
	"sort"
	"sync"

	"storefront/internal/order/domain"
)

// MemoryOrderRepository backs the order service when no MySQL DSN is
// configured, and the saga tests. Aggregates are stored by value so a
// caller mutating a returned order cannot bypass Save.
type MemoryOrderRepository struct {
	mu     sync.Mutex
	orders map[string]domain.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]domain.Order)}
}

func (r *MemoryOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *order
	copied.Items = append([]domain.LineItem(nil), order.Items...)
	r.orders[order.ID] = copied
	return nil
}

func (r *MemoryOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := order
	copied.Items = append([]domain.LineItem(nil), order.Items...)
	return &copied, nil
}

func (r *MemoryOrderRepository) FindByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			copied := order
			copied.Items = append([]domain.LineItem(nil), order.Items...)
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
