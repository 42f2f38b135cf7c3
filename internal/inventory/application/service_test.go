package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.opentelemetry.io/otel"

	"storefront/internal/inventory/domain"
	"storefront/internal/inventory/infrastructure"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []domain.StockUpdated
	err    error
}

func (p *capturePublisher) Publish(ctx context.Context, topic, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if topic != domain.StockTopic || routingKey != domain.StockUpdatedRoutingKey {
		return errors.New("unexpected destination " + topic + "/" + routingKey)
	}
	p.events = append(p.events, payload.(domain.StockUpdated))
	return nil
}

func newStockService(t *testing.T, products ...domain.Product) (*StockService, *infrastructure.MemoryProductRepository, *capturePublisher) {
	t.Helper()
	repo := infrastructure.NewMemoryProductRepository()
	for i := range products {
		if err := repo.Create(context.Background(), &products[i]); err != nil {
			t.Fatal(err)
		}
	}
	publisher := &capturePublisher{}
	return NewStockService(repo, publisher, otel.Tracer("test")), repo, publisher
}

func TestValidateStock(t *testing.T) {
	service, _, _ := newStockService(t, domain.Product{ID: "p-1", Name: "Keyboard", StockQuantity: 5})

	tests := []struct {
		name string
		id   string
		qty  int
		want bool
	}{
		{"enough", "p-1", 3, true},
		{"exact", "p-1", 5, true},
		{"too many", "p-1", 6, false},
		{"unknown product", "ghost", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := service.ValidateStock(context.Background(), tt.id, tt.qty)
			if err != nil {
				t.Fatalf("ValidateStock: %v", err)
			}
			if ok != tt.want {
				t.Fatalf("got %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestCommitDecrementUpdatesAndPublishes(t *testing.T) {
	service, repo, publisher := newStockService(t, domain.Product{ID: "p-1", Name: "Keyboard", StockQuantity: 10})

	if err := service.CommitDecrement(context.Background(), "p-1", 4); err != nil {
		t.Fatalf("CommitDecrement: %v", err)
	}
	product, err := repo.FindByID(context.Background(), "p-1")
	if err != nil {
		t.Fatal(err)
	}
	if product.StockQuantity != 6 {
		t.Fatalf("stock = %d, want 6", product.StockQuantity)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	ev := publisher.events[0]
	if ev.ProductID != "p-1" || ev.NewQuantity != 6 {
		t.Fatalf("event: %+v", ev)
	}
	if ev.Timestamp.IsZero() {
		t.Fatal("event timestamp unset")
	}
}

func TestCommitDecrementNeverGoesBelowZero(t *testing.T) {
	service, repo, publisher := newStockService(t, domain.Product{ID: "p-1", Name: "Keyboard", StockQuantity: 3})

	err := service.CommitDecrement(context.Background(), "p-1", 4)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}
	product, _ := repo.FindByID(context.Background(), "p-1")
	if product.StockQuantity != 3 {
		t.Fatalf("rejected decrement changed stock: %d", product.StockQuantity)
	}
	if len(publisher.events) != 0 {
		t.Fatal("event published for rejected decrement")
	}
}

func TestCommitDecrementUnknownProduct(t *testing.T) {
	service, _, publisher := newStockService(t)

	err := service.CommitDecrement(context.Background(), "ghost", 1)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("got %v, want ErrProductNotFound", err)
	}
	if len(publisher.events) != 0 {
		t.Fatal("event published for unknown product")
	}
}

// Concurrent decrements must hand out exactly the available stock and
// reject the rest, never overselling.
func TestCommitDecrementConcurrentFloor(t *testing.T) {
	const stock, workers = 10, 25
	service, repo, publisher := newStockService(t, domain.Product{ID: "p-1", Name: "Keyboard", StockQuantity: stock})

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- service.CommitDecrement(context.Background(), "p-1", 1)
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != stock || rejected != workers-stock {
		t.Fatalf("succeeded=%d rejected=%d, want %d/%d", succeeded, rejected, stock, workers-stock)
	}
	product, _ := repo.FindByID(context.Background(), "p-1")
	if product.StockQuantity != 0 {
		t.Fatalf("final stock = %d, want 0", product.StockQuantity)
	}
	if len(publisher.events) != stock {
		t.Fatalf("published %d events, want %d", len(publisher.events), stock)
	}
}

// A broker outage must not fail a decrement that already committed.
func TestCommitDecrementPublishFailureDoesNotFailDecrement(t *testing.T) {
	service, repo, publisher := newStockService(t, domain.Product{ID: "p-1", Name: "Keyboard", StockQuantity: 10})
	publisher.err = errors.New("broker unreachable")

	if err := service.CommitDecrement(context.Background(), "p-1", 2); err != nil {
		t.Fatalf("CommitDecrement: %v", err)
	}
	product, _ := repo.FindByID(context.Background(), "p-1")
	if product.StockQuantity != 8 {
		t.Fatalf("stock = %d, want 8", product.StockQuantity)
	}
}

func TestListProductsOnlyInStock(t *testing.T) {
	service, _, _ := newStockService(t,
		domain.Product{ID: "p-1", Name: "Keyboard", StockQuantity: 5},
		domain.Product{ID: "p-2", Name: "Mouse", StockQuantity: 0},
		domain.Product{ID: "p-3", Name: "Monitor", StockQuantity: 1},
	)

	products, err := service.ListProducts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 2 {
		t.Fatalf("listed %d products, want 2", len(products))
	}
	for _, p := range products {
		if p.StockQuantity <= 0 {
			t.Fatalf("out-of-stock product listed: %+v", p)
		}
	}
}
