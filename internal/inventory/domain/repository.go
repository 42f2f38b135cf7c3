package domain

import "context"

// ProductRepository is the persistence port for ledger records.
type ProductRepository interface {
	// List returns products currently in stock (quantity > 0).
	List(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, product *Product) error
	// DecrementStock atomically subtracts qty from the product's quantity
	// on hand and returns the new quantity. The read-check-write must be a
	// single operation at the store: when the result would be negative it
	// returns ErrInsufficientStock and leaves the record unchanged.
	DecrementStock(ctx context.Context, id string, qty int) (int, error)
}
