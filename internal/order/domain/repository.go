package domain

import "context"

// OrderRepository is the persistence port for order aggregates. Orders are
// never deleted; cancellation is a status change.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByCustomer(ctx context.Context, customerID string) ([]Order, error)
}
