package port

import (
	"context"
	"errors"
)

var (
	// ErrProductNotFound maps the remote 404: the catalog has no such id.
	ErrProductNotFound = errors.New("product not found")
	// ErrInventoryUnavailable covers timeouts, connection failures and
	// non-2xx responses other than 404. Callers must never confuse it
	// with ErrProductNotFound.
	ErrInventoryUnavailable = errors.New("inventory service unavailable")
)

// ProductSnapshot is the remote product state at fetch time. The saga
// copies name and price out of it into immutable line items.
type ProductSnapshot struct {
	ID            string
	Name          string
	PriceCents    int64
	StockQuantity int
}

// InventoryGateway is the outbound port to the inventory service.
//
// Failure policy is conservative by contract, not by accident: on the
// boolean operations any transport failure reads as false, blocking the
// sale rather than risking an oversell. None of the operations retry;
// CommitStock is not idempotent at the ledger, so a transport-level retry
// could decrement twice.
type InventoryGateway interface {
	FetchProduct(ctx context.Context, productID string) (*ProductSnapshot, error)
	ValidateStock(ctx context.Context, productID string, qty int) bool
	CommitStock(ctx context.Context, productID string, qty int) bool
}
