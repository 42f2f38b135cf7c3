// Package saga drives one order from intake to its terminal status as a
// chain of handlers: validate items, persist the pending aggregate, commit
// stock, confirm and publish. Each handler owns one commit point; there is
// no distributed transaction behind any of them.
package saga

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/trace"

	"storefront/internal/order/domain"
	"storefront/internal/order/domain/port"
)

var (
	// ErrInsufficientStock aborts the saga before the durability
	// checkpoint: no order is created.
	ErrInsufficientStock = errors.New("insufficient stock for requested item")
	// ErrStockCommitFailed aborts the saga after the durability
	// checkpoint: the pending order exists and must be cancelled by the
	// caller. Decrements already committed for earlier line items stay
	// applied; see OrderContext.Committed.
	ErrStockCommitFailed = errors.New("stock commit failed")
)

// RequestedItem is one product/quantity pair from the intake request,
// before any snapshot has been taken.
type RequestedItem struct {
	ProductID string
	Quantity  int
}

// OrderContext carries one saga execution through the chain. All external
// collaborators are ports so the whole chain runs against in-process
// fakes in tests.
type OrderContext struct {
	Ctx        context.Context
	OrderID    string
	CustomerID string
	Requested  []RequestedItem

	Tracer    trace.Tracer
	Inventory port.InventoryGateway
	Repo      domain.OrderRepository
	Publisher port.EventPublisher

	// Order is set once ValidateItemsHandler has built the snapshots.
	Order *domain.Order
	// Persisted flips when the pending aggregate reaches the store: the
	// saga's durability checkpoint.
	Persisted bool
	// Committed records the decrements that succeeded, in order. On a
	// partial failure it shows exactly how far the ledger moved.
	Committed []domain.ProductSale
}

type Handler interface {
	SetNext(handler Handler) Handler
	Handle(orderCtx *OrderContext) error
}

type NextHandler struct {
	next Handler
}

func (h *NextHandler) SetNext(handler Handler) Handler {
	h.next = handler
	return handler
}

func (h *NextHandler) executeNext(orderCtx *OrderContext) error {
	if h.next != nil {
		return h.next.Handle(orderCtx)
	}
	return nil
}
