package domain

import (
	"errors"
	"time"
)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be a positive integer")
	ErrOrderNotFound   = errors.New("order not found")
	// ErrNotCancellable is returned for any cancel attempt on an order
	// that already reached a terminal status.
	ErrNotCancellable = errors.New("order is not in a cancellable state")
	ErrNotPending     = errors.New("order is no longer pending")
)

// LineItem is an immutable snapshot of one product at order-creation time.
// Later catalog changes to name or price never touch a placed order.
type LineItem struct {
	ProductID      string
	ProductName    string
	Quantity       int
	UnitPriceCents int64
}

// SubtotalCents is quantity times the captured unit price, in cents.
func (li LineItem) SubtotalCents() int64 {
	return int64(li.Quantity) * li.UnitPriceCents
}

// Order is the aggregate root owned by the order service.
type Order struct {
	ID         string
	CustomerID string
	Items      []LineItem
	TotalCents int64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder builds a Pending order from validated line-item snapshots and
// computes the total. The total is derived here once and never mutated
// independently of the items.
func NewOrder(id, customerID string, items []LineItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	var total int64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		total += item.SubtotalCents()
	}
	now := time.Now().UTC()
	return &Order{
		ID:         id,
		CustomerID: customerID,
		Items:      items,
		TotalCents: total,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Confirm moves the order to its confirmed terminal status. Only a
// Pending order can be confirmed.
func (o *Order) Confirm() error {
	if o.Status != StatusPending {
		return ErrNotPending
	}
	o.Status = StatusConfirmed
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Cancel moves the order to its cancelled terminal status. Terminal
// statuses are final; cancelling anything but a Pending order fails.
func (o *Order) Cancel() error {
	if o.Status != StatusPending {
		return ErrNotCancellable
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now().UTC()
	return nil
}
