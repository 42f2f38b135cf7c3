package domain

import (
	"errors"
	"testing"
)

func twoItems() []LineItem {
	return []LineItem{
		{ProductID: "p-1", ProductName: "Keyboard", Quantity: 2, UnitPriceCents: 12999},
		{ProductID: "p-2", ProductName: "Mouse", Quantity: 1, UnitPriceCents: 4550},
	}
}

func TestNewOrderComputesTotalFromSubtotals(t *testing.T) {
	order, err := NewOrder("o-1", "customer-a", twoItems())
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	want := int64(2*12999 + 1*4550)
	if order.TotalCents != want {
		t.Fatalf("total = %d, want %d", order.TotalCents, want)
	}
	var sum int64
	for _, item := range order.Items {
		if item.SubtotalCents() != int64(item.Quantity)*item.UnitPriceCents {
			t.Fatalf("subtotal mismatch for %s", item.ProductID)
		}
		sum += item.SubtotalCents()
	}
	if sum != order.TotalCents {
		t.Fatalf("total %d != sum of subtotals %d", order.TotalCents, sum)
	}
	if order.Status != StatusPending {
		t.Fatalf("new order status = %s, want %s", order.Status, StatusPending)
	}
}

func TestNewOrderRejectsEmptyAndInvalid(t *testing.T) {
	if _, err := NewOrder("o-1", "customer-a", nil); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("empty items: got %v, want ErrEmptyOrder", err)
	}
	items := []LineItem{{ProductID: "p-1", Quantity: 0, UnitPriceCents: 100}}
	if _, err := NewOrder("o-1", "customer-a", items); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("zero quantity: got %v, want ErrInvalidQuantity", err)
	}
}

func TestStatusTransitionsAreMonotonic(t *testing.T) {
	tests := []struct {
		name string
		prep func(o *Order)
		op   func(o *Order) error
		want error
	}{
		{"confirm pending", func(o *Order) {}, (*Order).Confirm, nil},
		{"cancel pending", func(o *Order) {}, (*Order).Cancel, nil},
		{"confirm twice", func(o *Order) { o.Confirm() }, (*Order).Confirm, ErrNotPending},
		{"cancel confirmed", func(o *Order) { o.Confirm() }, (*Order).Cancel, ErrNotCancellable},
		{"cancel cancelled", func(o *Order) { o.Cancel() }, (*Order).Cancel, ErrNotCancellable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder("o-1", "customer-a", twoItems())
			if err != nil {
				t.Fatal(err)
			}
			tt.prep(order)
			before := order.Status
			err = tt.op(order)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if err != nil && order.Status != before {
				t.Fatalf("failed transition changed status %s -> %s", before, order.Status)
			}
		})
	}
}

func TestCancelAfterCancelKeepsState(t *testing.T) {
	order, _ := NewOrder("o-1", "customer-a", twoItems())
	if err := order.Cancel(); err != nil {
		t.Fatal(err)
	}
	if err := order.Cancel(); !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("second cancel: got %v, want ErrNotCancellable", err)
	}
	if order.Status != StatusCancelled {
		t.Fatalf("status changed on failed cancel: %s", order.Status)
	}
}
