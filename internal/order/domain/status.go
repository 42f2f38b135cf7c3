package domain

// Status is the order lifecycle state. Confirmed and Cancelled are
// terminal; Delivered is reached only by external fulfillment workflows.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusDelivered Status = "DELIVERED"
)
