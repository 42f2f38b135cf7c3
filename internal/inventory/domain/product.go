package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock means a decrement would have taken the quantity
	// on hand below zero. The record is left untouched when it is returned.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is the ledger record for one catalog entry. PriceCents keeps the
// unit price as fixed-point cents; floating point never enters price math.
type Product struct {
	ID            string
	Name          string
	Description   string
	PriceCents    int64
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
