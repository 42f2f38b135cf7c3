package infrastructure

import "time"

// ProductModel is the gorm mapping for ledger records.
type ProductModel struct {
	ID            string `gorm:"primaryKey;size:36"`
	Name          string `gorm:"size:255;not null"`
	Description   string `gorm:"size:1024"`
	PriceCents    int64  `gorm:"not null"`
	StockQuantity int    `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ProductModel) TableName() string { return "products" }
