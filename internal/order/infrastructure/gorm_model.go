package infrastructure

import "time"

type OrderModel struct {
	ID         string `gorm:"primaryKey;size:36"`
	CustomerID string `gorm:"size:64;index;not null"`
	TotalCents int64  `gorm:"not null"`
	Status     string `gorm:"size:16;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel rows are written once with the order and never updated;
// line items are immutable snapshots.
type OrderItemModel struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	OrderID        string `gorm:"size:36;index;not null"`
	ProductID      string `gorm:"size:36;not null"`
	ProductName    string `gorm:"size:255;not null"`
	Quantity       int    `gorm:"not null"`
	UnitPriceCents int64  `gorm:"not null"`
}

func (OrderItemModel) TableName() string { return "order_items" }
