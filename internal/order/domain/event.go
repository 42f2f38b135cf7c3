package domain

import "time"

// Bus contract for sale notifications.
const (
	SalesTopic              = "vendas.exchange"
	SaleConfirmedRoutingKey = "venda.realizada"
)

// SaleConfirmed announces a confirmed order with the quantities sold per
// product. Emitted exactly when the order flips to Confirmed; never for
// cancelled orders.
type SaleConfirmed struct {
	OrderID   string        `json:"orderId"`
	Products  []ProductSale `json:"products"`
	Timestamp time.Time     `json:"timestamp"`
}

type ProductSale struct {
	ProductID    string `json:"productId"`
	QuantitySold int    `json:"quantitySold"`
}
