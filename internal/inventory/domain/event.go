package domain

import "time"

// Bus contract for stock change notifications.
const (
	StockTopic             = "estoque.exchange"
	StockUpdatedRoutingKey = "estoque.atualizado"
)

// StockUpdated announces a committed quantity change. Fire and forget;
// consumers are external and must tolerate duplicates.
type StockUpdated struct {
	ProductID   string    `json:"productId"`
	NewQuantity int       `json:"newQuantity"`
	Timestamp   time.Time `json:"timestamp"`
}
