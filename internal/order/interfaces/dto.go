package interfaces

import (
	"encoding/json"
	"net/http"
	"time"

	"storefront/internal/order/domain"
)

type createOrderRequest struct {
	Items []createOrderItem `json:"items"`
}

type createOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type orderResponse struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customer_id"`
	Items      []lineItemResponse `json:"items"`
	TotalCents int64              `json:"total_cents"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type lineItemResponse struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	items := make([]lineItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, lineItemResponse{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			SubtotalCents:  item.SubtotalCents(),
		})
	}
	return orderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Items:      items,
		TotalCents: o.TotalCents,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
