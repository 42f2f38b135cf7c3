package interfaces

import (
	"encoding/json"
	"net/http"
	"time"

	"storefront/internal/inventory/domain"
)

type productResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	StockQuantity  int       `json:"stock_quantity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		UnitPriceCents: p.PriceCents,
		StockQuantity:  p.StockQuantity,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
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
