package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/inventory/application"
	"storefront/internal/inventory/domain"
	"storefront/internal/pkg/logger"
)

// ProductHandler exposes the stock ledger over HTTP for the order service
// and the edge gateway.
type ProductHandler struct {
	service *application.StockService
}

func NewProductHandler(service *application.StockService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Post("/products/{id}/validate-stock", h.validateStock)
	r.Put("/products/{id}/update-stock", h.updateStock)
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		logger.Ctx(r.Context()).Error().Err(err).Msg("failed to list products")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product_not_found", "")
			return
		}
		logger.Ctx(r.Context()).Error().Err(err).Str("product_id", id).Msg("failed to get product")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// validateStock answers the sufficiency question with a bare boolean.
// The request body is the bare requested quantity, mirroring update-stock.
func (h *ProductHandler) validateStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var qty int
	if err := json.NewDecoder(r.Body).Decode(&qty); err != nil || qty <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_quantity", "body must be a positive integer")
		return
	}
	ok, err := h.service.ValidateStock(r.Context(), id, qty)
	if err != nil {
		logger.Ctx(r.Context()).Error().Err(err).Str("product_id", id).Msg("failed to validate stock")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

// updateStock commits a decrement. 204 on success; 400 both for an unknown
// product and for a decrement that would take stock below zero, so the
// caller's conservative-failure handling sees one failure shape.
func (h *ProductHandler) updateStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var qty int
	if err := json.NewDecoder(r.Body).Decode(&qty); err != nil || qty <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_quantity", "body must be a positive integer")
		return
	}
	if err := h.service.CommitDecrement(r.Context(), id, qty); err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			writeError(w, http.StatusBadRequest, "product_not_found", "")
		case errors.Is(err, domain.ErrInsufficientStock):
			writeError(w, http.StatusBadRequest, "insufficient_stock", "")
		default:
			logger.Ctx(r.Context()).Error().Err(err).Str("product_id", id).Msg("failed to update stock")
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
