package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/order/application"
	"storefront/internal/order/application/saga"
	"storefront/internal/order/domain"
	"storefront/internal/order/domain/port"
	"storefront/internal/pkg/logger"
)

// clientIDHeader is set by the edge gateway after it has verified the
// caller's credentials; this service treats the value as opaque.
const clientIDHeader = "X-Client-Id"

// OrderHandler exposes the order lifecycle over HTTP.
type OrderHandler struct {
	service *application.OrderService
}

func NewOrderHandler(service *application.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Put("/orders/{id}/cancel", h.cancelOrder)
}

func customerID(r *http.Request) string {
	if id := r.Header.Get(clientIDHeader); id != "" {
		return id
	}
	return "anonymous"
}

// createOrder runs the whole saga synchronously and answers 201 with the
// terminal representation, Confirmed and Cancelled both, distinguished
// only by the status field.
func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	items := make([]saga.RequestedItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, saga.RequestedItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.service.CreateOrder(r.Context(), customerID(r), items)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyOrder), errors.Is(err, domain.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, port.ErrProductNotFound):
			writeError(w, http.StatusBadRequest, "product_not_found", err.Error())
		case errors.Is(err, saga.ErrInsufficientStock):
			writeError(w, http.StatusBadRequest, "insufficient_stock", err.Error())
		case errors.Is(err, port.ErrInventoryUnavailable):
			writeError(w, http.StatusBadGateway, "inventory_unavailable", "")
		default:
			logger.Ctx(r.Context()).Error().Err(err).Msg("order creation failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context(), customerID(r))
	if err != nil {
		logger.Ctx(r.Context()).Error().Err(err).Msg("failed to list orders")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, err := h.service.GetOrder(r.Context(), id, customerID(r))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found", "")
			return
		}
		logger.Ctx(r.Context()).Error().Err(err).Str("order_id", id).Msg("failed to get order")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.service.CancelOrder(r.Context(), id, customerID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "order_not_found", "")
		case errors.Is(err, domain.ErrNotCancellable):
			writeError(w, http.StatusBadRequest, "not_cancellable", "only pending orders can be cancelled")
		default:
			logger.Ctx(r.Context()).Error().Err(err).Str("order_id", id).Msg("failed to cancel order")
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
