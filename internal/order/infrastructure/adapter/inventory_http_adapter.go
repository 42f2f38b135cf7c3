package adapter

import (
	"context"
	"fmt"
	"net/http"

	"storefront/internal/order/domain/port"
	"storefront/internal/pkg/httpclient"
	"storefront/internal/pkg/logger"
)

// InventoryHTTPAdapter implements port.InventoryGateway against the
// inventory service's HTTP surface. Each call is bounded by the client's
// timeout; no call is ever retried here, since CommitStock is not
// idempotent at the ledger and a retry could decrement twice.
type InventoryHTTPAdapter struct {
	client  *httpclient.Client
	baseURL string
}

func NewInventoryHTTPAdapter(client *httpclient.Client, baseURL string) *InventoryHTTPAdapter {
	return &InventoryHTTPAdapter{client: client, baseURL: baseURL}
}

type productPayload struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	StockQuantity  int    `json:"stock_quantity"`
}

// FetchProduct reads the current product snapshot. A 404 is
// ErrProductNotFound; everything else that is not a 2xx (timeouts,
// connection failures, 5xx) is ErrInventoryUnavailable, and the two are
// never conflated.
func (a *InventoryHTTPAdapter) FetchProduct(ctx context.Context, productID string) (*port.ProductSnapshot, error) {
	var payload productPayload
	status, err := a.client.GetJSON(ctx, fmt.Sprintf("%s/products/%s", a.baseURL, productID), &payload)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("product_id", productID).Msg("product fetch failed")
		return nil, port.ErrInventoryUnavailable
	}
	switch {
	case status == http.StatusNotFound:
		return nil, port.ErrProductNotFound
	case status < 200 || status >= 300:
		logger.Ctx(ctx).Warn().Int("status", status).Str("product_id", productID).
			Msg("unexpected status fetching product")
		return nil, port.ErrInventoryUnavailable
	}
	return &port.ProductSnapshot{
		ID:            payload.ID,
		Name:          payload.Name,
		PriceCents:    payload.UnitPriceCents,
		StockQuantity: payload.StockQuantity,
	}, nil
}

// ValidateStock asks the ledger whether qty is available. Unknown means
// no: any transport failure reads as false, blocking the sale rather
// than overselling.
func (a *InventoryHTTPAdapter) ValidateStock(ctx context.Context, productID string, qty int) bool {
	var sufficient bool
	status, err := a.client.PostJSON(ctx, fmt.Sprintf("%s/products/%s/validate-stock", a.baseURL, productID), qty, &sufficient)
	if err != nil || status != http.StatusOK {
		logger.Ctx(ctx).Warn().Err(err).Int("status", status).Str("product_id", productID).
			Msg("stock validation call failed, treating as insufficient")
		return false
	}
	return sufficient
}

// CommitStock asks the ledger to decrement qty. Same conservative bias as
// ValidateStock: unknown outcome reads as failure.
func (a *InventoryHTTPAdapter) CommitStock(ctx context.Context, productID string, qty int) bool {
	status, err := a.client.PutJSON(ctx, fmt.Sprintf("%s/products/%s/update-stock", a.baseURL, productID), qty, nil)
	if err != nil || status != http.StatusNoContent {
		logger.Ctx(ctx).Warn().Err(err).Int("status", status).Str("product_id", productID).
			Msg("stock commit call failed")
		return false
	}
	return true
}
