package saga

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"storefront/internal/order/domain"
	"storefront/internal/pkg/logger"
)

// ValidateItemsHandler resolves every requested item against the
// inventory service, in request order: fetch the product snapshot, then
// check sufficiency. Any miss aborts the whole saga with nothing
// persisted. On success it builds the immutable line items and the
// pending aggregate.
type ValidateItemsHandler struct {
	NextHandler
}

func (h *ValidateItemsHandler) Handle(orderCtx *OrderContext) error {
	ctx, span := orderCtx.Tracer.Start(orderCtx.Ctx, "saga.ValidateItems")
	defer span.End()
	span.SetAttributes(attribute.Int("order.item_count", len(orderCtx.Requested)))

	items := make([]domain.LineItem, 0, len(orderCtx.Requested))
	for _, requested := range orderCtx.Requested {
		snapshot, err := orderCtx.Inventory.FetchProduct(ctx, requested.ProductID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "product fetch failed")
			return fmt.Errorf("fetching product %s: %w", requested.ProductID, err)
		}

		if !orderCtx.Inventory.ValidateStock(ctx, requested.ProductID, requested.Quantity) {
			span.SetStatus(codes.Error, "insufficient stock")
			logger.Ctx(ctx).Warn().
				Str("order_id", orderCtx.OrderID).
				Str("product_id", requested.ProductID).
				Int("quantity", requested.Quantity).
				Msg("stock validation failed")
			return fmt.Errorf("product %s: %w", requested.ProductID, ErrInsufficientStock)
		}

		// Name and price are captured here; the catalog may change later
		// without affecting this order.
		items = append(items, domain.LineItem{
			ProductID:      snapshot.ID,
			ProductName:    snapshot.Name,
			Quantity:       requested.Quantity,
			UnitPriceCents: snapshot.PriceCents,
		})
	}

	order, err := domain.NewOrder(orderCtx.OrderID, orderCtx.CustomerID, items)
	if err != nil {
		span.RecordError(err)
		return err
	}
	orderCtx.Order = order
	span.AddEvent("all items validated, snapshots captured")

	return h.executeNext(orderCtx)
}
