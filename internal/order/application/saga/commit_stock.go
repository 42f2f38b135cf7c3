package saga

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"storefront/internal/order/domain"
	"storefront/internal/pkg/logger"
)

// CommitStockHandler decrements the ledger for each line item, in the
// same order they were validated, stopping at the first failure.
//
// Decrements that already succeeded are deliberately NOT reversed when a
// later one fails: the ledger keeps them and the caller cancels the
// order. Compensation would go here if that decision ever changes.
type CommitStockHandler struct {
	NextHandler
}

func (h *CommitStockHandler) Handle(orderCtx *OrderContext) error {
	ctx, span := orderCtx.Tracer.Start(orderCtx.Ctx, "saga.CommitStock")
	defer span.End()

	for _, item := range orderCtx.Order.Items {
		if !orderCtx.Inventory.CommitStock(ctx, item.ProductID, item.Quantity) {
			span.SetStatus(codes.Error, "stock commit failed")
			span.SetAttributes(
				attribute.String("failed.product_id", item.ProductID),
				attribute.Int("committed.count", len(orderCtx.Committed)),
			)
			logger.Ctx(ctx).Warn().
				Str("order_id", orderCtx.Order.ID).
				Str("product_id", item.ProductID).
				Int("committed_items", len(orderCtx.Committed)).
				Msg("stock commit failed, earlier decrements stay applied")
			return fmt.Errorf("product %s: %w", item.ProductID, ErrStockCommitFailed)
		}
		orderCtx.Committed = append(orderCtx.Committed, domain.ProductSale{
			ProductID:    item.ProductID,
			QuantitySold: item.Quantity,
		})
	}
	span.AddEvent("all stock decrements committed")

	return h.executeNext(orderCtx)
}
