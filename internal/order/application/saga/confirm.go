package saga

import (
	"fmt"
	"time"

	"storefront/internal/order/domain"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/metrics"
)

// ConfirmOrderHandler flips the order to Confirmed, persists it and
// announces the sale. The publish is best effort; by the time it runs the
// sale is already committed, so a broker failure is logged, never raised.
type ConfirmOrderHandler struct {
	NextHandler
}

func (h *ConfirmOrderHandler) Handle(orderCtx *OrderContext) error {
	ctx, span := orderCtx.Tracer.Start(orderCtx.Ctx, "saga.ConfirmOrder")
	defer span.End()

	if err := orderCtx.Order.Confirm(); err != nil {
		span.RecordError(err)
		return err
	}
	if err := orderCtx.Repo.Save(ctx, orderCtx.Order); err != nil {
		span.RecordError(err)
		return fmt.Errorf("persisting confirmed order: %w", err)
	}

	event := domain.SaleConfirmed{
		OrderID:   orderCtx.Order.ID,
		Products:  orderCtx.Committed,
		Timestamp: time.Now().UTC(),
	}
	if err := orderCtx.Publisher.Publish(ctx, domain.SalesTopic, domain.SaleConfirmedRoutingKey, event); err != nil {
		metrics.PublishFailures.WithLabelValues(domain.SalesTopic).Inc()
		logger.Ctx(ctx).Error().Err(err).
			Str("order_id", orderCtx.Order.ID).
			Msg("failed to publish sale confirmed event")
	}
	span.AddEvent("order confirmed")

	return h.executeNext(orderCtx)
}
