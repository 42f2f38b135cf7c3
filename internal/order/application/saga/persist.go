package saga

import "fmt"

// PersistPendingHandler writes the pending aggregate. This is the saga's
// durability checkpoint: from here on the order exists regardless of what
// the stock commits do.
type PersistPendingHandler struct {
	NextHandler
}

func (h *PersistPendingHandler) Handle(orderCtx *OrderContext) error {
	ctx, span := orderCtx.Tracer.Start(orderCtx.Ctx, "saga.PersistPending")
	defer span.End()

	if err := orderCtx.Repo.Save(ctx, orderCtx.Order); err != nil {
		span.RecordError(err)
		return fmt.Errorf("persisting pending order: %w", err)
	}
	orderCtx.Persisted = true
	span.AddEvent("pending order saved")

	return h.executeNext(orderCtx)
}
