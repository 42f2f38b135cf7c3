package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/order/application/saga"
	"storefront/internal/order/domain"
	"storefront/internal/order/domain/port"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/metrics"
)

// OrderService orchestrates the order lifecycle. Each CreateOrder call
// runs its own saga; there is no coordination between concurrent calls.
// The ledger's atomic decrement is the only cross-request guard.
type OrderService struct {
	repo      domain.OrderRepository
	inventory port.InventoryGateway
	publisher port.EventPublisher
	tracer    trace.Tracer
}

func NewOrderService(repo domain.OrderRepository, inventory port.InventoryGateway, publisher port.EventPublisher, tracer trace.Tracer) *OrderService {
	return &OrderService{repo: repo, inventory: inventory, publisher: publisher, tracer: tracer}
}

func (s *OrderService) buildChain() saga.Handler {
	validate := &saga.ValidateItemsHandler{}
	validate.
		SetNext(&saga.PersistPendingHandler{}).
		SetNext(&saga.CommitStockHandler{}).
		SetNext(&saga.ConfirmOrderHandler{})
	return validate
}

// CreateOrder drives the saga to a terminal status and returns the final
// aggregate. Failures before the durability checkpoint return an error
// and leave nothing behind. A stock-commit failure after the checkpoint
// returns the order in Cancelled status with a nil error: the caller sees
// the terminal state, not a transport-shaped failure.
func (s *OrderService) CreateOrder(ctx context.Context, customerID string, items []saga.RequestedItem) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.CreateOrder")
	defer span.End()
	span.SetAttributes(
		attribute.String("customer.id", customerID),
		attribute.Int("order.item_count", len(items)),
	)

	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	orderCtx := &saga.OrderContext{
		Ctx:        ctx,
		OrderID:    uuid.New().String(),
		CustomerID: customerID,
		Requested:  items,
		Tracer:     s.tracer,
		Inventory:  s.inventory,
		Repo:       s.repo,
		Publisher:  s.publisher,
	}

	if err := s.buildChain().Handle(orderCtx); err != nil {
		if errors.Is(err, saga.ErrStockCommitFailed) && orderCtx.Persisted {
			return s.cancelAfterPartialCommit(ctx, orderCtx)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "order saga aborted")
		return nil, err
	}

	metrics.OrdersTotal.WithLabelValues(string(domain.StatusConfirmed)).Inc()
	logger.Ctx(ctx).Info().
		Str("order_id", orderCtx.Order.ID).
		Str("customer_id", customerID).
		Int64("total_cents", orderCtx.Order.TotalCents).
		Msg("order confirmed")
	return orderCtx.Order, nil
}

// cancelAfterPartialCommit records the Cancelled terminal status after a
// stock commit failed. Decrements already applied for earlier line items
// are not reversed; the committed count in the log is the only visible
// trace of that gap.
func (s *OrderService) cancelAfterPartialCommit(ctx context.Context, orderCtx *saga.OrderContext) (*domain.Order, error) {
	order := orderCtx.Order
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, order); err != nil {
		logger.Ctx(ctx).Error().Err(err).
			Str("order_id", order.ID).
			Msg("failed to persist cancelled order after stock commit failure")
		return nil, err
	}
	metrics.OrdersTotal.WithLabelValues(string(domain.StatusCancelled)).Inc()
	logger.Ctx(ctx).Warn().
		Str("order_id", order.ID).
		Int("committed_items", len(orderCtx.Committed)).
		Msg("order cancelled after stock commit failure")
	return order, nil
}

// ListOrders returns the caller's own orders only.
func (s *OrderService) ListOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.ListOrders")
	defer span.End()
	return s.repo.FindByCustomer(ctx, customerID)
}

// GetOrder is owner scoped: an order that exists but belongs to another
// customer reads as not found.
func (s *OrderService) GetOrder(ctx context.Context, id, customerID string) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.GetOrder")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", id))

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// CancelOrder handles the explicit customer cancellation of a Pending
// order. No stock action is taken: a Pending order has not had stock
// committed (commit happens synchronously inside CreateOrder).
func (s *OrderService) CancelOrder(ctx context.Context, id, customerID string) error {
	ctx, span := s.tracer.Start(ctx, "order.CancelOrder")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", id))

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order.CustomerID != customerID {
		return domain.ErrOrderNotFound
	}
	if err := order.Cancel(); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return err
	}
	metrics.OrdersTotal.WithLabelValues(string(domain.StatusCancelled)).Inc()
	logger.Ctx(ctx).Info().Str("order_id", id).Msg("order cancelled by customer")
	return nil
}
