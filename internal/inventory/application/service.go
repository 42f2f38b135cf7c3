package application

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/inventory/domain"
	"storefront/internal/inventory/domain/port"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/metrics"
)

// StockService is the stock ledger: the authoritative answer on quantity
// on hand per product. All mutations go through CommitDecrement so the
// quantity floor holds regardless of how many orders race.
type StockService struct {
	repo      domain.ProductRepository
	publisher port.EventPublisher
	tracer    trace.Tracer
}

func NewStockService(repo domain.ProductRepository, publisher port.EventPublisher, tracer trace.Tracer) *StockService {
	return &StockService{repo: repo, publisher: publisher, tracer: tracer}
}

// ListProducts returns the catalog entries currently in stock.
func (s *StockService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.ListProducts")
	defer span.End()
	return s.repo.List(ctx)
}

func (s *StockService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.GetProduct")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))
	return s.repo.FindByID(ctx, id)
}

// ValidateStock reports whether id has at least qty on hand. An unknown
// product is simply false, not an error: callers only need a yes/no and
// the saga treats both the same way.
func (s *StockService) ValidateStock(ctx context.Context, id string, qty int) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.ValidateStock")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id), attribute.Int("quantity", qty))

	product, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return false, nil
	}
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	return product.StockQuantity >= qty, nil
}

// CommitDecrement subtracts qty from the product's quantity on hand and
// announces the new level. The subtraction is atomic at the store; a
// result below zero fails with ErrInsufficientStock and no write. The
// StockUpdated publish is best effort: a broker failure is logged and
// counted but never fails the decrement, which has already committed.
func (s *StockService) CommitDecrement(ctx context.Context, id string, qty int) error {
	ctx, span := s.tracer.Start(ctx, "inventory.CommitDecrement")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id), attribute.Int("quantity", qty))

	newQuantity, err := s.repo.DecrementStock(ctx, id, qty)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stock decrement failed")
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			metrics.StockDecrements.WithLabelValues("not_found").Inc()
		case errors.Is(err, domain.ErrInsufficientStock):
			metrics.StockDecrements.WithLabelValues("insufficient").Inc()
			logger.Ctx(ctx).Warn().Str("product_id", id).Int("quantity", qty).
				Msg("decrement rejected, would take stock below zero")
		default:
			metrics.StockDecrements.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.StockDecrements.WithLabelValues("ok").Inc()

	event := domain.StockUpdated{ProductID: id, NewQuantity: newQuantity, Timestamp: time.Now().UTC()}
	if err := s.publisher.Publish(ctx, domain.StockTopic, domain.StockUpdatedRoutingKey, event); err != nil {
		metrics.PublishFailures.WithLabelValues(domain.StockTopic).Inc()
		logger.Ctx(ctx).Error().Err(err).Str("product_id", id).
			Msg("failed to publish stock update event")
	}

	logger.Ctx(ctx).Info().Str("product_id", id).Int("new_quantity", newQuantity).
		Msg("stock updated")
	return nil
}
