package infrastructure

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"storefront/internal/order/domain"
)

// GormOrderRepository persists order aggregates in MySQL.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save inserts the aggregate with its items on first write; later writes
// only touch status and updated_at, since line items never change after
// creation.
func (r *GormOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	model := fromDomainOrder(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&OrderModel{}).Where("id = ?", order.ID).Count(&count).Error; err != nil {
			return pkgerrors.Wrapf(err, "checking order %s", order.ID)
		}
		if count == 0 {
			if err := tx.Create(model).Error; err != nil {
				return pkgerrors.Wrapf(err, "creating order %s", order.ID)
			}
			return nil
		}
		err := tx.Model(&OrderModel{}).Where("id = ?", order.ID).Updates(map[string]any{
			"status":     string(order.Status),
			"updated_at": order.UpdatedAt,
		}).Error
		return pkgerrors.Wrapf(err, "updating order %s", order.ID)
	})
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var model OrderModel
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&model).Error
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, pkgerrors.Wrapf(err, "finding order %s", id)
	}
	return toDomainOrder(&model), nil
}

func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	var models []OrderModel
	err := r.db.WithContext(ctx).Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "listing orders for customer %s", customerID)
	}
	orders := make([]domain.Order, 0, len(models))
	for i := range models {
		orders = append(orders, *toDomainOrder(&models[i]))
	}
	return orders, nil
}
