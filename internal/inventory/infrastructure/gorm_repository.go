package infrastructure

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"storefront/internal/inventory/domain"
)

// GormProductRepository persists ledger records in MySQL.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var models []ProductModel
	err := r.db.WithContext(ctx).Where("stock_quantity > 0").Find(&models).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "listing products")
	}
	products := make([]domain.Product, 0, len(models))
	for i := range models {
		products = append(products, *toDomainProduct(&models[i]))
	}
	return products, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, pkgerrors.Wrapf(err, "finding product %s", id)
	}
	return toDomainProduct(&model), nil
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(fromDomainProduct(product)).Error; err != nil {
		return pkgerrors.Wrapf(err, "creating product %s", product.ID)
	}
	return nil
}

// DecrementStock runs the floor-checked subtraction as one conditional
// UPDATE so that two racing decrements can never both succeed on the last
// units. The stock_quantity >= qty guard is the only oversell protection
// in the whole system.
func (r *GormProductRepository) DecrementStock(ctx context.Context, id string, qty int) (int, error) {
	var newQuantity int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&ProductModel{}).
			Where("id = ? AND stock_quantity >= ?", id, qty).
			Updates(map[string]any{
				"stock_quantity": gorm.Expr("stock_quantity - ?", qty),
				"updated_at":     time.Now().UTC(),
			})
		if res.Error != nil {
			return pkgerrors.Wrapf(res.Error, "decrementing stock for %s", id)
		}
		if res.RowsAffected == 0 {
			// Distinguish a missing product from a floor violation.
			var count int64
			if err := tx.Model(&ProductModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return pkgerrors.Wrapf(err, "checking product %s", id)
			}
			if count == 0 {
				return domain.ErrProductNotFound
			}
			return domain.ErrInsufficientStock
		}
		var model ProductModel
		if err := tx.Select("stock_quantity").Where("id = ?", id).First(&model).Error; err != nil {
			return pkgerrors.Wrapf(err, "reloading product %s", id)
		}
		newQuantity = model.StockQuantity
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newQuantity, nil
}
