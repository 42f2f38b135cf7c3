package infrastructure

import "storefront/internal/order/domain"

func toDomainOrder(m *OrderModel) *domain.Order {
	items := make([]domain.LineItem, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, domain.LineItem{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	return &domain.Order{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Items:      items,
		TotalCents: m.TotalCents,
		Status:     domain.Status(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func fromDomainOrder(o *domain.Order) *OrderModel {
	items := make([]OrderItemModel, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemModel{
			OrderID:        o.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	return &OrderModel{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		TotalCents: o.TotalCents,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		Items:      items,
	}
}
