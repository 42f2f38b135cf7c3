package infrastructure

import "storefront/internal/inventory/domain"

func toDomainProduct(m *ProductModel) *domain.Product {
	return &domain.Product{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		PriceCents:    m.PriceCents,
		StockQuantity: m.StockQuantity,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromDomainProduct(p *domain.Product) *ProductModel {
	return &ProductModel{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		PriceCents:    p.PriceCents,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
