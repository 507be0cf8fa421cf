package catalog

import (
	"github.com/busstore/backend/internal/domain/shared"
)

// Event types for the catalog domain
const (
	EventTypeProductCreated      = "catalog.product.created"
	EventTypeProductUpdated      = "catalog.product.updated"
	EventTypeProductStockChanged = "catalog.product.stock_changed"
)

// ProductCreatedEvent is raised when a new product enters the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// NewProductCreatedEvent creates a ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID),
		Code:            p.Code,
		Name:            p.Name,
		Category:        p.Category,
	}
}

// ProductUpdatedEvent is raised when product details or prices change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewProductUpdatedEvent creates a ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, "Product", p.ID),
		Code:            p.Code,
		Name:            p.Name,
	}
}

// ProductStockChangedEvent is raised whenever a variation's stock count moves
type ProductStockChangedEvent struct {
	shared.BaseDomainEvent
	Code     string `json:"code"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	OldStock int    `json:"old_stock"`
	NewStock int    `json:"new_stock"`
}

// NewProductStockChangedEvent creates a ProductStockChangedEvent
func NewProductStockChangedEvent(p *Product, key VariationKey, oldStock, newStock int) *ProductStockChangedEvent {
	return &ProductStockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStockChanged, "Product", p.ID),
		Code:            p.Code,
		Color:           key.Color,
		Size:            key.Size,
		OldStock:        oldStock,
		NewStock:        newStock,
	}
}
