package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/busstore/backend/internal/domain/shared"
	"github.com/busstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// VariationKey identifies a Variation within a Product (color + size)
type VariationKey struct {
	Color string `json:"color"`
	Size  string `json:"size"`
}

// String returns the display form of the key, e.g. "red/M"
func (k VariationKey) String() string {
	return k.Color + "/" + k.Size
}

// Variation is a specific color/size combination of a Product,
// each carrying its own stock count.
type Variation struct {
	Color string `json:"color"`
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Key returns the variation's identifying key
func (v Variation) Key() VariationKey {
	return VariationKey{Color: v.Color, Size: v.Size}
}

// Dimensions holds product packaging dimensions in centimeters
type Dimensions struct {
	LengthCm decimal.Decimal `json:"length_cm"`
	WidthCm  decimal.Decimal `json:"width_cm"`
	HeightCm decimal.Decimal `json:"height_cm"`
}

// Product represents a product in the catalog.
// It is the aggregate root for catalog operations; the ordered Variations
// slice carries the per-variation stock counts guarded at checkout.
type Product struct {
	shared.BaseAggregateRoot
	Code         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	Category     string          `gorm:"type:varchar(100);index"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	WeightKg     decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	Dimensions   Dimensions      `gorm:"serializer:json;type:jsonb"`
	MinStock     int             `gorm:"not null;default:0"`
	Status       ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	Variations   []Variation     `gorm:"serializer:json;type:jsonb;not null"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(code, name, category string) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Category:          category,
		SellingPrice:      decimal.Zero,
		CostPrice:         decimal.Zero,
		WeightKg:          decimal.Zero,
		Status:            ProductStatusActive,
		Variations:        make([]Variation, 0),
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, category string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrices sets selling and cost prices
func (p *Product) SetPrices(selling, cost valueobject.Money) error {
	if selling.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}

	p.SellingPrice = selling.Amount()
	p.CostPrice = cost.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetShipping sets weight and dimensions used for shipping quotes
func (p *Product) SetShipping(weightKg decimal.Decimal, dims Dimensions) error {
	if weightKg.IsNegative() {
		return shared.NewDomainError("INVALID_WEIGHT", "Weight cannot be negative")
	}
	p.WeightKg = weightKg
	p.Dimensions = dims
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetMinStock sets the low-stock alert threshold
func (p *Product) SetMinStock(minStock int) error {
	if minStock < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}
	p.MinStock = minStock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// AddVariation appends a new color/size variation with an initial stock count
func (p *Product) AddVariation(color, size string, stock int) error {
	if err := validateVariationKey(color, size); err != nil {
		return err
	}
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	key := VariationKey{Color: color, Size: size}
	if _, ok := p.findVariation(key); ok {
		return shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Variation %s already exists on product %s", key, p.Code))
	}

	p.Variations = append(p.Variations, Variation{Color: color, Size: size, Stock: stock})
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, key, 0, stock))

	return nil
}

// RemoveVariation removes a variation by key
func (p *Product) RemoveVariation(key VariationKey) error {
	idx, ok := p.findVariation(key)
	if !ok {
		return shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("Variation %s not found on product %s", key, p.Code))
	}

	p.Variations = append(p.Variations[:idx], p.Variations[idx+1:]...)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Variation returns the variation matching the key
func (p *Product) Variation(key VariationKey) (Variation, bool) {
	idx, ok := p.findVariation(key)
	if !ok {
		return Variation{}, false
	}
	return p.Variations[idx], true
}

// StockFor returns the stock count for a variation key.
// Returns NOT_FOUND if the variation does not exist.
func (p *Product) StockFor(key VariationKey) (int, error) {
	idx, ok := p.findVariation(key)
	if !ok {
		return 0, shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("Variation %s not found on product %s", key, p.Code))
	}
	return p.Variations[idx].Stock, nil
}

// HasSufficientStock returns true if the variation exists and holds at least qty units
func (p *Product) HasSufficientStock(key VariationKey, qty int) bool {
	idx, ok := p.findVariation(key)
	return ok && p.Variations[idx].Stock >= qty
}

// DecrementStock decrements a variation's stock by qty.
// Re-validates sufficiency so stock can never go negative.
func (p *Product) DecrementStock(key VariationKey, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	idx, ok := p.findVariation(key)
	if !ok {
		return shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("Variation %s not found on product %s", key, p.Code))
	}
	if p.Variations[idx].Stock < qty {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for %s (%s): have %d, need %d",
				p.Name, key, p.Variations[idx].Stock, qty))
	}

	oldStock := p.Variations[idx].Stock
	p.Variations[idx].Stock -= qty
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, key, oldStock, p.Variations[idx].Stock))

	return nil
}

// IncrementStock adds qty units to a variation's stock (admin restock)
func (p *Product) IncrementStock(key VariationKey, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	idx, ok := p.findVariation(key)
	if !ok {
		return shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("Variation %s not found on product %s", key, p.Code))
	}

	oldStock := p.Variations[idx].Stock
	p.Variations[idx].Stock += qty
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, key, oldStock, p.Variations[idx].Stock))

	return nil
}

// TotalStock returns the sum of stock across all variations
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variations {
		total += v.Stock
	}
	return total
}

// IsBelowMinStock returns true if total stock is under the alert threshold
func (p *Product) IsBelowMinStock() bool {
	return p.MinStock > 0 && p.TotalStock() < p.MinStock
}

// Activate makes the product visible to the storefront
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// GetSellingPriceMoney returns the selling price as a Money value object
func (p *Product) GetSellingPriceMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(p.SellingPrice)
}

// GetCostPriceMoney returns the cost price as a Money value object
func (p *Product) GetCostPriceMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(p.CostPrice)
}

func (p *Product) findVariation(key VariationKey) (int, bool) {
	for i, v := range p.Variations {
		if strings.EqualFold(v.Color, key.Color) && strings.EqualFold(v.Size, key.Size) {
			return i, true
		}
	}
	return 0, false
}

// validateProductCode validates the product code (SKU)
func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateVariationKey(color, size string) error {
	if strings.TrimSpace(color) == "" {
		return shared.NewDomainError("INVALID_VARIATION", "Variation color cannot be empty")
	}
	if strings.TrimSpace(size) == "" {
		return shared.NewDomainError("INVALID_VARIATION", "Variation size cannot be empty")
	}
	return nil
}
