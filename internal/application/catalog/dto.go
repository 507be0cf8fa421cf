package catalog

import (
	"time"

	"github.com/busstore/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariationRequest is one color/size/stock entry in a product payload
type VariationRequest struct {
	Color string `json:"color" binding:"required,min=1,max=50"`
	Size  string `json:"size" binding:"required,min=1,max=20"`
	Stock int    `json:"stock" binding:"min=0"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code         string             `json:"code" binding:"required,min=1,max=50"`
	Name         string             `json:"name" binding:"required,min=1,max=200"`
	Description  string             `json:"description" binding:"max=2000"`
	Category     string             `json:"category" binding:"max=100"`
	SellingPrice *decimal.Decimal   `json:"selling_price"`
	CostPrice    *decimal.Decimal   `json:"cost_price"`
	WeightKg     *decimal.Decimal   `json:"weight_kg"`
	MinStock     *int               `json:"min_stock"`
	Variations   []VariationRequest `json:"variations" binding:"dive"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" binding:"omitempty,max=2000"`
	Category     *string          `json:"category" binding:"omitempty,max=100"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	WeightKg     *decimal.Decimal `json:"weight_kg"`
	MinStock     *int             `json:"min_stock"`
}

// AdjustStockRequest changes one variation's stock count
type AdjustStockRequest struct {
	Color    string `json:"color" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// AddVariationRequest adds a new color/size variation to a product
type AddVariationRequest struct {
	Color string `json:"color" binding:"required,min=1,max=50"`
	Size  string `json:"size" binding:"required,min=1,max=20"`
	Stock int    `json:"stock" binding:"min=0"`
}

// VariationResponse is one variation in API responses
type VariationResponse struct {
	Color string `json:"color"`
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// ProductResponse represents a product in admin API responses
type ProductResponse struct {
	ID           uuid.UUID           `json:"id"`
	Code         string              `json:"code"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	SellingPrice decimal.Decimal     `json:"selling_price"`
	CostPrice    decimal.Decimal     `json:"cost_price"`
	WeightKg     decimal.Decimal     `json:"weight_kg"`
	MinStock     int                 `json:"min_stock"`
	Status       string              `json:"status"`
	Variations   []VariationResponse `json:"variations"`
	TotalStock   int                 `json:"total_stock"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// StorefrontProductResponse is the public catalog view: no cost price,
// per-variation availability instead of exact counts.
type StorefrontProductResponse struct {
	ID           uuid.UUID                     `json:"id"`
	Code         string                        `json:"code"`
	Name         string                        `json:"name"`
	Description  string                        `json:"description"`
	Category     string                        `json:"category"`
	SellingPrice decimal.Decimal               `json:"selling_price"`
	Variations   []StorefrontVariationResponse `json:"variations"`
}

// StorefrontVariationResponse exposes availability without exact counts
type StorefrontVariationResponse struct {
	Color     string `json:"color"`
	Size      string `json:"size"`
	Available bool   `json:"available"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	variations := make([]VariationResponse, 0, len(p.Variations))
	for _, v := range p.Variations {
		variations = append(variations, VariationResponse{Color: v.Color, Size: v.Size, Stock: v.Stock})
	}

	return ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		SellingPrice: p.SellingPrice,
		CostPrice:    p.CostPrice,
		WeightKg:     p.WeightKg,
		MinStock:     p.MinStock,
		Status:       string(p.Status),
		Variations:   variations,
		TotalStock:   p.TotalStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.GetVersion(),
	}
}

// ToStorefrontProductResponse converts a product to its public view
func ToStorefrontProductResponse(p *catalog.Product) StorefrontProductResponse {
	variations := make([]StorefrontVariationResponse, 0, len(p.Variations))
	for _, v := range p.Variations {
		variations = append(variations, StorefrontVariationResponse{
			Color:     v.Color,
			Size:      v.Size,
			Available: v.Stock > 0,
		})
	}

	return StorefrontProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		SellingPrice: p.SellingPrice,
		Variations:   variations,
	}
}
