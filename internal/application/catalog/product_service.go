package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/busstore/backend/internal/domain/catalog"
	"github.com/busstore/backend/internal/domain/shared"
	"github.com/busstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product with its initial variations
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.productRepo.FindByCode(ctx, strings.ToUpper(req.Code))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
	}

	product, err := catalog.NewProduct(req.Code, req.Name, req.Category)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description, req.Category); err != nil {
			return nil, err
		}
	}

	if req.SellingPrice != nil || req.CostPrice != nil {
		selling := valueobject.ZeroBRL()
		cost := valueobject.ZeroBRL()
		if req.SellingPrice != nil {
			selling = valueobject.NewMoneyBRL(*req.SellingPrice)
		}
		if req.CostPrice != nil {
			cost = valueobject.NewMoneyBRL(*req.CostPrice)
		}
		if err := product.SetPrices(selling, cost); err != nil {
			return nil, err
		}
	}

	if req.WeightKg != nil {
		if err := product.SetShipping(*req.WeightKg, catalog.Dimensions{}); err != nil {
			return nil, err
		}
	}

	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	for _, v := range req.Variations {
		if err := product.AddVariation(v.Color, v.Size, v.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update updates a product's details and prices
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	description := product.Description
	category := product.Category
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Category != nil {
		category = *req.Category
	}
	if err := product.Update(name, description, category); err != nil {
		return nil, err
	}

	if req.SellingPrice != nil || req.CostPrice != nil {
		selling := product.GetSellingPriceMoney()
		cost := product.GetCostPriceMoney()
		if req.SellingPrice != nil {
			selling = valueobject.NewMoneyBRL(*req.SellingPrice)
		}
		if req.CostPrice != nil {
			cost = valueobject.NewMoneyBRL(*req.CostPrice)
		}
		if err := product.SetPrices(selling, cost); err != nil {
			return nil, err
		}
	}

	if req.WeightKg != nil {
		if err := product.SetShipping(*req.WeightKg, product.Dimensions); err != nil {
			return nil, err
		}
	}

	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Get returns a product by ID (admin view)
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetStorefront returns a product's public view. Inactive products are
// hidden from the storefront.
func (s *ProductService) GetStorefront(ctx context.Context, id uuid.UUID) (*StorefrontProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.ErrNotFound
	}

	resp := ToStorefrontProductResponse(product)
	return &resp, nil
}

// List returns products matching the filter (admin view)
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	result, err := s.productRepo.FindPaginated(ctx, toSharedFilter(filter))
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	items := make([]ProductResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToProductResponse(&result.Items[i]))
	}

	return shared.NewPaginated(items, result.Total, result.Page, result.PageSize), nil
}

// ListStorefront returns active products in their public view
func (s *ProductService) ListStorefront(ctx context.Context, filter ProductListFilter) (shared.Paginated[StorefrontProductResponse], error) {
	result, err := s.productRepo.FindActive(ctx, toSharedFilter(filter))
	if err != nil {
		return shared.Paginated[StorefrontProductResponse]{}, err
	}

	items := make([]StorefrontProductResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToStorefrontProductResponse(&result.Items[i]))
	}

	return shared.NewPaginated(items, result.Total, result.Page, result.PageSize), nil
}

// AddVariation adds a color/size variation to an existing product
func (s *ProductService) AddVariation(ctx context.Context, id uuid.UUID, req AddVariationRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.AddVariation(req.Color, req.Size, req.Stock); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product, product.GetVersion()-1); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// RemoveVariation removes a color/size variation from a product
func (s *ProductService) RemoveVariation(ctx context.Context, id uuid.UUID, color, size string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.RemoveVariation(catalog.VariationKey{Color: color, Size: size}); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product, product.GetVersion()-1); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Restock adds stock to a variation (admin)
func (s *ProductService) Restock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := catalog.VariationKey{Color: req.Color, Size: req.Size}
	if err := product.IncrementStock(key, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product, product.GetVersion()-1); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Activate makes a product visible on the storefront
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := product.Activate(); err != nil {
		return err
	}
	return s.productRepo.Save(ctx, product)
}

// Deactivate hides a product from the storefront
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := product.Deactivate(); err != nil {
		return err
	}
	return s.productRepo.Save(ctx, product)
}

// Delete removes a product from the catalog
// ListLowStock returns active products whose total stock fell below their
// minimum threshold, for the admin dashboard.
func (s *ProductService) ListLowStock(ctx context.Context) ([]ProductResponse, error) {
	filter := shared.Filter{
		Filters: map[string]interface{}{"status": string(catalog.ProductStatusActive)},
	}
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	low := make([]ProductResponse, 0)
	for i := range products {
		if products[i].IsBelowMinStock() {
			low = append(low, ToProductResponse(&products[i]))
		}
	}
	return low, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func toSharedFilter(f ProductListFilter) shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}
