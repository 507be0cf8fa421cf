package catalog

import (
	"context"

	"github.com/busstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	shared.Repository[Product]

	// FindByCode looks up a product by its unique code (SKU)
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindActive returns active products only, paginated
	FindActive(ctx context.Context, filter shared.Filter) (shared.Paginated[Product], error)

	// FindPaginated returns products matching the filter with pagination metadata
	FindPaginated(ctx context.Context, filter shared.Filter) (shared.Paginated[Product], error)

	// SaveWithLock persists the product only if the stored version still
	// matches the version the product was loaded at. Returns
	// shared.ErrConcurrencyConflict when another writer got there first.
	SaveWithLock(ctx context.Context, product *Product, expectedVersion int) error

	// DecrementStock atomically decrements one variation's stock inside a
	// transaction: the product row is re-read under a row lock, sufficiency
	// is re-validated, and the new count written back. Returns
	// shared.ErrInsufficientStock when the re-read count is below qty.
	// Each call covers a single product; callers settling a multi-product
	// sale invoke it once per line.
	DecrementStock(ctx context.Context, productID uuid.UUID, key VariationKey, qty int) error
}
