package trade

import (
	"context"

	"github.com/busstore/backend/internal/domain/shared"
)

// SaleRepository defines persistence operations for the sale ledger
type SaleRepository interface {
	shared.Repository[Sale]

	// FindBySaleNumber looks up a sale by its human-facing number
	FindBySaleNumber(ctx context.Context, saleNumber string) (*Sale, error)

	// FindByBuyerEmail returns a buyer's sales, newest first, paginated
	FindByBuyerEmail(ctx context.Context, email string, filter shared.Filter) (shared.Paginated[Sale], error)

	// FindByProviderPaymentID looks up the sale recorded for a provider
	// payment, used to keep the ledger idempotent across payment retries
	FindByProviderPaymentID(ctx context.Context, providerPaymentID string) (*Sale, error)

	// FindPaginated returns sales matching the filter with pagination metadata
	FindPaginated(ctx context.Context, filter shared.Filter) (shared.Paginated[Sale], error)

	// NextSaleNumber reserves the next sale number in sequence
	NextSaleNumber(ctx context.Context) (string, error)
}
