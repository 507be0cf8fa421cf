package trade

import (
	"context"

	"github.com/busstore/backend/internal/domain/shared"
	"github.com/busstore/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleService exposes the sale ledger: listing, fulfillment transitions
type SaleService struct {
	saleRepo trade.SaleRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo trade.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// Get returns a sale by ID
func (s *SaleService) Get(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// GetForBuyer returns a sale only if it belongs to the given buyer
func (s *SaleService) GetForBuyer(ctx context.Context, id uuid.UUID, buyerEmail string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.BuyerEmail != buyerEmail {
		return nil, shared.ErrForbidden
	}

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// GetBySaleNumber returns a sale by its human-facing number
func (s *SaleService) GetBySaleNumber(ctx context.Context, saleNumber string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindBySaleNumber(ctx, saleNumber)
	if err != nil {
		return nil, err
	}

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// RevenueSummary rolls up the ledger for the admin dashboard
func (s *SaleService) RevenueSummary(ctx context.Context) (*RevenueSummaryResponse, error) {
	sales, err := s.saleRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	summary := RevenueSummaryResponse{Revenue: decimal.Zero}
	for i := range sales {
		switch sales[i].Status {
		case trade.SaleStatusCancelled:
			summary.CancelledCount++
			continue
		case trade.SaleStatusShipped:
			summary.ShippedCount++
		case trade.SaleStatusDelivered:
			summary.DeliveredCount++
		}
		summary.SaleCount++
		summary.Revenue = summary.Revenue.Add(sales[i].TotalAmount)
	}
	return &summary, nil
}

// List returns sales matching the filter (admin view)
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) (shared.Paginated[SaleResponse], error) {
	sharedFilter := toSaleSharedFilter(filter)

	var result shared.Paginated[trade.Sale]
	var err error
	if filter.BuyerEmail != "" {
		result, err = s.saleRepo.FindByBuyerEmail(ctx, filter.BuyerEmail, sharedFilter)
	} else {
		result, err = s.saleRepo.FindPaginated(ctx, sharedFilter)
	}
	if err != nil {
		return shared.Paginated[SaleResponse]{}, err
	}

	return toSalePage(result), nil
}

// ListForBuyer returns the buyer's own purchase history
func (s *SaleService) ListForBuyer(ctx context.Context, buyerEmail string, filter SaleListFilter) (shared.Paginated[SaleResponse], error) {
	result, err := s.saleRepo.FindByBuyerEmail(ctx, buyerEmail, toSaleSharedFilter(filter))
	if err != nil {
		return shared.Paginated[SaleResponse]{}, err
	}

	return toSalePage(result), nil
}

// MarkShipped marks a sale as shipped (admin)
func (s *SaleService) MarkShipped(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sale.MarkShipped(); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// MarkDelivered marks a sale as delivered (admin)
func (s *SaleService) MarkDelivered(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sale.MarkDelivered(); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Cancel cancels a sale's fulfillment (admin)
func (s *SaleService) Cancel(ctx context.Context, id uuid.UUID, req CancelSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sale.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	resp := ToSaleResponse(sale)
	return &resp, nil
}

func toSalePage(result shared.Paginated[trade.Sale]) shared.Paginated[SaleResponse] {
	items := make([]SaleResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, ToSaleResponse(&result.Items[i]))
	}
	return shared.NewPaginated(items, result.Total, result.Page, result.PageSize)
}

func toSaleSharedFilter(f SaleListFilter) shared.Filter {
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
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}
