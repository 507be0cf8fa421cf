package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/busstore/backend/internal/domain/shared"
	"github.com/busstore/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM. Sales form an
// append-only ledger: rows are created once and only fulfillment fields
// change afterwards.
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindBySaleNumber finds a sale by its number
func (r *GormSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Where("sale_number = ?", saleNumber).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByProviderPaymentID finds the sale recorded for a provider payment.
// Used to keep payment retries from recording the same sale twice.
func (r *GormSaleRepository) FindByProviderPaymentID(ctx context.Context, providerPaymentID string) (*trade.Sale, error) {
	var sale trade.Sale
	if err := r.db.WithContext(ctx).
		Where("payment ->> 'provider_payment_id' = ?", providerPaymentID).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByBuyerEmail returns sales for a buyer with pagination metadata
func (r *GormSaleRepository) FindByBuyerEmail(ctx context.Context, email string, filter shared.Filter) (shared.Paginated[trade.Sale], error) {
	query := r.db.WithContext(ctx).Model(&trade.Sale{}).
		Where("buyer_email = ?", strings.ToLower(strings.TrimSpace(email)))
	return r.paginate(query, filter)
}

// FindAll finds all sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	var sales []trade.Sale
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Sale{}), filter)

	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindPaginated returns sales matching the filter with pagination metadata
func (r *GormSaleRepository) FindPaginated(ctx context.Context, filter shared.Filter) (shared.Paginated[trade.Sale], error) {
	return r.paginate(r.db.WithContext(ctx).Model(&trade.Sale{}), filter)
}

// Save creates or updates a sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// Delete deletes a sale. The ledger is append-only in normal operation;
// this exists for administrative cleanup only.
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.Sale{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.Sale{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextSaleNumber generates the next sale number, S-YYYYMMDD-XXXX with a
// daily sequence. The unique index on sale_number catches the rare race
// between two checkouts generating the same number.
func (r *GormSaleRepository) NextSaleNumber(ctx context.Context) (string, error) {
	today := time.Now().Format("20060102")
	prefix := fmt.Sprintf("S-%s-", today)

	var maxNumber string
	err := r.db.WithContext(ctx).Model(&trade.Sale{}).
		Select("sale_number").
		Where("sale_number LIKE ?", prefix+"%").
		Order("sale_number DESC").
		Limit(1).
		Pluck("sale_number", &maxNumber).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var seq int
	if maxNumber != "" {
		parts := strings.Split(maxNumber, "-")
		if _, err := fmt.Sscanf(parts[len(parts)-1], "%04d", &seq); err == nil {
			seq++
		}
	}
	if seq == 0 {
		seq = 1
	}

	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

func (r *GormSaleRepository) paginate(query *gorm.DB, filter shared.Filter) (shared.Paginated[trade.Sale], error) {
	var total int64
	counted := r.applyFilterWithoutPagination(query.Session(&gorm.Session{}), filter)
	if err := counted.Count(&total).Error; err != nil {
		return shared.Paginated[trade.Sale]{}, err
	}

	var sales []trade.Sale
	if err := r.applyFilter(query, filter).Find(&sales).Error; err != nil {
		return shared.Paginated[trade.Sale]{}, err
	}

	return shared.NewPaginated(sales, total, filter.Page, filter.PageSize), nil
}

// applyFilter applies filter options to the query
func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("sale_number ILIKE ? OR buyer_email ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "from":
			query = query.Where("created_at >= ?", value)
		case "to":
			query = query.Where("created_at <= ?", value)
		}
	}

	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ trade.SaleRepository = (*GormSaleRepository)(nil)
