package trade

import (
	"context"
	"testing"

	"github.com/busstore/backend/internal/domain/shared"
	"github.com/busstore/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRecordedSale(t *testing.T) *trade.Sale {
	t.Helper()
	sale, err := trade.NewSale("S-20260828-0001", "ana@example.com", "Ana", trade.PaymentInfo{
		ProviderPaymentID: "mp-12345", Status: "approved", Method: "visa",
	}, mustAddress(t))
	require.NoError(t, err)
	_, err = sale.AddItem(uuid.New(), "TSHIRT-001", "Bus Tee", "red", "M", 1, decimalMoney(100))
	require.NoError(t, err)
	return sale
}

func TestSaleServiceGetForBuyer(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can read their sale", func(t *testing.T) {
		repo := new(MockSaleRepository)
		service := NewSaleService(repo)

		sale := newRecordedSale(t)
		repo.On("FindByID", ctx, sale.ID).Return(sale, nil)

		resp, err := service.GetForBuyer(ctx, sale.ID, "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, "S-20260828-0001", resp.SaleNumber)
	})

	t.Run("other buyers are refused", func(t *testing.T) {
		repo := new(MockSaleRepository)
		service := NewSaleService(repo)

		sale := newRecordedSale(t)
		repo.On("FindByID", ctx, sale.ID).Return(sale, nil)

		_, err := service.GetForBuyer(ctx, sale.ID, "bob@example.com")
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestSaleServiceFulfillment(t *testing.T) {
	ctx := context.Background()

	t.Run("mark shipped persists transition", func(t *testing.T) {
		repo := new(MockSaleRepository)
		service := NewSaleService(repo)

		sale := newRecordedSale(t)
		repo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		repo.On("Save", ctx, sale).Return(nil)

		resp, err := service.MarkShipped(ctx, sale.ID)
		require.NoError(t, err)
		assert.Equal(t, "SHIPPED", resp.Status)
		require.NotNil(t, resp.ShippedAt)
		repo.AssertExpectations(t)
	})

	t.Run("shipping twice fails without saving", func(t *testing.T) {
		repo := new(MockSaleRepository)
		service := NewSaleService(repo)

		sale := newRecordedSale(t)
		require.NoError(t, sale.MarkShipped())
		repo.On("FindByID", ctx, sale.ID).Return(sale, nil)

		_, err := service.MarkShipped(ctx, sale.ID)
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("cancel records the reason", func(t *testing.T) {
		repo := new(MockSaleRepository)
		service := NewSaleService(repo)

		sale := newRecordedSale(t)
		repo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		repo.On("Save", ctx, sale).Return(nil)

		resp, err := service.Cancel(ctx, sale.ID, CancelSaleRequest{Reason: "chargeback"})
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
	})
}

func TestSaleServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by buyer email when set", func(t *testing.T) {
		repo := new(MockSaleRepository)
		service := NewSaleService(repo)

		sale := newRecordedSale(t)
		page := shared.NewPaginated([]trade.Sale{*sale}, 1, 1, 20)
		repo.On("FindByBuyerEmail", ctx, "ana@example.com", mock.Anything).Return(page, nil)

		result, err := service.List(ctx, SaleListFilter{BuyerEmail: "ana@example.com"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
		repo.AssertNotCalled(t, "FindPaginated")
	})
}
