package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/busstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func saleRows(id uuid.UUID, saleNumber string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "version", "sale_number", "buyer_email", "status", "items", "payment"}).
		AddRow(id, 1, saleNumber, "ana@example.com", "PAID",
			[]byte(`[]`),
			[]byte(`{"provider_payment_id":"mp-12345","status":"approved","method":"visa","installments":1}`))
}

func TestGormSaleRepository_FindByProviderPaymentID(t *testing.T) {
	ctx := context.Background()

	t.Run("finds the sale recorded for a payment", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSaleRepository(db)

		saleID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE payment ->> 'provider_payment_id' = \$1`).
			WithArgs("mp-12345", 1).
			WillReturnRows(saleRows(saleID, "S-20260828-0001"))

		sale, err := repo.FindByProviderPaymentID(ctx, "mp-12345")
		require.NoError(t, err)
		assert.Equal(t, "S-20260828-0001", sale.SaleNumber)
		assert.Equal(t, "mp-12345", sale.Payment.ProviderPaymentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown payment maps to ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSaleRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "sales"`).
			WithArgs("mp-unknown", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByProviderPaymentID(ctx, "mp-unknown")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormSaleRepository_FindByBuyerEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("lowercases the email before querying", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSaleRepository(db)

		filter := shared.DefaultFilter()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "sales" WHERE buyer_email = \$1`).
			WithArgs("ana@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE buyer_email = \$1`).
			WithArgs("ana@example.com").
			WillReturnRows(saleRows(uuid.New(), "S-20260828-0001"))

		page, err := repo.FindByBuyerEmail(ctx, " Ana@Example.com ", filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_NextSaleNumber(t *testing.T) {
	ctx := context.Background()
	today := time.Now().Format("20060102")

	t.Run("starts the daily sequence at one", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSaleRepository(db)

		mock.ExpectQuery(`SELECT "sale_number" FROM "sales" WHERE sale_number LIKE \$1`).
			WithArgs(fmt.Sprintf("S-%s-%%", today)).
			WillReturnRows(sqlmock.NewRows([]string{"sale_number"}))

		number, err := repo.NextSaleNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("S-%s-0001", today), number)
	})

	t.Run("increments past the day's highest number", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSaleRepository(db)

		mock.ExpectQuery(`SELECT "sale_number" FROM "sales" WHERE sale_number LIKE \$1`).
			WithArgs(fmt.Sprintf("S-%s-%%", today)).
			WillReturnRows(sqlmock.NewRows([]string{"sale_number"}).
				AddRow(fmt.Sprintf("S-%s-0042", today)))

		number, err := repo.NextSaleNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("S-%s-0043", today), number)
	})
}
