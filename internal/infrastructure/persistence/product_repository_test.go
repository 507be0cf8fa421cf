package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/busstore/backend/internal/domain/catalog"
	"github.com/busstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func productRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "version", "code", "name", "category", "status", "variations"}).
		AddRow(id, 1, "TSHIRT-001", "Bus Tee", "t-shirts", "active", []byte(`[{"color":"red","size":"M","stock":10}]`))
}

func TestGormProductRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("finds existing product", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(productRows(productID))

		product, err := repo.FindByID(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, "TSHIRT-001", product.Code)
		assert.Len(t, product.Variations, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "products"`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(ctx, productID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindByCode(t *testing.T) {
	ctx := context.Background()

	t.Run("uppercases the code before querying", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE code = \$1`).
			WithArgs("TSHIRT-001", 1).
			WillReturnRows(productRows(productID))

		product, err := repo.FindByCode(ctx, "tshirt-001")
		require.NoError(t, err)
		assert.Equal(t, "TSHIRT-001", product.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_SaveWithLock(t *testing.T) {
	ctx := context.Background()

	newProduct := func(t *testing.T) *catalog.Product {
		t.Helper()
		product, err := catalog.NewProduct("TSHIRT-001", "Bus Tee", "t-shirts")
		require.NoError(t, err)
		return product
	}

	t.Run("stale version yields concurrency conflict", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		product := newProduct(t)
		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(ctx, product, 3)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("matching version updates the row", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		product := newProduct(t)
		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SaveWithLock(ctx, product, 0))
	})
}

func TestGormProductRepository_DecrementStock(t *testing.T) {
	ctx := context.Background()
	key := catalog.VariationKey{Color: "red", Size: "M"}

	t.Run("locks the row and persists the decremented stock", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* FOR UPDATE`).
			WithArgs(productID, 1).
			WillReturnRows(productRows(productID))
		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DecrementStock(ctx, productID, key, 3)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient stock rolls back", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* FOR UPDATE`).
			WithArgs(productID, 1).
			WillReturnRows(productRows(productID))
		mock.ExpectRollback()

		err := repo.DecrementStock(ctx, productID, key, 11)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing product maps to ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "products"`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectRollback()

		err := repo.DecrementStock(ctx, productID, key, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row maps to ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		mock.ExpectExec(`DELETE FROM "products"`).
			WithArgs(productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, productID), shared.ErrNotFound)
	})
}
