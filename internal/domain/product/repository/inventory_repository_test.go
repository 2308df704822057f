package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func productRows(id uint, name string, stock, sold int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "price", "cost_price", "stock", "sold_quantity", "status"}).
		AddRow(id, name, "5.00", "2.00", stock, sold, "on")
}

func expectLockProduct(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT \* FROM "product" WHERE "product"\."id" = \$1 .*FOR UPDATE`).
		WithArgs(1, 1).
		WillReturnRows(rows)
}

func TestInventoryReserve(t *testing.T) {
	repo := NewInventoryRepository()

	t.Run("locks row and bumps sold quantity", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		expectLockProduct(mock, productRows(1, "烤羊肉串", 10, 4))
		mock.ExpectExec(`UPDATE "product" SET "sold_quantity"=\$1`).
			WithArgs(7, sqlmock.AnyArg(), 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transaction(func(tx *gorm.DB) error {
			product, err := repo.Reserve(tx, 1, 3)
			if err != nil {
				return err
			}
			assert.Equal(t, 7, product.SoldQuantity)
			assert.Equal(t, 3, product.Available())
			return nil
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects when available is short", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		expectLockProduct(mock, productRows(1, "烤羊肉串", 10, 8))
		mock.ExpectRollback()

		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := repo.Reserve(tx, 1, 3)
			return err
		})

		var insufficient *InsufficientStockError
		assert.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 2, insufficient.Available)
		assert.Equal(t, 3, insufficient.Requested)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing product", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM "product"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := repo.Reserve(tx, 1, 3)
			return err
		})

		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestInventoryRelease(t *testing.T) {
	repo := NewInventoryRepository()

	t.Run("returns reserved units", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		expectLockProduct(mock, productRows(1, "烤羊肉串", 10, 4))
		mock.ExpectExec(`UPDATE "product" SET "sold_quantity"=\$1`).
			WithArgs(1, sqlmock.AnyArg(), 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transaction(func(tx *gorm.DB) error {
			product, err := repo.Release(tx, 1, 3)
			if err != nil {
				return err
			}
			assert.Equal(t, 1, product.SoldQuantity)
			return nil
		})

		assert.NoError(t, err)
	})

	t.Run("floors sold quantity at zero", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		expectLockProduct(mock, productRows(1, "烤羊肉串", 10, 2))
		mock.ExpectExec(`UPDATE "product" SET "sold_quantity"=\$1`).
			WithArgs(0, sqlmock.AnyArg(), 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transaction(func(tx *gorm.DB) error {
			product, err := repo.Release(tx, 1, 5)
			if err != nil {
				return err
			}
			assert.Equal(t, 0, product.SoldQuantity)
			return nil
		})

		assert.NoError(t, err)
	})
}

func TestInventoryReceivePurchase(t *testing.T) {
	repo := NewInventoryRepository()

	t.Run("adds stock and overwrites cost price", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		expectLockProduct(mock, productRows(1, "烤羊肉串", 10, 4))
		mock.ExpectExec(`UPDATE "product" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transaction(func(tx *gorm.DB) error {
			product, err := repo.ReceivePurchase(tx, 1, 20, decimal.RequireFromString("2.50"))
			if err != nil {
				return err
			}
			assert.Equal(t, 30, product.Stock)
			assert.True(t, product.CostPrice.Equal(decimal.RequireFromString("2.50")))
			return nil
		})

		assert.NoError(t, err)
	})
}

func TestInventoryRemovePurchase(t *testing.T) {
	repo := NewInventoryRepository()

	t.Run("rejects removing sold units", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		// 进货 10 件已售 4 件，未售出只有 6 件
		expectLockProduct(mock, productRows(1, "烤羊肉串", 10, 4))
		mock.ExpectRollback()

		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := repo.RemovePurchase(tx, 1, 8)
			return err
		})

		var insufficient *InsufficientAvailableError
		assert.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 6, insufficient.Available)
	})

	t.Run("removes unsold stock", func(t *testing.T) {
		db, mock := newTestDB(t)
		mock.ExpectBegin()
		expectLockProduct(mock, productRows(1, "烤羊肉串", 10, 4))
		mock.ExpectExec(`UPDATE "product" SET "stock"=\$1`).
			WithArgs(5, sqlmock.AnyArg(), 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transaction(func(tx *gorm.DB) error {
			product, err := repo.RemovePurchase(tx, 1, 5)
			if err != nil {
				return err
			}
			assert.Equal(t, 5, product.Stock)
			return nil
		})

		assert.NoError(t, err)
	})
}

