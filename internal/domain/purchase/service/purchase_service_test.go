package service

import (
	"testing"

	productModel "bbq_ordering/internal/domain/product/model"
	productRepo "bbq_ordering/internal/domain/product/repository"
	"bbq_ordering/internal/domain/purchase/model"
	"bbq_ordering/internal/domain/purchase/repository"
	baseModel "bbq_ordering/pkg/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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

// MockPurchaseRepository is a mock of PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(tx *gorm.DB, purchase *model.Purchase) error {
	args := m.Called(tx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Delete(tx *gorm.DB, purchase *model.Purchase) error {
	args := m.Called(tx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) GetByID(id uint) (*model.Purchase, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) List(filter repository.PurchaseFilter, offset, limit int) ([]model.Purchase, int64, error) {
	args := m.Called(filter, offset, limit)
	return args.Get(0).([]model.Purchase), args.Get(1).(int64), args.Error(2)
}

// MockInventoryRepository is a mock of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Reserve(tx *gorm.DB, productID uint, quantity int) (*productModel.Product, error) {
	args := m.Called(tx, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productModel.Product), args.Error(1)
}

func (m *MockInventoryRepository) Release(tx *gorm.DB, productID uint, quantity int) (*productModel.Product, error) {
	args := m.Called(tx, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productModel.Product), args.Error(1)
}

func (m *MockInventoryRepository) ReceivePurchase(tx *gorm.DB, productID uint, quantity int, unitCost decimal.Decimal) (*productModel.Product, error) {
	args := m.Called(tx, productID, quantity, unitCost)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productModel.Product), args.Error(1)
}

func (m *MockInventoryRepository) RemovePurchase(tx *gorm.DB, productID uint, quantity int) (*productModel.Product, error) {
	args := m.Called(tx, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productModel.Product), args.Error(1)
}

func TestCreatePurchase(t *testing.T) {
	t.Run("records purchase and restocks in one transaction", func(t *testing.T) {
		db, dbMock := newTestDB(t)
		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		mockRepo := new(MockPurchaseRepository)
		mockInventory := new(MockInventoryRepository)
		svc := NewPurchaseService(db, mockRepo, mockInventory)

		unitCost := decimal.RequireFromString("2.50")
		mockInventory.On("ReceivePurchase", mock.Anything, uint(1), 20, unitCost).
			Return(&productModel.Product{BaseModel: baseModel.BaseModel{ID: 1}, Stock: 30}, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Purchase")).Return(nil)

		purchase, err := svc.CreatePurchase(1, 20, unitCost, "周末备货")

		assert.NoError(t, err)
		assert.Equal(t, uint(1), purchase.ProductID)
		assert.Equal(t, 20, purchase.Quantity)
		mockRepo.AssertExpectations(t)
		mockInventory.AssertExpectations(t)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("rolls back record when restock fails", func(t *testing.T) {
		db, dbMock := newTestDB(t)
		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		mockRepo := new(MockPurchaseRepository)
		mockInventory := new(MockInventoryRepository)
		svc := NewPurchaseService(db, mockRepo, mockInventory)

		unitCost := decimal.RequireFromString("2.50")
		mockInventory.On("ReceivePurchase", mock.Anything, uint(1), 20, unitCost).
			Return(nil, productRepo.ErrProductNotFound)

		_, err := svc.CreatePurchase(1, 20, unitCost, "")

		assert.ErrorIs(t, err, productRepo.ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRemovePurchase(t *testing.T) {
	t.Run("reverses stock then deletes record", func(t *testing.T) {
		db, dbMock := newTestDB(t)
		dbMock.ExpectBegin()
		dbMock.ExpectCommit()

		mockRepo := new(MockPurchaseRepository)
		mockInventory := new(MockInventoryRepository)
		svc := NewPurchaseService(db, mockRepo, mockInventory)

		purchase := &model.Purchase{
			BaseModel: baseModel.BaseModel{ID: 9},
			ProductID: 1,
			Quantity:  20,
		}
		mockRepo.On("GetByID", uint(9)).Return(purchase, nil)
		mockInventory.On("RemovePurchase", mock.Anything, uint(1), 20).
			Return(&productModel.Product{BaseModel: baseModel.BaseModel{ID: 1}, Stock: 10}, nil)
		mockRepo.On("Delete", mock.Anything, purchase).Return(nil)

		assert.NoError(t, svc.RemovePurchase(9))
		mockRepo.AssertExpectations(t)
		mockInventory.AssertExpectations(t)
	})

	t.Run("keeps record when sold stock blocks reversal", func(t *testing.T) {
		db, dbMock := newTestDB(t)
		dbMock.ExpectBegin()
		dbMock.ExpectRollback()

		mockRepo := new(MockPurchaseRepository)
		mockInventory := new(MockInventoryRepository)
		svc := NewPurchaseService(db, mockRepo, mockInventory)

		purchase := &model.Purchase{
			BaseModel: baseModel.BaseModel{ID: 9},
			ProductID: 1,
			Quantity:  20,
		}
		mockRepo.On("GetByID", uint(9)).Return(purchase, nil)
		mockInventory.On("RemovePurchase", mock.Anything, uint(1), 20).
			Return(nil, &productRepo.InsufficientAvailableError{ProductID: 1, Available: 5, Requested: 20})

		err := svc.RemovePurchase(9)

		var insufficient *productRepo.InsufficientAvailableError
		assert.ErrorAs(t, err, &insufficient)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
