package service

import (
	productRepo "bbq_ordering/internal/domain/product/repository"
	"bbq_ordering/internal/domain/purchase/model"
	"bbq_ordering/internal/domain/purchase/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseService interface {
	// CreatePurchase 进货：记录 + 入库 + 覆盖成本价，一个事务
	CreatePurchase(productID uint, quantity int, unitCost decimal.Decimal, remark string) (*model.Purchase, error)
	// RemovePurchase 删除进货记录并冲销库存，已售出部分不允许冲销
	RemovePurchase(id uint) error
	ListPurchases(filter repository.PurchaseFilter, page, pageSize int) ([]model.Purchase, int64, error)
}

type purchaseService struct {
	db        *gorm.DB
	repo      repository.PurchaseRepository
	inventory productRepo.InventoryRepository
}

func NewPurchaseService(db *gorm.DB, repo repository.PurchaseRepository, inventory productRepo.InventoryRepository) PurchaseService {
	return &purchaseService{db: db, repo: repo, inventory: inventory}
}

func (s *purchaseService) CreatePurchase(productID uint, quantity int, unitCost decimal.Decimal, remark string) (*model.Purchase, error) {
	purchase := &model.Purchase{
		ProductID: productID,
		Quantity:  quantity,
		UnitCost:  unitCost,
		Remark:    remark,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 先锁商品行再写记录，失败整体回滚
		if _, err := s.inventory.ReceivePurchase(tx, productID, quantity, unitCost); err != nil {
			return err
		}
		return s.repo.Create(tx, purchase)
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *purchaseService) RemovePurchase(id uint) error {
	purchase, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.inventory.RemovePurchase(tx, purchase.ProductID, purchase.Quantity); err != nil {
			return err
		}
		return s.repo.Delete(tx, purchase)
	})
}

func (s *purchaseService) ListPurchases(filter repository.PurchaseFilter, page, pageSize int) ([]model.Purchase, int64, error) {
	offset := (page - 1) * pageSize
	return s.repo.List(filter, offset, pageSize)
}
