package repository

import (
	"errors"

	"bbq_ordering/internal/domain/product/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository 库存台账
// 四个操作都必须跑在调用方的事务里，因此统一接收事务句柄
// 行锁粒度是单个商品，不同商品之间互不阻塞
type InventoryRepository interface {
	// Reserve 下单占用库存：校验可售数量后增加 sold_quantity
	Reserve(tx *gorm.DB, productID uint, quantity int) (*model.Product, error)
	// Release 取消订单归还库存：减少 sold_quantity
	Release(tx *gorm.DB, productID uint, quantity int) (*model.Product, error)
	// ReceivePurchase 进货入库：增加 stock 并覆盖成本价（最近进价口径）
	ReceivePurchase(tx *gorm.DB, productID uint, quantity int, unitCost decimal.Decimal) (*model.Product, error)
	// RemovePurchase 采购冲销：仅当未售出部分足够时减少 stock
	RemovePurchase(tx *gorm.DB, productID uint, quantity int) (*model.Product, error)
}

type inventoryRepository struct{}

func NewInventoryRepository() InventoryRepository {
	return &inventoryRepository{}
}

// lockProduct 行级写锁读取商品，等价于 SELECT ... FOR UPDATE
func lockProduct(tx *gorm.DB, productID uint) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *inventoryRepository) Reserve(tx *gorm.DB, productID uint, quantity int) (*model.Product, error) {
	product, err := lockProduct(tx, productID)
	if err != nil {
		return nil, err
	}

	if product.Available() < quantity {
		return nil, &InsufficientStockError{
			ProductID: product.ID,
			Name:      product.Name,
			Available: product.Available(),
			Requested: quantity,
		}
	}

	product.SoldQuantity += quantity
	if err := tx.Model(product).Update("sold_quantity", product.SoldQuantity).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *inventoryRepository) Release(tx *gorm.DB, productID uint, quantity int) (*model.Product, error) {
	product, err := lockProduct(tx, productID)
	if err != nil {
		return nil, err
	}

	// 调用方保证只归还自己占用过的数量，这里兜底不减成负数
	product.SoldQuantity -= quantity
	if product.SoldQuantity < 0 {
		product.SoldQuantity = 0
	}
	if err := tx.Model(product).Update("sold_quantity", product.SoldQuantity).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *inventoryRepository) ReceivePurchase(tx *gorm.DB, productID uint, quantity int, unitCost decimal.Decimal) (*model.Product, error) {
	product, err := lockProduct(tx, productID)
	if err != nil {
		return nil, err
	}

	product.Stock += quantity
	product.CostPrice = unitCost
	err = tx.Model(product).Updates(map[string]interface{}{
		"stock":      product.Stock,
		"cost_price": product.CostPrice,
	}).Error
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *inventoryRepository) RemovePurchase(tx *gorm.DB, productID uint, quantity int) (*model.Product, error) {
	product, err := lockProduct(tx, productID)
	if err != nil {
		return nil, err
	}

	if product.Available() < quantity {
		return nil, &InsufficientAvailableError{
			ProductID: product.ID,
			Name:      product.Name,
			Available: product.Available(),
			Requested: quantity,
		}
	}

	product.Stock -= quantity
	if err := tx.Model(product).Update("stock", product.Stock).Error; err != nil {
		return nil, err
	}
	return product, nil
}
