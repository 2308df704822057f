package repository

import (
	"errors"
	"time"

	"bbq_ordering/internal/domain/purchase/model"

	"gorm.io/gorm"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

// PurchaseFilter 进货记录筛选
type PurchaseFilter struct {
	ProductID uint
	StartTime *time.Time
	EndTime   *time.Time
}

type PurchaseRepository interface {
	Create(tx *gorm.DB, purchase *model.Purchase) error
	Delete(tx *gorm.DB, purchase *model.Purchase) error
	GetByID(id uint) (*model.Purchase, error)
	List(filter PurchaseFilter, offset, limit int) ([]model.Purchase, int64, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Create(purchase).Error
}

func (r *purchaseRepository) Delete(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Delete(purchase).Error
}

func (r *purchaseRepository) GetByID(id uint) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := r.db.First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) List(filter PurchaseFilter, offset, limit int) ([]model.Purchase, int64, error) {
	query := r.db.Model(&model.Purchase{})

	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.StartTime != nil && filter.EndTime != nil {
		query = query.Where("created_at BETWEEN ? AND ?", filter.StartTime, filter.EndTime)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var purchases []model.Purchase
	err := query.Preload("Product").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&purchases).Error
	if err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}
