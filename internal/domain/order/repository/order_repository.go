package repository

import (
	"errors"
	"time"

	"bbq_ordering/internal/domain/order/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrStatusConflict 带状态条件的更新没有命中任何行，说明并发方先改了状态
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// BusinessFilter 商家侧订单筛选
type BusinessFilter struct {
	Status    model.Status
	StartTime *time.Time
	EndTime   *time.Time
}

type OrderRepository interface {
	// Create 订单与订单项一并写入
	Create(tx *gorm.DB, order *model.Order) error
	GetByID(id uint) (*model.Order, error)
	// LockForUser 行锁读取用户自己的订单（含订单项），他人订单等同不存在
	LockForUser(tx *gorm.DB, id, userID uint) (*model.Order, error)
	// Lock 行锁读取订单（含订单项），商家侧操作用
	Lock(tx *gorm.DB, id uint) (*model.Order, error)
	// UpdateStatusGuarded 以当前状态为条件的单行更新，0 行命中返回 ErrStatusConflict
	UpdateStatusGuarded(tx *gorm.DB, id uint, from, to model.Status) error
	ListByUser(userID uint, offset, limit int) ([]model.Order, int64, error)
	ListForBusiness(filter BusinessFilter, offset, limit int) ([]model.Order, int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) LockForUser(tx *gorm.DB, id, userID uint) (*model.Order, error) {
	var order model.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := tx.Where("order_id = ?", order.ID).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Lock(tx *gorm.DB, id uint) (*model.Order, error) {
	var order model.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := tx.Where("order_id = ?", order.ID).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateStatusGuarded(tx *gorm.DB, id uint, from, to model.Status) error {
	result := tx.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *orderRepository) ListByUser(userID uint, offset, limit int) ([]model.Order, int64, error) {
	query := r.db.Model(&model.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := r.db.Preload("Items").Preload("Items.Product").Preload("Coupon").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) ListForBusiness(filter BusinessFilter, offset, limit int) ([]model.Order, int64, error) {
	applyFilter := func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.StartTime != nil {
			db = db.Where("created_at >= ?", filter.StartTime)
		}
		if filter.EndTime != nil {
			db = db.Where("created_at <= ?", filter.EndTime)
		}
		return db
	}

	var total int64
	if err := applyFilter(r.db.Model(&model.Order{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := applyFilter(r.db.Preload("Items").Preload("Items.Product").Preload("Coupon").Preload("User")).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
