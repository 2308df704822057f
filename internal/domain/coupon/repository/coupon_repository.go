package repository

import (
	"errors"

	"bbq_ordering/internal/domain/coupon/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCouponNotFound     = errors.New("coupon not found")
	ErrUserCouponNotFound = errors.New("user coupon not found")
)

type CouponRepository interface {
	Create(coupon *model.Coupon) error
	Update(coupon *model.Coupon) error
	Deactivate(id uint) error
	GetByID(id uint) (*model.Coupon, error)
	// ListActive 固定按 id 升序，抽奖概率区间依赖稳定顺序
	ListActive() ([]model.Coupon, error)
	List(offset, limit int) ([]model.Coupon, int64, error)

	CreateUserCoupon(userCoupon *model.UserCoupon) error
	ListUserCoupons(userID uint) ([]model.UserCoupon, error)
	// LockUserCoupon 行锁取用户券，核销/恢复的查改必须原子
	LockUserCoupon(tx *gorm.DB, userID, couponID uint, used bool) (*model.UserCoupon, error)
	SetUserCouponUsed(tx *gorm.DB, id uint, used bool) error
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *model.Coupon) error {
	return r.db.Create(coupon).Error
}

func (r *couponRepository) Update(coupon *model.Coupon) error {
	return r.db.Save(coupon).Error
}

func (r *couponRepository) Deactivate(id uint) error {
	result := r.db.Model(&model.Coupon{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCouponNotFound
	}
	return nil
}

func (r *couponRepository) GetByID(id uint) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) ListActive() ([]model.Coupon, error) {
	var coupons []model.Coupon
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&coupons).Error
	return coupons, err
}

func (r *couponRepository) List(offset, limit int) ([]model.Coupon, int64, error) {
	query := r.db.Model(&model.Coupon{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var coupons []model.Coupon
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&coupons).Error
	if err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

func (r *couponRepository) CreateUserCoupon(userCoupon *model.UserCoupon) error {
	return r.db.Create(userCoupon).Error
}

func (r *couponRepository) ListUserCoupons(userID uint) ([]model.UserCoupon, error) {
	var userCoupons []model.UserCoupon
	err := r.db.Preload("Coupon").
		Joins("JOIN coupon ON coupon.id = user_coupon.coupon_id AND coupon.is_active = ?", true).
		Where("user_coupon.user_id = ?", userID).
		Order("user_coupon.created_at DESC").
		Find(&userCoupons).Error
	return userCoupons, err
}

func (r *couponRepository) LockUserCoupon(tx *gorm.DB, userID, couponID uint, used bool) (*model.UserCoupon, error) {
	var userCoupon model.UserCoupon
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND coupon_id = ? AND is_used = ?", userID, couponID, used).
		Order("id ASC").
		First(&userCoupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserCouponNotFound
		}
		return nil, err
	}
	return &userCoupon, nil
}

func (r *couponRepository) SetUserCouponUsed(tx *gorm.DB, id uint, used bool) error {
	return tx.Model(&model.UserCoupon{}).Where("id = ?", id).Update("is_used", used).Error
}
