package service

import (
	"errors"
	"math/rand"

	"bbq_ordering/internal/domain/coupon/model"
	"bbq_ordering/internal/domain/coupon/repository"
	"bbq_ordering/pkg/metrics"

	"github.com/shopspring/decimal"
)

var ErrNoCouponsAvailable = errors.New("no coupons available")

// DrawableCoupon 转盘展示用的精简结构
type DrawableCoupon struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Probability decimal.Decimal `json:"probability"`
}

type CouponService interface {
	CreateCoupon(coupon *model.Coupon) error
	UpdateCoupon(coupon *model.Coupon) error
	RemoveCoupon(id uint) error
	GetCoupon(id uint) (*model.Coupon, error)
	ListCoupons(page, pageSize int) ([]model.Coupon, int64, error)

	// Draw 按概率权重抽一张券发给用户
	Draw(userID uint) (*model.UserCoupon, error)
	ListUserCoupons(userID uint) ([]model.UserCoupon, error)
	ListDrawable() ([]DrawableCoupon, error)
}

type couponService struct {
	repo repository.CouponRepository
	// 抽奖随机源，测试时替换为固定值
	roll func() float64
}

func NewCouponService(repo repository.CouponRepository) CouponService {
	return &couponService{
		repo: repo,
		roll: func() float64 { return rand.Float64() * 100 },
	}
}

func (s *couponService) CreateCoupon(coupon *model.Coupon) error {
	coupon.IsActive = true
	return s.repo.Create(coupon)
}

func (s *couponService) UpdateCoupon(coupon *model.Coupon) error {
	return s.repo.Update(coupon)
}

func (s *couponService) RemoveCoupon(id uint) error {
	// 已发放到用户手里的券不受影响，只是停止继续发放
	return s.repo.Deactivate(id)
}

func (s *couponService) GetCoupon(id uint) (*model.Coupon, error) {
	return s.repo.GetByID(id)
}

func (s *couponService) ListCoupons(page, pageSize int) ([]model.Coupon, int64, error) {
	offset := (page - 1) * pageSize
	return s.repo.List(offset, pageSize)
}

// pickCoupon 概率区间选择
// 权重总和不足 100 且随机值落在区间外时兜底选最后一张：
// 只要存在可用券就必定中奖，这是有意的产品策略而非缺陷
func pickCoupon(coupons []model.Coupon, roll float64) *model.Coupon {
	if len(coupons) == 0 {
		return nil
	}

	accumulated := 0.0
	for i := range coupons {
		accumulated += coupons[i].Probability.InexactFloat64()
		if roll <= accumulated {
			return &coupons[i]
		}
	}
	return &coupons[len(coupons)-1]
}

func (s *couponService) Draw(userID uint) (*model.UserCoupon, error) {
	coupons, err := s.repo.ListActive()
	if err != nil {
		return nil, err
	}
	if len(coupons) == 0 {
		return nil, ErrNoCouponsAvailable
	}

	selected := pickCoupon(coupons, s.roll())

	userCoupon := &model.UserCoupon{
		UserID:   userID,
		CouponID: selected.ID,
		IsUsed:   false,
	}
	if err := s.repo.CreateUserCoupon(userCoupon); err != nil {
		return nil, err
	}
	userCoupon.Coupon = selected

	metrics.CouponDrawsTotal.Inc()
	return userCoupon, nil
}

func (s *couponService) ListUserCoupons(userID uint) ([]model.UserCoupon, error) {
	return s.repo.ListUserCoupons(userID)
}

func (s *couponService) ListDrawable() ([]DrawableCoupon, error) {
	coupons, err := s.repo.ListActive()
	if err != nil {
		return nil, err
	}

	drawable := make([]DrawableCoupon, 0, len(coupons))
	for _, c := range coupons {
		drawable = append(drawable, DrawableCoupon{
			ID:          c.ID,
			Name:        c.Name,
			Probability: c.Probability,
		})
	}
	return drawable, nil
}
