package model

import (
	baseModel "bbq_ordering/pkg/model"

	"github.com/shopspring/decimal"
)

// 优惠券类型
const (
	TypeAmount     = "amount"     // 固定金额减免
	TypePercentage = "percentage" // 按比例收款，value=80 表示用户付 80%
)

// Coupon 优惠券模板
// 模板可重复发放，抽券不扣减任何库存，只读概率表
type Coupon struct {
	baseModel.BaseModel
	Code        string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Type        string          `gorm:"type:varchar(20);not null" json:"type"`
	Value       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	MinAmount   decimal.Decimal `gorm:"column:min_amount;type:decimal(10,2);default:0" json:"minAmount"`
	Probability decimal.Decimal `gorm:"type:decimal(5,2);default:100" json:"probability"` // 抽中权重 0-100
	IsActive    bool            `gorm:"column:is_active;default:true" json:"isActive"`
}

func (Coupon) TableName() string {
	return "coupon"
}

// UserCoupon 用户持有的优惠券
// 下单核销时置为已使用，订单取消时翻回未使用
type UserCoupon struct {
	baseModel.BaseModel
	UserID   uint `gorm:"column:user_id;index;not null" json:"userId"`
	CouponID uint `gorm:"column:coupon_id;index;not null" json:"couponId"`
	IsUsed   bool `gorm:"column:is_used;default:false" json:"isUsed"`

	Coupon *Coupon `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
}

func (UserCoupon) TableName() string {
	return "user_coupon"
}
