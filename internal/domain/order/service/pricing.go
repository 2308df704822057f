package service

import (
	couponModel "bbq_ordering/internal/domain/coupon/model"
	orderModel "bbq_ordering/internal/domain/order/model"

	"github.com/shopspring/decimal"
)

// Breakdown 价格拆解
type Breakdown struct {
	Original decimal.Decimal `json:"originalAmount"`
	Discount decimal.Decimal `json:"discountAmount"`
	Final    decimal.Decimal `json:"finalAmount"`
}

var hundred = decimal.NewFromInt(100)

// Quote 按订单项快照价和可选优惠券计算应付金额
// 纯函数：不读库不落库，预览和下单共用同一套口径
// 不满足门槛返回 ErrCouponNotEligible，由调用方决定是报错还是忽略券
func Quote(items []orderModel.OrderItem, coupon *couponModel.Coupon) (Breakdown, error) {
	original := decimal.Zero
	for _, item := range items {
		original = original.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	b := Breakdown{Original: original, Discount: decimal.Zero, Final: original}
	if coupon == nil {
		return b, nil
	}

	if original.LessThan(coupon.MinAmount) {
		return b, ErrCouponNotEligible
	}

	switch coupon.Type {
	case couponModel.TypePercentage:
		// value=80 表示按 80% 收款
		final := original.Mul(coupon.Value).Div(hundred).Round(2)
		b.Discount = original.Sub(final)
		b.Final = final
	default:
		b.Discount = coupon.Value
		b.Final = original.Sub(coupon.Value)
	}

	// 大额券减穿订单时按 0 元收款，不产生负数金额
	if b.Final.IsNegative() {
		b.Discount = b.Original
		b.Final = decimal.Zero
	}
	return b, nil
}
