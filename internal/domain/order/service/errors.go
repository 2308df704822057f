package service

import (
	"errors"
	"fmt"

	"bbq_ordering/internal/domain/order/model"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyItems    = errors.New("order must contain at least one item")
	// ErrConflict 并发冲突（订单号撞号或状态被抢先修改），调用方可重试
	ErrConflict = errors.New("order conflict, please retry")

	ErrCouponNotHeld     = errors.New("coupon not held by user or already used")
	ErrCouponNotEligible = errors.New("order amount below coupon threshold")
)

// InvalidQuantityError 订单项数量非法
type InvalidQuantityError struct {
	ProductID uint
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %d", e.Quantity, e.ProductID)
}

// InvalidTransitionError 非法的订单状态迁移
type InvalidTransitionError struct {
	From model.Status
	To   model.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}
