package service

import (
	"testing"

	couponModel "bbq_ordering/internal/domain/coupon/model"
	orderModel "bbq_ordering/internal/domain/order/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(price string, quantity int) orderModel.OrderItem {
	return orderModel.OrderItem{Price: d(price), Quantity: quantity}
}

func items(entries ...orderModel.OrderItem) []orderModel.OrderItem {
	return entries
}

func TestQuote(t *testing.T) {
	t.Run("no coupon", func(t *testing.T) {
		b, err := Quote(items(item("15.50", 2), item("8.00", 3)), nil)

		assert.NoError(t, err)
		assert.True(t, b.Original.Equal(d("55.00")), "original %s", b.Original)
		assert.True(t, b.Discount.IsZero())
		assert.True(t, b.Final.Equal(d("55.00")))
	})

	t.Run("amount coupon", func(t *testing.T) {
		coupon := &couponModel.Coupon{
			Type:  couponModel.TypeAmount,
			Value: d("10"),
		}

		b, err := Quote(items(item("25.00", 2)), coupon)

		assert.NoError(t, err)
		assert.True(t, b.Original.Equal(d("50.00")))
		assert.True(t, b.Discount.Equal(d("10")))
		assert.True(t, b.Final.Equal(d("40.00")))
	})

	t.Run("percentage coupon charges value percent", func(t *testing.T) {
		coupon := &couponModel.Coupon{
			Type:  couponModel.TypePercentage,
			Value: d("80"),
		}

		b, err := Quote(items(item("50.00", 2)), coupon)

		assert.NoError(t, err)
		assert.True(t, b.Final.Equal(d("80.00")), "final %s", b.Final)
		assert.True(t, b.Discount.Equal(d("20.00")), "discount %s", b.Discount)
	})

	t.Run("percentage rounds to cents", func(t *testing.T) {
		coupon := &couponModel.Coupon{
			Type:  couponModel.TypePercentage,
			Value: d("85"),
		}

		b, err := Quote(items(item("9.99", 1)), coupon)

		assert.NoError(t, err)
		// 9.99 * 0.85 = 8.4915 -> 8.49
		assert.True(t, b.Final.Equal(d("8.49")), "final %s", b.Final)
		assert.True(t, b.Discount.Equal(d("1.50")), "discount %s", b.Discount)
	})

	t.Run("oversized amount coupon clamps at zero", func(t *testing.T) {
		coupon := &couponModel.Coupon{
			Type:  couponModel.TypeAmount,
			Value: d("100"),
		}

		b, err := Quote(items(item("30.00", 1)), coupon)

		assert.NoError(t, err)
		assert.True(t, b.Final.IsZero(), "final %s", b.Final)
		assert.True(t, b.Discount.Equal(d("30.00")))
	})

	t.Run("below min amount", func(t *testing.T) {
		coupon := &couponModel.Coupon{
			Type:      couponModel.TypeAmount,
			Value:     d("10"),
			MinAmount: d("100"),
		}

		b, err := Quote(items(item("30.00", 1)), coupon)

		assert.ErrorIs(t, err, ErrCouponNotEligible)
		assert.True(t, b.Original.Equal(d("30.00")))
	})

	t.Run("min amount boundary is inclusive", func(t *testing.T) {
		coupon := &couponModel.Coupon{
			Type:      couponModel.TypeAmount,
			Value:     d("10"),
			MinAmount: d("30"),
		}

		_, err := Quote(items(item("30.00", 1)), coupon)

		assert.NoError(t, err)
	})
}
