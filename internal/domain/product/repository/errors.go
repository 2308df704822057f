package repository

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError 可售数量不足，带上商品信息方便直接提示用户
type InsufficientStockError struct {
	ProductID uint
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q (id=%d): available %d, requested %d",
		e.Name, e.ProductID, e.Available, e.Requested)
}

// InsufficientAvailableError 采购冲销时库存已被售出
type InsufficientAvailableError struct {
	ProductID uint
	Name      string
	Available int
	Requested int
}

func (e *InsufficientAvailableError) Error() string {
	return fmt.Sprintf("cannot remove %d units of product %q (id=%d): only %d unsold",
		e.Requested, e.Name, e.ProductID, e.Available)
}
