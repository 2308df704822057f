package model

import (
	couponModel "bbq_ordering/internal/domain/coupon/model"
	productModel "bbq_ordering/internal/domain/product/model"
	userModel "bbq_ordering/internal/domain/user/model"
	baseModel "bbq_ordering/pkg/model"

	"github.com/shopspring/decimal"
)

// Status 订单状态
type Status string

const (
	StatusPending    Status = "pending"    // 待处理
	StatusProcessing Status = "processing" // 制作中
	StatusCompleted  Status = "completed"  // 已完成
	StatusCancelled  Status = "cancelled"  // 已取消
)

// 配送方式
const (
	DeliverySelf     = "self"     // 到店自取
	DeliveryDelivery = "delivery" // 外送
)

// statusTransitions 状态机迁移表
// 显式表驱动，新增状态时只改这里
var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted},
}

// CanTransition 判断状态迁移是否合法
func CanTransition(from, to Status) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal 终态判断
func (s Status) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// Valid 状态值是否合法
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order 订单
// 金额字段创建后不再重算，价格快照保存在订单项里
type Order struct {
	baseModel.BaseModel
	OrderNo        string          `gorm:"column:order_no;uniqueIndex;not null" json:"orderNo"`
	UserID         uint            `gorm:"column:user_id;index;not null" json:"userId"`
	Status         Status          `gorm:"type:varchar(20);default:'pending'" json:"status"`
	OriginalAmount decimal.Decimal `gorm:"column:original_amount;type:decimal(10,2);not null" json:"originalAmount"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:decimal(10,2);not null" json:"discountAmount"`
	FinalAmount    decimal.Decimal `gorm:"column:final_amount;type:decimal(10,2);not null" json:"finalAmount"`
	CouponID       *uint           `gorm:"column:coupon_id" json:"couponId,omitempty"`
	Remark         string          `gorm:"type:varchar(255)" json:"remark"`
	DeliveryType   string          `gorm:"column:delivery_type;type:varchar(20);not null" json:"deliveryType"`
	Address        string          `gorm:"type:varchar(255)" json:"address"`

	Items  []OrderItem         `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Coupon *couponModel.Coupon `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
	User   *userModel.User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Order) TableName() string {
	return "order"
}

// OrderItem 订单项，Price 为下单时的商品单价快照
type OrderItem struct {
	baseModel.BaseModel
	OrderID   uint            `gorm:"column:order_id;index;not null" json:"orderId"`
	ProductID uint            `gorm:"column:product_id;not null" json:"productId"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	Product *productModel.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_item"
}
