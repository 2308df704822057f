package model

import (
	baseModel "bbq_ordering/pkg/model"

	"github.com/shopspring/decimal"
)

// 商品上下架状态
const (
	StatusOn  = "on"
	StatusOff = "off"
)

// Category 商品分类
type Category struct {
	baseModel.BaseModel
	Name string `gorm:"type:varchar(50);not null" json:"name"`
	Sort int    `gorm:"default:0" json:"sort"`
}

func (Category) TableName() string {
	return "category"
}

// Product 商品模型
// Stock 为历史累计进货量，SoldQuantity 为未取消订单占用量
// 可售数量 = Stock - SoldQuantity
type Product struct {
	baseModel.BaseModel
	Name         string          `gorm:"type:varchar(100);not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"costPrice"` // 最近一次进货单价
	Stock        int             `gorm:"default:0" json:"stock"`
	SoldQuantity int             `gorm:"column:sold_quantity;default:0" json:"soldQuantity"`
	Image        string          `gorm:"type:varchar(255)" json:"image"`
	Status       string          `gorm:"type:varchar(10);default:'on'" json:"status"`
	IsHot        bool            `gorm:"column:is_hot;default:false" json:"isHot"`
	CategoryID   uint            `gorm:"column:category_id;index" json:"categoryId"`
}

func (Product) TableName() string {
	return "product"
}

// Available 可售数量
func (p *Product) Available() int {
	return p.Stock - p.SoldQuantity
}
