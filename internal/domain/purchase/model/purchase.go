package model

import (
	productModel "bbq_ordering/internal/domain/product/model"
	baseModel "bbq_ordering/pkg/model"

	"github.com/shopspring/decimal"
)

// Purchase 进货记录
// 创建时同步增加商品库存并覆盖成本价，删除时冲销未售出的库存
type Purchase struct {
	baseModel.BaseModel
	ProductID uint            `gorm:"column:product_id;index;not null" json:"productId"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitCost  decimal.Decimal `gorm:"column:unit_cost;type:decimal(10,2);not null" json:"unitCost"`
	Remark    string          `gorm:"type:varchar(255)" json:"remark"`

	Product *productModel.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Purchase) TableName() string {
	return "purchase"
}
