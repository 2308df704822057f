package model

import (
	baseModel "bbq_ordering/pkg/model"
)

// 用户角色
const (
	RoleCustomer = "customer" // 顾客（手机端点餐）
	RoleBusiness = "business" // 商家（管理后台）
)

// User 用户模型
type User struct {
	baseModel.BaseModel
	Username string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:varchar(64);not null" json:"-"` // md5 hex
	Role     string `gorm:"type:varchar(20);not null" json:"role"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
}

func (User) TableName() string {
	return "user"
}
