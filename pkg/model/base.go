package model

import (
	"time"
)

// BaseModel 基础模型，自增整型主键 + 时间戳
// 与线上库表结构保持一致，不使用软删除
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}
