package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null"       json:"updated_at"`
}

// All 返回需要建表的全部模型，供 SQLite AutoMigrate 使用
func All() []interface{} {
	return []interface{}{&Department{}, &User{}}
}
