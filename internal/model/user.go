package model

import "time"

// User 用户表 — 对应 users
type User struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// 基本信息
	QQID     int64   `gorm:"column:qq_id;not null;uniqueIndex:uk_users_qq_id" json:"qq_id"`
	Nickname string  `gorm:"type:varchar(50);not null"                        json:"nickname"`
	MCName   *string `gorm:"column:mc_name;type:varchar(50);uniqueIndex:uk_users_mc_name" json:"mc_name"`

	// 敏感信息
	RealName    string  `gorm:"type:varchar(20);not null"                             json:"real_name"`
	StudentID   string  `gorm:"type:varchar(20);not null;uniqueIndex:uk_users_student_id" json:"student_id"`
	CollegeEnum College `gorm:"type:varchar(20);not null"                             json:"college_enum"`
	CollegeName string  `gorm:"type:varchar(50);not null"                             json:"college_name"`
	Major       *string `gorm:"type:varchar(50)"                                      json:"major"`
	Grade       *int    `json:"grade"`
	ClassIndex  *int    `json:"class_index"`

	// 任职信息
	Departments []Department `gorm:"many2many:user_departments;" json:"departments"`
	Level       UserLevel    `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"level"`

	// 会话信息，token 与 update_at 总是成对写入、成对清空
	PasswordHash string     `gorm:"type:varchar(255);not null"                    json:"-"`
	Token        *string    `gorm:"type:varchar(64);uniqueIndex:uk_users_token"   json:"-"`
	UpdateAt     *time.Time `gorm:"column:update_at"                              json:"-"`

	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
