package model

// Department 部门表 — 对应 departments
type Department struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"                         json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:uk_departments_name" json:"name"`
	Code string `gorm:"type:varchar(20);not null;uniqueIndex:uk_departments_code" json:"code"`
	BaseModel
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
