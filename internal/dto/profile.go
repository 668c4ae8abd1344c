package dto

import "time"

// ── 个人信息模块 DTO ──

// DepartmentInfo 部门简要信息
type DepartmentInfo struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// MemberInfo 成员信息，个人信息页与成员搜索共用
// 敏感字段在搜索结果中可能被脱敏：字符串替换为 "***"，数值与专业置空
type MemberInfo struct {
	QQID        int64            `json:"QQID"`
	MCName      *string          `json:"MCName"`
	Nickname    string           `json:"nickname"`
	CreateAt    time.Time        `json:"createAt"`
	RealName    string           `json:"realName"`
	StudentID   string           `json:"studentID"`
	CollegeName string           `json:"collegeName"`
	Major       *string          `json:"major"`
	Grade       *int             `json:"grade"`
	ClassIndex  *int             `json:"classIndex"`
	Departments []DepartmentInfo `json:"departments"`
	Level       string           `json:"level"`
	LevelCode   string           `json:"levelCode"`
}

// UpdateProfileRequest 修改个人信息请求
// 字段缺省表示不修改；必填字段显式传空字符串视为校验失败
type UpdateProfileRequest struct {
	MCName      *string `json:"MCName"      binding:"omitempty,max=50"`
	Nickname    *string `json:"nickname"    binding:"omitempty,max=50"`
	RealName    *string `json:"realName"    binding:"omitempty,max=20"`
	StudentID   *string `json:"studentID"   binding:"omitempty,max=20"`
	CollegeName *string `json:"collegeName" binding:"omitempty,max=50"`
	Major       *string `json:"major"       binding:"omitempty,max=50"`
	Grade       *int    `json:"grade"`
	ClassIndex  *int    `json:"classIndex"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,max=72"`
}
