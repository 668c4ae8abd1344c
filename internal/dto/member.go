package dto

import "time"

// ── 成员搜索模块 DTO ──

const (
	defaultPageIndex = 1
	defaultPageSize  = 5
)

// SearchRequest 成员搜索请求
// 所有条件均可选；colleges、departments、levels 传入对应目录的 code
type SearchRequest struct {
	GlobalQuery   *string    `json:"globalQuery"   binding:"omitempty,max=100"`
	CreateAtStart *time.Time `json:"createAtStart"`
	CreateAtEnd   *time.Time `json:"createAtEnd"`
	Colleges      []string   `json:"colleges"`
	Departments   []string   `json:"departments"`
	Levels        []string   `json:"levels"`
	PageSize      int        `json:"pageSize"      binding:"omitempty,min=1,max=100"`
	PageIndex     int        `json:"pageIndex"     binding:"omitempty,min=1"`
}

// GetPageIndex 获取页码（含默认值）
func (r *SearchRequest) GetPageIndex() int {
	if r.PageIndex <= 0 {
		return defaultPageIndex
	}
	return r.PageIndex
}

// GetPageSize 获取每页数量（含默认值）
func (r *SearchRequest) GetPageSize() int {
	if r.PageSize <= 0 {
		return defaultPageSize
	}
	return r.PageSize
}

// GetOffset 计算偏移量
func (r *SearchRequest) GetOffset() int {
	return (r.GetPageIndex() - 1) * r.GetPageSize()
}

// MemberListResponse 成员搜索响应
// Total 为当前页的记录数，而非满足条件的总记录数
type MemberListResponse struct {
	Members []MemberInfo `json:"members"`
	Total   int          `json:"total"`
}

// UserLevelInfo 权限级别目录项
type UserLevelInfo struct {
	Level string `json:"level"`
	Code  string `json:"code"`
}

// SearchInfoResponse 搜索筛选项目录
type SearchInfoResponse struct {
	Colleges    []CollegeInfo    `json:"colleges"`
	Departments []DepartmentInfo `json:"departments"`
	Levels      []UserLevelInfo  `json:"levels"`
}
