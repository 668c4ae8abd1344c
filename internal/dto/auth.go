package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	QQID     int64  `json:"QQID"     binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录成功响应，token 通过 Cookie 下发
type LoginResponse struct {
	QQID     int64   `json:"QQID"`
	MCName   *string `json:"MCName"`
	Nickname string  `json:"nickname"`
}

// ── 注册模块 DTO ──

// SignUpRequest 注册请求
type SignUpRequest struct {
	QQID        int64   `json:"QQID"         binding:"required,gt=0"`
	Nickname    string  `json:"nickname"     binding:"required,max=50"`
	Password    string  `json:"password"     binding:"required,max=72"`
	MCName      *string `json:"mc_name"      binding:"omitempty,max=50"`
	RealName    string  `json:"real_name"    binding:"required,max=20"`
	StudentID   string  `json:"student_id"   binding:"required,max=20"`
	CollegeName string  `json:"college_name" binding:"required,max=50"`
	Major       *string `json:"major"        binding:"omitempty,max=50"`
	Grade       *int    `json:"grade"`
	ClassIndex  *int    `json:"class_index"`
}

// CheckQQRequest QQ 号占用检查参数
type CheckQQRequest struct {
	QQID int64 `form:"qq_id" binding:"required"`
}

// CheckQQResponse QQ 号可用响应
type CheckQQResponse struct {
	QQID int64 `json:"QQID"`
}

// CollegeInfo 学院目录项
type CollegeInfo struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// SignUpInfoResponse 注册页可选项
type SignUpInfoResponse struct {
	Colleges    []CollegeInfo    `json:"colleges"`
	Departments []DepartmentInfo `json:"departments"`
}
