package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/HMODeveloper/hmo-mms/internal/dto"
	"github.com/HMODeveloper/hmo-mms/internal/service"
	"github.com/HMODeveloper/hmo-mms/pkg/response"
)

// ProfileHandler 个人信息模块 HTTP 处理器
type ProfileHandler struct {
	profileSvc service.ProfileService
}

// NewProfileHandler 创建 ProfileHandler
func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// Get 获取个人信息
// GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	user, ok := MustGetCurrentUser(c)
	if !ok {
		return
	}

	result, err := h.profileSvc.Get(c.Request.Context(), user)
	if err != nil {
		response.FailWith(c, err)
		return
	}
	response.OK(c, result)
}

// Update 修改个人信息
// PUT /api/profile/update
func (h *ProfileHandler) Update(c *gin.Context) {
	user, ok := MustGetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.profileSvc.Update(c.Request.Context(), user, &req); err != nil {
		response.FailWith(c, err)
		return
	}
	response.Message(c, "修改成功.")
}

// ChangePassword 修改密码
// PUT /api/profile/change_password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	user, ok := MustGetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.profileSvc.ChangePassword(c.Request.Context(), user, &req); err != nil {
		response.FailWith(c, err)
		return
	}
	response.Message(c, "密码修改成功.")
}
