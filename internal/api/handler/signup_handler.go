package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/HMODeveloper/hmo-mms/internal/dto"
	"github.com/HMODeveloper/hmo-mms/internal/service"
	"github.com/HMODeveloper/hmo-mms/pkg/response"
)

// SignUpHandler 注册模块 HTTP 处理器
type SignUpHandler struct {
	signUpSvc service.SignUpService
}

// NewSignUpHandler 创建 SignUpHandler
func NewSignUpHandler(signUpSvc service.SignUpService) *SignUpHandler {
	return &SignUpHandler{signUpSvc: signUpSvc}
}

// Info 注册页可选项
// GET /api/signup/info
func (h *SignUpHandler) Info(c *gin.Context) {
	result, err := h.signUpSvc.Info(c.Request.Context())
	if err != nil {
		response.FailWith(c, err)
		return
	}
	response.OK(c, result)
}

// CheckQQ 检查 QQ 号是否已注册
// GET /api/signup/check_qq?qq_id=
func (h *SignUpHandler) CheckQQ(c *gin.Context) {
	var req dto.CheckQQRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.signUpSvc.CheckQQ(c.Request.Context(), req.QQID); err != nil {
		response.FailWith(c, err)
		return
	}
	response.OK(c, dto.CheckQQResponse{QQID: req.QQID})
}

// SignUp 注册
// POST /api/signup
func (h *SignUpHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	if err := h.signUpSvc.SignUp(c.Request.Context(), &req); err != nil {
		response.FailWith(c, err)
		return
	}
	response.Created(c, "注册成功")
}
