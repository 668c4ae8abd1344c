package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HMODeveloper/hmo-mms/config"
	"github.com/HMODeveloper/hmo-mms/internal/api/middleware"
	"github.com/HMODeveloper/hmo-mms/internal/service"
	"github.com/HMODeveloper/hmo-mms/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	SignUp  *SignUpHandler
	Profile *ProfileHandler
	Member  *MemberHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth, cfg.Auth.Cookie),
		SignUp:  NewSignUpHandler(svc.SignUp),
		Profile: NewProfileHandler(svc.Profile),
		Member:  NewMemberHandler(svc.Member),
	}
}

// bindFailed 写出参数绑定失败响应
func bindFailed(c *gin.Context, err error) {
	if middleware.IsBodyTooLarge(err) {
		response.Error(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "请求体过大")
		return
	}
	response.BadRequest(c, "VALIDATION", "参数校验失败")
}

// bindOptionalJSON 请求体为空时保留零值
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
