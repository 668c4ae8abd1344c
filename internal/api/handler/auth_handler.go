package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HMODeveloper/hmo-mms/config"
	"github.com/HMODeveloper/hmo-mms/internal/dto"
	"github.com/HMODeveloper/hmo-mms/internal/service"
	"github.com/HMODeveloper/hmo-mms/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cookie  config.CookieConfig
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cookie: cookie}
}

// Login 用户登录
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	token, result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.FailWith(c, err)
		return
	}

	h.setTokenCookie(c, token, int(h.cookie.MaxAge.Seconds()))
	response.OK(c, result)
}

// Logout 用户注销
// GET /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := MustGetCurrentUser(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), user); err != nil {
		response.FailWith(c, err)
		return
	}

	h.setTokenCookie(c, "", -1)
	response.Message(c, "注销成功")
}

// setTokenCookie 写入或清除（maxAge < 0）会话 Cookie
func (h *AuthHandler) setTokenCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(parseSameSite(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, value, maxAge, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteDefaultMode
	}
}
