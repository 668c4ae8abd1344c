package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HMODeveloper/hmo-mms/config"
	"github.com/HMODeveloper/hmo-mms/internal/model"
	"github.com/HMODeveloper/hmo-mms/internal/permission"
	"github.com/HMODeveloper/hmo-mms/internal/service"
	apperrors "github.com/HMODeveloper/hmo-mms/pkg/errors"
	"github.com/HMODeveloper/hmo-mms/pkg/response"
)

// CurrentUserKey 已认证用户在 gin.Context 中的键
const CurrentUserKey = "current_user"

// 文档页面，无需认证
var docPaths = map[string]bool{
	"/docs":         true,
	"/openapi.json": true,
	"/redoc":        true,
}

// 公开接口，无需认证
var publicPaths = map[string]bool{
	"/api/login":           true,
	"/api/signup":          true,
	"/api/signup/info":     true,
	"/api/signup/check_qq": true,
}

// isExempt 文档页面、非 /api 路径与公开接口跳过会话校验
func isExempt(path string) bool {
	if docPaths[path] {
		return true
	}
	if path != "/api" && !strings.HasPrefix(path, "/api/") {
		return true
	}
	return publicPaths[path]
}

// SessionAuth 会话认证中间件
// 从 Cookie 读取 token，校验会话有效期并滑动续期，成功后将用户注入上下文
func SessionAuth(cfg config.AuthConfig, authSvc service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cfg.Cookie.Name)

		// 免登录模式：尽力解析用户，不做过期检查也不续期
		if cfg.NoLogin {
			if token != "" {
				if user, err := authSvc.Resolve(c.Request.Context(), token); err == nil {
					c.Set(CurrentUserKey, user)
				}
			}
			c.Next()
			return
		}

		if isExempt(c.Request.URL.Path) {
			c.Next()
			return
		}

		user, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !apperrors.IsAuthFailure(err) {
				logger.Error("会话校验失败", zap.String("path", c.Request.URL.Path), zap.Error(err))
			}
			response.AbortWith(c, err)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// RequireLevel 级别权限中间件，须位于 SessionAuth 之后
func RequireLevel(levels ...model.UserLevel) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get(CurrentUserKey)
		user, _ := v.(*model.User)
		if user == nil {
			response.AbortWith(c, service.ErrNoToken)
			return
		}

		if !permission.HasPermission(user, levels...) {
			response.AbortWith(c, service.ErrPermissionDenied)
			return
		}

		c.Next()
	}
}
