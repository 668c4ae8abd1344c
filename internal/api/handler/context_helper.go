package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/HMODeveloper/hmo-mms/internal/api/middleware"
	"github.com/HMODeveloper/hmo-mms/internal/model"
	"github.com/HMODeveloper/hmo-mms/internal/service"
	"github.com/HMODeveloper/hmo-mms/pkg/response"
)

// MustGetCurrentUser 从 Gin 上下文中安全提取当前用户。
// 会话中间件未注入用户时（如免登录模式下未携带 token）写入 401 响应并返回 false，
// 调用方应在 ok=false 时直接 return。
func MustGetCurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(middleware.CurrentUserKey)
	if !exists {
		response.FailWith(c, service.ErrNoToken)
		return nil, false
	}
	user, ok := v.(*model.User)
	if !ok || user == nil {
		response.FailWith(c, service.ErrNoToken)
		return nil, false
	}
	return user, true
}
