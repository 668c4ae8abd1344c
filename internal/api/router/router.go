package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HMODeveloper/hmo-mms/config"
	"github.com/HMODeveloper/hmo-mms/internal/api/handler"
	"github.com/HMODeveloper/hmo-mms/internal/api/middleware"
	"github.com/HMODeveloper/hmo-mms/internal/model"
	"github.com/HMODeveloper/hmo-mms/internal/service"
	"github.com/HMODeveloper/hmo-mms/pkg/redis"
	"github.com/HMODeveloper/hmo-mms/pkg/response"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil，此时公开写接口不限流
func Setup(cfg *config.Config, h *handler.Handler, authSvc service.AuthService, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("请求处理 panic",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		response.InternalError(c)
		c.Abort()
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	if len(cfg.Server.CORS.AllowOrigins) > 0 {
		r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	}
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(middleware.SessionAuth(cfg.Auth, authSvc, logger))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "NOT_FOUND", "接口不存在")
	})

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limit := middleware.RateLimit(rdb, cfg.Auth.RateLimit.Limit, cfg.Auth.RateLimit.Window, logger)

	api := r.Group("/api")
	{
		// 认证模块
		api.POST("/login", limit, h.Auth.Login)
		api.GET("/logout", h.Auth.Logout)

		// 注册模块（公开）
		signup := api.Group("/signup")
		{
			signup.GET("/info", h.SignUp.Info)
			signup.GET("/check_qq", h.SignUp.CheckQQ)
			signup.POST("", limit, h.SignUp.SignUp)
		}

		// 个人信息模块
		profile := api.Group("/profile")
		{
			profile.GET("", h.Profile.Get)
			profile.PUT("/update", h.Profile.Update)
			profile.PUT("/change_password", h.Profile.ChangePassword)
		}

		// 成员模块
		member := api.Group("/member")
		{
			member.GET("/info", h.Member.Info)
			member.POST("/search", h.Member.Search)
			member.POST("/export", middleware.RequireLevel(model.LevelAdmin), h.Member.Export)
		}
	}

	return r
}
