package router

import (
	"github.com/gin-gonic/gin"

	"github.com/user/moviebot/internal/handler"
	"github.com/user/moviebot/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", h.Health)

	// ==================== 微信入口 ====================
	// 同一路径：GET 用于接入校验，POST 接收消息
	r.GET("/", h.WechatVerify)
	r.POST("/", h.WechatMessage)

	// ==================== 管理接口 ====================
	r.POST("/admin/login", h.AdminLogin)

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/trending", h.AdminTrending)
	}
}
