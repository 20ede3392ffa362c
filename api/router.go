package api

import (
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/comment"
	"github.com/SlpAus/keluhkesah-backend/internal/entry"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/config"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/health"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter 创建gin引擎并挂载中间件和全部路由
func NewRouter(cfg config.ServerConfig, entries *entry.Service, comments *comment.Service) *gin.Engine {
	r := gin.New()
	r.Use(logger.GinMiddleware(), gin.Recovery())
	corsCfg := cors.Config{
		AllowOrigins:  cfg.Cors.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	// 没有配置来源时放开全部来源
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	SetupRoutes(r, entries, comments)
	return r
}

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, entries *entry.Service, comments *comment.Service) {
	api := router.Group("/api")
	{
		api.GET("/health", health.Handler)

		// 条目及其评论子集合 /api/entries
		entryRoutes := api.Group("/entries", health.RequireHealthy())
		{
			entry.NewHandler(entries).RegisterRoutes(entryRoutes)
			comment.NewHandler(comments).RegisterRoutes(entryRoutes)
		}
	}
}
