package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SlpAus/keluhkesah-backend/api"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/config"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/health"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/logger"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/shutdown"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/startup"
	"github.com/SlpAus/keluhkesah-backend/pkg/lifecycle"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置并初始化日志
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	if err := logger.Init(cfg.Log.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 2. 初始化存储
	backend, err := startup.InitializeBackend(context.Background(), cfg.Database, cfg.Log.Env)
	if err != nil {
		zap.L().Fatal("存储初始化失败，无法启动", zap.Error(err))
	}

	// 3. 阻塞式执行一次启动后健康检查
	if err := health.PerformCheck(context.Background(), backend.Ping); err != nil {
		zap.L().Warn("启动后健康检查失败，服务将以不可用状态启动", zap.Error(err))
	}

	// 4. 后台持续健康检查
	services := lifecycle.NewManager("services")
	if err := services.Go("health-checker", func(h *lifecycle.Handle) {
		health.Run(h, backend.Ping, health.CheckInterval)
	}); err != nil {
		zap.L().Fatal("无法启动健康检查器", zap.Error(err))
	}

	gin.SetMode(cfg.Server.Mode)
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: api.NewRouter(cfg.Server, backend.Entries, backend.Comments),
	}

	go func() {
		zap.L().Info("服务器已准备就绪，开始监听", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	coordinator := shutdown.NewCoordinator(services, shutdown.Closer{Name: "database", Close: backend.Close})
	coordinator.ListenForSignalsAndShutdown(server)
}
