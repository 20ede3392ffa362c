package shutdown

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlpAus/keluhkesah-backend/pkg/lifecycle"
	"go.uber.org/zap"
)

// 各阶段的等待上限
var (
	HTTPTimeout     = 15 * time.Second
	ServicesTimeout = 10 * time.Second
)

// Closer 是停机最后一步需要释放的资源
type Closer struct {
	Name  string
	Close func() error
}

// Coordinator 负责编排应用程序的优雅停机流程。
type Coordinator struct {
	Services *lifecycle.Manager
	Closers  []Closer
}

// NewCoordinator 创建一个新的停机协调器
func NewCoordinator(services *lifecycle.Manager, closers ...Closer) *Coordinator {
	return &Coordinator{Services: services, Closers: closers}
}

// ListenForSignalsAndShutdown 阻塞直到收到 SIGINT/SIGTERM，然后执行停机流程
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	sig := <-sigChan
	zap.L().Info("收到关闭信号，开始优雅停机", zap.Stringer("signal", sig))
	c.Shutdown(server)
}

// Shutdown 按顺序停机：
// 先关闭HTTP服务器让进行中的请求完成，再停止后台服务，最后释放连接
func (c *Coordinator) Shutdown(server *http.Server) {
	// 1. HTTP服务器
	ctx, cancel := context.WithTimeout(context.Background(), HTTPTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.L().Error("HTTP服务器关闭错误", zap.Error(err))
	} else {
		zap.L().Info("HTTP服务器已关闭")
	}

	// 2. 后台服务
	c.Services.Shutdown()
	if remaining := c.Services.WaitWithTimeout(ServicesTimeout); len(remaining) > 0 {
		zap.L().Warn("部分后台服务未在限定时间内退出", zap.Strings("services", remaining))
	} else {
		zap.L().Info("所有后台服务已关闭")
	}

	// 3. 连接
	for _, closer := range c.Closers {
		if err := closer.Close(); err != nil {
			zap.L().Error("释放资源失败", zap.String("resource", closer.Name), zap.Error(err))
		}
	}

	zap.L().Info("优雅停机完成")
}
