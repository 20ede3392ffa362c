package health

import (
	"context"
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/platform/database"
	"github.com/SlpAus/keluhkesah-backend/pkg/lifecycle"
	"go.uber.org/zap"
)

const (
	// CheckInterval 是后台健康检查的间隔
	CheckInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// Pinger 检查存储后端是否可达
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc 让普通函数满足 Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// PerformCheck 执行一次健康检查，并把结果写入全局状态
func PerformCheck(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := p.Ping(ctx)
	database.UpdateStatus(err == nil, err)
	return err
}

// Run 周期性地执行健康检查，直到句柄收到停机信号。
// 应当作为 lifecycle 服务运行。
func Run(h *lifecycle.Handle, p Pinger, interval time.Duration) {
	zap.L().Info("存储健康检查器已启动", zap.Duration("interval", interval))
	for {
		if err := h.Sleep(interval); err != nil {
			zap.L().Info("存储健康检查器已停止")
			return
		}
		_ = PerformCheck(h.Ctx(), p)
	}
}
