package lifecycle

import (
	"context"
	"time"
)

// Handle 是分发给每个后台服务的生命周期控制器。
type Handle struct {
	ctx context.Context
	// Close 通知Manager服务已经退出，应当在服务的goroutine中 defer 调用。重复调用是安全的。
	Close func()
}

// Ctx 返回句柄的ctx，停机时被取消
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done 在收到停机信号时关闭
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err 返回ctx被取消的原因
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep 休眠指定时长，收到停机信号时提前返回错误。
// 后台循环都应该用它来等待下一轮。
func (h *Handle) Sleep(d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-h.Done():
		return h.Err()
	case <-timer.C:
		return nil
	}
}
