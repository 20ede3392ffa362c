package database

import (
	"sync"

	"go.uber.org/zap"
)

// statusManager 负责线程安全地管理和提供存储后端的健康状态。
type statusManager struct {
	mu        sync.RWMutex
	isHealthy bool
	lastError string
}

// 全局的状态管理器实例
var globalStatus = &statusManager{
	isHealthy: true, // 默认启动时是健康的
}

// IsHealthy 返回当前存储后端的健康状态。
func IsHealthy() bool {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.isHealthy
}

// LastError 返回最近一次健康检查失败的原因，健康时为空。
func LastError() string {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.lastError
}

// UpdateStatus 用于线程安全地更新健康状态。
func UpdateStatus(isHealthy bool, cause error) {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()

	// 只有当状态发生变化时才打印日志
	if globalStatus.isHealthy != isHealthy {
		globalStatus.isHealthy = isHealthy
		if isHealthy {
			zap.L().Info("健康检查: 存储服务状态已更新为 [可用]")
		} else {
			zap.L().Warn("健康检查警告: 存储服务状态已更新为 [不可用]", zap.Error(cause))
		}
	}

	if isHealthy || cause == nil {
		globalStatus.lastError = ""
	} else {
		globalStatus.lastError = cause.Error()
	}
}
