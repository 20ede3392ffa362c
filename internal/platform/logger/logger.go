package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init 初始化全局 Logger
// env: "dev" 或 "prod"，由配置文件的 log.env 传入
func Init(env string) error {
	var cfg zap.Config

	if env == "dev" {
		// 开发模式：控制台输出，人类可读格式，Debug 级别
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		// 生产模式：JSON 输出，Info 级别
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}

	// 替换全局的 zap logger，这样在其他地方可以直接用 zap.L()
	zap.ReplaceGlobals(logger)
	return nil
}

// Sync 刷新缓冲区中的日志，应在进程退出前调用
func Sync() {
	_ = zap.L().Sync()
}
