package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/platform/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// newGormLogger 按运行环境构造GORM日志器，生产环境下保持静默
func newGormLogger(env string) logger.Interface {
	level := logger.Warn
	if env != "dev" {
		level = logger.Silent
	}
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  env == "dev",
		},
	)
}

// Open 根据配置打开一个GORM连接，不修改全局变量
func Open(cfg config.DatabaseConfig, env string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSqlite:
		dialector = sqlite.Open(cfg.Sqlite.Path)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.Postgres.DSN)
	default:
		return nil, fmt.Errorf("驱动 %q 不是SQL数据库", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(env),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	return db, nil
}

// InitDB 初始化全局数据库连接
func InitDB(cfg config.DatabaseConfig, env string) error {
	db, err := Open(cfg, env)
	if err != nil {
		return err
	}
	DB = db
	zap.L().Info("数据库连接成功", zap.String("driver", cfg.Driver))
	return nil
}
