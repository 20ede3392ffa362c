package database

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 2 * time.Second

// NewRedis 创建一个Redis客户端，并使用Ping命令来测试连接是否成功
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("无法连接到Redis: %w", err)
	}
	return rdb, nil
}
