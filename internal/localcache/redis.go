package localcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix 是每个浏览器配置在Redis中的Hash键前缀
// Key: localcache:<profile>，Field: 逻辑键，Value: JSON
const redisKeyPrefix = "localcache:"

// Redis 把一个浏览器配置的数据保存在一个Redis Hash中，
// 同一台机器上的多个客户端进程可以借此共享同一个"浏览器"
type Redis struct {
	rdb *redis.Client
	key string
}

// NewRedis 创建一个基于Redis的缓存
func NewRedis(rdb *redis.Client, profile string) *Redis {
	return &Redis{rdb: rdb, key: redisKeyPrefix + profile}
}

func (r *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.rdb.HGet(ctx, r.key, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("无法从Redis读取本地缓存 %s: %w", key, err)
	}
	return true, decode(key, data, dst)
}

func (r *Redis) Set(ctx context.Context, key string, v any) error {
	data, err := encode(key, v)
	if err != nil {
		return err
	}
	if err := r.rdb.HSet(ctx, r.key, key, data).Err(); err != nil {
		return fmt.Errorf("无法写入Redis本地缓存 %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("无法清空Redis本地缓存: %w", err)
	}
	return nil
}
