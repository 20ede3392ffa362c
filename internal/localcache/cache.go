// Package localcache 是浏览器本地存储的替身：一个按"浏览器"隔离、
// 以字符串为键、值可JSON序列化的小型键值存储。它只在本地保存，从不跨设备同步。
package localcache

import (
	"context"
	"encoding/json"
	"fmt"
)

// 两个逻辑键
const (
	KeyVotedReactions   = "votedReactions"
	KeyExpandedComments = "expandedComments"
)

// Cache 是本地缓存的接口
type Cache interface {
	// Get 读取key对应的值并反序列化到dst；key不存在时返回 false, nil
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set 序列化v并写入key
	Set(ctx context.Context, key string, v any) error
	// Clear 清空这个浏览器的全部本地数据
	Clear(ctx context.Context) error
}

func encode(key string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("无法序列化本地缓存 %s: %w", key, err)
	}
	return data, nil
}

func decode(key string, data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("无法解析本地缓存 %s: %w", key, err)
	}
	return nil
}
