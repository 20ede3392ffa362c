package localcache

import (
	"context"
	"sync"
)

// Memory 是进程内的实现，主要用于测试
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

// NewMemory 创建一个空的内存缓存
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	data, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, decode(key, data, dst)
}

func (m *Memory) Set(_ context.Context, key string, v any) error {
	data, err := encode(key, v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	m.sets++
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

// Raw 返回key对应的原始JSON，测试用
func (m *Memory) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	return string(data), ok
}

// Writes 返回 Set 被调用的次数
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}
