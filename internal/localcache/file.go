package localcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File 把一个浏览器配置(profile)的全部数据保存在一个JSON文件中
// 文件内容是 { key: value } 形式的对象，写入时先写临时文件再原子替换
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile 创建一个基于文件的缓存，dir 不存在时会被创建
func NewFile(dir, profile string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("无法创建本地缓存目录: %w", err)
	}
	return &File{path: filepath.Join(dir, profile+".json")}, nil
}

// Path 返回缓存文件的路径
func (f *File) Path() string {
	return f.path
}

func (f *File) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法读取本地缓存文件: %w", err)
	}
	doc := map[string]json.RawMessage{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("本地缓存文件已损坏: %w", err)
	}
	return doc, nil
}

func (f *File) store(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("无法序列化本地缓存: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".localcache-*")
	if err != nil {
		return fmt.Errorf("无法创建临时文件: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("无法写入临时文件: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("无法写入临时文件: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("无法替换本地缓存文件: %w", err)
	}
	return nil
}

func (f *File) Get(_ context.Context, key string, dst any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return false, err
	}
	raw, ok := doc[key]
	if !ok {
		return false, nil
	}
	return true, decode(key, raw, dst)
}

func (f *File) Set(_ context.Context, key string, v any) error {
	data, err := encode(key, v)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	doc[key] = data
	return f.store(doc)
}

func (f *File) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("无法删除本地缓存文件: %w", err)
	}
	return nil
}
