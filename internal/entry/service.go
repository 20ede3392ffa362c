package entry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
)

const (
	// DefaultName 是名字留空时使用的占位名
	DefaultName = "Anonymous"
	// MaxNameLength 是名字的最大字符数
	MaxNameLength = 50
	// MaxMessageLength 是消息正文的最大字符数
	MaxMessageLength = 500
)

// ErrInvalidInput 表示提交的表单内容不合法
var ErrInvalidInput = errors.New("输入不合法")

// Service 封装条目相关的业务规则
type Service struct {
	repo Repository
}

// NewService 创建条目服务
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NormalizeSubmission 校验并规范化一次表单提交，返回最终写入的名字和消息
func NormalizeSubmission(name, message string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", "", fmt.Errorf("%w: 名字不能超过%d个字符", ErrInvalidInput, MaxNameLength)
	}
	if strings.TrimSpace(message) == "" {
		return "", "", fmt.Errorf("%w: 消息不能为空", ErrInvalidInput)
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return "", "", fmt.Errorf("%w: 消息不能超过%d个字符", ErrInvalidInput, MaxMessageLength)
	}
	return name, message, nil
}

// List 返回全部条目，按时间从新到旧
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}

// Create 校验表单并写入新条目
func (s *Service) Create(ctx context.Context, name, message string) (*Entry, error) {
	name, message, err := NormalizeSubmission(name, message)
	if err != nil {
		return nil, err
	}
	e := &Entry{Name: name, Message: message}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// SetReactionCount 将某个反应计数设为count
// 服务端不做投票校验，也不做原子自增，只拒绝负数
func (s *Service) SetReactionCount(ctx context.Context, id string, k reaction.Kind, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: 计数不能为负数", ErrInvalidInput)
	}
	return s.repo.SetCount(ctx, id, k, count)
}

// Exists 检查条目是否存在
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}
