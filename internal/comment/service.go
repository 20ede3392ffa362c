package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultName 是评论者名字留空时使用的名字
	DefaultName = "Anonymous"
	// MaxNameLength 是评论者名字的最大字符数
	MaxNameLength = 30
	// MaxBodyLength 是评论正文的最大字符数
	MaxBodyLength = 200
)

var (
	// ErrInvalidInput 表示提交的评论内容不合法
	ErrInvalidInput = errors.New("输入不合法")
	// ErrEntryNotFound 表示评论所属的条目不存在
	ErrEntryNotFound = errors.New("条目不存在")
)

// EntryChecker 用于确认评论所属的条目存在
type EntryChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Service 封装评论相关的业务规则
type Service struct {
	repo    Repository
	entries EntryChecker
}

// NewService 创建评论服务
func NewService(repo Repository, entries EntryChecker) *Service {
	return &Service{repo: repo, entries: entries}
}

// NormalizeSubmission 校验并规范化一次评论提交
func NormalizeSubmission(name, body string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", "", fmt.Errorf("%w: 名字不能超过%d个字符", ErrInvalidInput, MaxNameLength)
	}
	if strings.TrimSpace(body) == "" {
		return "", "", fmt.Errorf("%w: 评论不能为空", ErrInvalidInput)
	}
	if utf8.RuneCountInString(body) > MaxBodyLength {
		return "", "", fmt.Errorf("%w: 评论不能超过%d个字符", ErrInvalidInput, MaxBodyLength)
	}
	return name, body, nil
}

func (s *Service) ensureEntry(ctx context.Context, entryID string) error {
	ok, err := s.entries.Exists(ctx, entryID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEntryNotFound
	}
	return nil
}

// List 返回条目下的全部评论，按时间从旧到新
func (s *Service) List(ctx context.Context, entryID string) ([]Comment, error) {
	if err := s.ensureEntry(ctx, entryID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, entryID)
}

// Create 校验评论并追加到条目下
func (s *Service) Create(ctx context.Context, entryID, name, body string) (*Comment, error) {
	name, body, err := NormalizeSubmission(name, body)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEntry(ctx, entryID); err != nil {
		return nil, err
	}
	c := &Comment{EntryID: entryID, Name: name, Body: body}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
