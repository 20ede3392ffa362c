package board

import (
	"context"

	"github.com/SlpAus/keluhkesah-backend/internal/comment"
	"github.com/SlpAus/keluhkesah-backend/internal/entry"
	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
)

// Store 是Board消费的持久化存储。集合名和排序方式由实现固定：
// 条目按时间从新到旧，评论按时间从旧到新。
type Store interface {
	ListEntries(ctx context.Context) ([]entry.Entry, error)
	CreateEntry(ctx context.Context, name, message string) (string, error)
	// UpdateEntryField 把单个计数器设为value，不是原子自增
	UpdateEntryField(ctx context.Context, entryID string, k reaction.Kind, value int) error
	ListComments(ctx context.Context, entryID string) ([]comment.Comment, error)
	CreateComment(ctx context.Context, entryID, name, body string) (string, error)
}

// ServiceStore 让Board直接使用服务层，不经过HTTP
type ServiceStore struct {
	Entries  *entry.Service
	Comments *comment.Service
}

func (s ServiceStore) ListEntries(ctx context.Context) ([]entry.Entry, error) {
	return s.Entries.List(ctx)
}

func (s ServiceStore) CreateEntry(ctx context.Context, name, message string) (string, error) {
	e, err := s.Entries.Create(ctx, name, message)
	if err != nil {
		return "", err
	}
	return e.EntryID, nil
}

func (s ServiceStore) UpdateEntryField(ctx context.Context, entryID string, k reaction.Kind, value int) error {
	return s.Entries.SetReactionCount(ctx, entryID, k, value)
}

func (s ServiceStore) ListComments(ctx context.Context, entryID string) ([]comment.Comment, error) {
	return s.Comments.List(ctx, entryID)
}

func (s ServiceStore) CreateComment(ctx context.Context, entryID, name, body string) (string, error) {
	c, err := s.Comments.Create(ctx, entryID, name, body)
	if err != nil {
		return "", err
	}
	return c.CommentID, nil
}
