package entry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound 表示条目不存在
var ErrNotFound = errors.New("条目不存在")

// Repository 是条目集合的持久化接口
type Repository interface {
	// List 返回全部条目，按创建时间从新到旧排序，不分页
	List(ctx context.Context) ([]Entry, error)
	// Create 写入一条新条目，ID和时间戳由存储分配并回填到e中
	Create(ctx context.Context, e *Entry) error
	// SetCount 将单个计数器字段设为value。这是"设置"而非"自增"。
	SetCount(ctx context.Context, id string, k reaction.Kind, value int) error
	// Exists 检查条目是否存在
	Exists(ctx context.Context, id string) (bool, error)
}

// assignIdentity 为新条目分配ID和时间戳
func assignIdentity(e *Entry) error {
	if e.EntryID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("无法生成条目ID: %w", err)
		}
		e.EntryID = id.String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return nil
}

// GormRepository 基于GORM的实现，支持SQLite和PostgreSQL
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository 创建一个基于GORM的仓库
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Migrate 自动迁移数据库表结构
// 新增的计数器列在旧行上为NULL，这正是"字段不存在"的语义
func (r *GormRepository) Migrate() error {
	if err := r.db.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("无法迁移%s表: %w", Collection, err)
	}
	return nil
}

func (r *GormRepository) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).Order("created_at desc").Order("seq desc").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取条目列表: %w", err)
	}
	return entries, nil
}

func (r *GormRepository) Create(ctx context.Context, e *Entry) error {
	if err := assignIdentity(e); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("无法写入条目: %w", err)
	}
	return nil
}

func (r *GormRepository) SetCount(ctx context.Context, id string, k reaction.Kind, value int) error {
	if !k.Valid() {
		return fmt.Errorf("无效的反应类型: %d", int(k))
	}
	res := r.db.WithContext(ctx).Model(&Entry{}).Where("entry_id = ?", id).Update(k.Column(), value)
	if res.Error != nil {
		return fmt.Errorf("无法更新条目 %s 的 %s: %w", id, k.Field(), res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Entry{}).Where("entry_id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("无法查询条目 %s: %w", id, err)
	}
	return count > 0, nil
}
