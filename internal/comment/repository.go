package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository 是评论子集合的持久化接口
type Repository interface {
	// List 返回一个条目下的全部评论，按时间从旧到新排序
	List(ctx context.Context, entryID string) ([]Comment, error)
	// Create 在条目下追加一条评论，ID和时间戳由存储分配并回填到c中
	Create(ctx context.Context, c *Comment) error
}

// sortKeyLayout 保证字典序与时间顺序一致
const sortKeyLayout = "20060102T150405.000000000Z"

func assignIdentity(c *Comment) error {
	if c.CommentID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("无法生成评论ID: %w", err)
		}
		c.CommentID = id.String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	c.SortKey = c.CreatedAt.UTC().Format(sortKeyLayout) + "#" + c.CommentID
	return nil
}

// GormRepository 基于GORM的实现
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository 创建一个基于GORM的评论仓库
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Migrate 自动迁移数据库表结构
func (r *GormRepository) Migrate() error {
	if err := r.db.AutoMigrate(&Comment{}); err != nil {
		return fmt.Errorf("无法迁移评论表: %w", err)
	}
	return nil
}

func (r *GormRepository) List(ctx context.Context, entryID string) ([]Comment, error) {
	var comments []Comment
	err := r.db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Order("created_at asc").Order("seq asc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取条目 %s 的评论: %w", entryID, err)
	}
	return comments, nil
}

func (r *GormRepository) Create(ctx context.Context, c *Comment) error {
	if err := assignIdentity(c); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("无法写入评论: %w", err)
	}
	return nil
}
