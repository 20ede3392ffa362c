package entry

import (
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
)

// Collection 是条目所在的集合名，同时也是SQL表名
const Collection = "keluhkesah"

// Entry 定义了一条keluh kesah在存储中的数据结构
// 七个反应计数器都可以为空：旧条目在新增某个反应之前就已写入，读到的是"字段不存在"
type Entry struct {
	// Seq 是内部自增主键，只用于保证插入顺序，不对外暴露
	Seq uint `gorm:"primaryKey;autoIncrement" json:"-" dynamodbav:"-"`

	// EntryID 是存储分配的不透明ID (UUIDv7)
	EntryID string `gorm:"uniqueIndex;not null;type:varchar(36)" json:"id" dynamodbav:"id"`

	Name    string `gorm:"type:varchar(50)" json:"name" dynamodbav:"name"`
	Message string `gorm:"type:text;not null" json:"message" dynamodbav:"message"`

	// CreatedAt 由存储在插入时赋值
	CreatedAt time.Time `gorm:"index" json:"timestamp" dynamodbav:"timestamp"`

	RelatableCount *int `gorm:"column:relatable_count" json:"relatableCount,omitempty" dynamodbav:"relatableCount,omitempty"`
	DeepCount      *int `gorm:"column:deep_count" json:"deepCount,omitempty" dynamodbav:"deepCount,omitempty"`
	HugsCount      *int `gorm:"column:hugs_count" json:"hugsCount,omitempty" dynamodbav:"hugsCount,omitempty"`
	LaughCount     *int `gorm:"column:laugh_count" json:"laughCount,omitempty" dynamodbav:"laughCount,omitempty"`
	SadCount       *int `gorm:"column:sad_count" json:"sadCount,omitempty" dynamodbav:"sadCount,omitempty"`
	ThumbUpCount   *int `gorm:"column:thumb_up_count" json:"thumbUpCount,omitempty" dynamodbav:"thumbUpCount,omitempty"`
	HugEmojiCount  *int `gorm:"column:hug_emoji_count" json:"hugEmojiCount,omitempty" dynamodbav:"hugEmojiCount,omitempty"`
}

// TableName 指定GORM使用的表名
func (Entry) TableName() string {
	return Collection
}

// counter 返回指定反应对应的字段指针
func (e *Entry) counter(k reaction.Kind) **int {
	switch k {
	case reaction.Relatable:
		return &e.RelatableCount
	case reaction.Deep:
		return &e.DeepCount
	case reaction.Hugs:
		return &e.HugsCount
	case reaction.Laugh:
		return &e.LaughCount
	case reaction.Sad:
		return &e.SadCount
	case reaction.ThumbUp:
		return &e.ThumbUpCount
	case reaction.HugEmoji:
		return &e.HugEmojiCount
	}
	return nil
}

// Count 返回指定反应的计数，以及该字段是否存在
func (e *Entry) Count(k reaction.Kind) (int, bool) {
	field := e.counter(k)
	if field == nil || *field == nil {
		return 0, false
	}
	return **field, true
}

// SetCount 写入指定反应的计数
func (e *Entry) SetCount(k reaction.Kind, n int) {
	if field := e.counter(k); field != nil {
		v := n
		*field = &v
	}
}

// Counts 返回全部计数，不存在的字段按0处理
func (e *Entry) Counts() reaction.Counts {
	var counts reaction.Counts
	for _, k := range reaction.All {
		n, _ := e.Count(k)
		counts.Set(k, n)
	}
	return counts
}
