package comment

import "time"

// SubCollection 是评论子集合的名字
const SubCollection = "comments"

// Comment 定义了条目下一条评论的数据结构。评论写入后不可修改。
type Comment struct {
	Seq uint `gorm:"primaryKey;autoIncrement" json:"-" dynamodbav:"-"`

	// CommentID 是存储分配的不透明ID，作用域在所属条目之下
	CommentID string `gorm:"uniqueIndex;not null;type:varchar(36)" json:"id" dynamodbav:"id"`

	// EntryID 是所属条目的ID
	EntryID string `gorm:"index:idx_comment_entry_time,priority:1;not null;type:varchar(36)" json:"-" dynamodbav:"entryId"`

	Name string `gorm:"type:varchar(30)" json:"name" dynamodbav:"name"`
	Body string `gorm:"column:comment;type:text;not null" json:"comment" dynamodbav:"comment"`

	CreatedAt time.Time `gorm:"index:idx_comment_entry_time,priority:2" json:"timestamp" dynamodbav:"timestamp"`

	// SortKey 仅用于DynamoDB: 时间戳加ID，保证同一条目下的评论按时间升序
	SortKey string `gorm:"-" json:"-" dynamodbav:"sk"`
}

// TableName 指定GORM使用的表名
func (Comment) TableName() string {
	return "keluhkesah_" + SubCollection
}
