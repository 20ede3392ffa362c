package board

import (
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/comment"
	"github.com/SlpAus/keluhkesah-backend/internal/entry"
	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
)

// timestampLayout 是时间戳的展示格式
const timestampLayout = "02/01/2006 15:04:05"

// FormatTimestamp 把存储分配的时间戳转换为本地时间的展示字符串，零值返回空串
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(timestampLayout)
}

// Entry 是内存中的条目状态，计数器已归一化
type Entry struct {
	ID        string
	Name      string
	Message   string
	Timestamp time.Time
	Counts    reaction.Counts
}

func fromRecord(rec entry.Entry) Entry {
	return Entry{
		ID:        rec.EntryID,
		Name:      rec.Name,
		Message:   rec.Message,
		Timestamp: rec.CreatedAt,
		Counts:    rec.Counts(),
	}
}

// Comment 是内存中缓存的一条评论
type Comment struct {
	ID        string
	Name      string
	Body      string
	Timestamp time.Time
}

// DisplayTime 返回评论时间的展示字符串
func (c Comment) DisplayTime() string {
	return FormatTimestamp(c.Timestamp)
}

func fromComments(recs []comment.Comment) []Comment {
	comments := make([]Comment, 0, len(recs))
	for _, rec := range recs {
		comments = append(comments, Comment{
			ID:        rec.CommentID,
			Name:      rec.Name,
			Body:      rec.Body,
			Timestamp: rec.CreatedAt,
		})
	}
	return comments
}

// Draft 是评论表单里尚未提交的内容
type Draft struct {
	Name string
	Text string
}

// VoteRecord 记录这个浏览器给哪些 (条目, 反应) 投过票
type VoteRecord map[string]map[reaction.Kind]bool

// Has 报告是否已经投过
func (r VoteRecord) Has(entryID string, k reaction.Kind) bool {
	return r[entryID][k]
}

// Mark 记录一次投票
func (r VoteRecord) Mark(entryID string, k reaction.Kind) {
	kinds, ok := r[entryID]
	if !ok {
		kinds = make(map[reaction.Kind]bool)
		r[entryID] = kinds
	}
	kinds[k] = true
}

func (r VoteRecord) clone() VoteRecord {
	out := make(VoteRecord, len(r))
	for id, kinds := range r {
		copied := make(map[reaction.Kind]bool, len(kinds))
		for k, v := range kinds {
			copied[k] = v
		}
		out[id] = copied
	}
	return out
}

// ExpansionRecord 记录每个条目的评论面板是否展开
type ExpansionRecord map[string]bool

func (r ExpansionRecord) clone() ExpansionRecord {
	out := make(ExpansionRecord, len(r))
	for id, v := range r {
		out[id] = v
	}
	return out
}
