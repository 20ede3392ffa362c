package board

import (
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
)

// ReactionView 是一个反应按钮的渲染数据
type ReactionView struct {
	Kind  reaction.Kind
	Count int
	Voted bool
}

// Label 返回按钮上显示的emoji，已投票时使用另一个emoji
func (r ReactionView) Label() string {
	info := r.Kind.Info()
	if r.Voted {
		return info.VotedEmoji
	}
	return info.Emoji
}

// EntryView 是一个条目的渲染数据：计数来自内存状态，投票标记来自本地缓存
type EntryView struct {
	ID             string
	Name           string
	Message        string
	Timestamp      time.Time
	Reactions      [reaction.NumKinds]ReactionView
	Expanded       bool
	CommentsLoaded bool
	Comments       []Comment
	Submitting     bool
	Draft          Draft
}

// DisplayTime 返回条目时间的展示字符串
func (v EntryView) DisplayTime() string {
	return FormatTimestamp(v.Timestamp)
}

// View 是整个列表页面的渲染数据
type View struct {
	Loaded  bool
	Err     error
	Entries []EntryView
}

// Empty 报告是否应当显示"还没有条目"的空状态
func (v View) Empty() bool {
	return v.Loaded && v.Err == nil && len(v.Entries) == 0
}

// View 返回当前状态的快照
func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	view := View{
		Loaded:  b.loaded,
		Err:     b.loadErr,
		Entries: make([]EntryView, 0, len(b.entries)),
	}
	for _, e := range b.entries {
		ev := EntryView{
			ID:         e.ID,
			Name:       e.Name,
			Message:    e.Message,
			Timestamp:  e.Timestamp,
			Expanded:   b.expanded[e.ID],
			Submitting: b.submitting[e.ID],
			Draft:      b.drafts[e.ID],
		}
		for i, k := range reaction.All {
			ev.Reactions[i] = ReactionView{
				Kind:  k,
				Count: e.Counts.Get(k),
				Voted: b.voted.Has(e.ID, k),
			}
		}
		if comments, ok := b.comments[e.ID]; ok {
			ev.CommentsLoaded = true
			ev.Comments = append([]Comment(nil), comments...)
		}
		view.Entries = append(view.Entries, ev)
	}
	return view
}
