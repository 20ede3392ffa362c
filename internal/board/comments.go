package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/SlpAus/keluhkesah-backend/internal/comment"
	"github.com/SlpAus/keluhkesah-backend/internal/entry"
)

// ToggleComments 切换条目评论面板的展开状态，返回切换后是否展开。
//
// 第一次展开时读取评论并缓存在内存中；之后再展开不会重新读取，直到整个列表重新加载
// 或本地提交了新评论。收起时缓存保留。首次读取失败时面板仍是展开的，
// 但没有缓存，下一次展开会重试。条目不在列表中时返回 ErrUnknownEntry。
func (b *Board) ToggleComments(ctx context.Context, entryID string) (bool, error) {
	b.mu.Lock()
	if _, ok := b.index[entryID]; !ok {
		b.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrUnknownEntry, entryID)
	}
	if b.expanded[entryID] {
		b.expanded[entryID] = false
		b.mu.Unlock()
		b.persistExpanded(ctx)
		return false, nil
	}

	b.expanded[entryID] = true
	_, cached := b.comments[entryID]
	needFetch := !cached && !b.fetching[entryID]
	gen := b.commentGen[entryID]
	if needFetch {
		b.fetching[entryID] = true
	}
	b.mu.Unlock()
	b.persistExpanded(ctx)

	if !needFetch {
		return true, nil
	}
	return true, b.fetchComments(ctx, entryID, gen)
}

// fetchComments 读取评论并写入缓存，调用前必须已将 fetching[entryID] 置为 true，
// gen 是当时的 commentGen[entryID]。读取期间本地提交过评论时，结果已过期，直接丢弃。
func (b *Board) fetchComments(ctx context.Context, entryID string, gen int) error {
	records, err := b.store.ListComments(ctx, entryID)

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.fetching, entryID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if b.commentGen[entryID] != gen {
		return nil
	}
	b.comments[entryID] = fromComments(records)
	return nil
}

// IsExpanded 报告条目的评论面板是否展开
func (b *Board) IsExpanded(entryID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.expanded[entryID]
}

// Comments 返回条目已缓存的评论，以及是否已经加载过
func (b *Board) Comments(entryID string) ([]Comment, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	comments, ok := b.comments[entryID]
	return append([]Comment(nil), comments...), ok
}

// LoadExpandedComments 为本地缓存中记为展开、但还没有评论缓存的条目读取评论。
// 用在重新加载列表之后，让上次打开的面板恢复内容。
func (b *Board) LoadExpandedComments(ctx context.Context) error {
	b.mu.Lock()
	type pendingFetch struct {
		id  string
		gen int
	}
	var pending []pendingFetch
	for _, e := range b.entries {
		if !b.expanded[e.ID] || b.fetching[e.ID] {
			continue
		}
		if _, cached := b.comments[e.ID]; cached {
			continue
		}
		b.fetching[e.ID] = true
		pending = append(pending, pendingFetch{id: e.ID, gen: b.commentGen[e.ID]})
	}
	b.mu.Unlock()

	var errs []error
	for _, p := range pending {
		if err := b.fetchComments(ctx, p.id, p.gen); err != nil {
			errs = append(errs, fmt.Errorf("条目 %s: %w", p.id, err))
		}
	}
	return errors.Join(errs...)
}

// Draft 返回条目评论表单中尚未提交的内容
func (b *Board) Draft(entryID string) Draft {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.drafts[entryID]
}

// IsSubmitting 报告条目的评论是否正在提交
func (b *Board) IsSubmitting(entryID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.submitting[entryID]
}

// SubmitComment 在条目下追加一条评论。
//
// 评论为空时返回 ErrValidation，不访问存储。写入成功后重新读取整个评论列表刷新缓存，
// 并清空表单；写入失败返回 ErrSubmit，表单内容保留以便重试。
// 同一条目同时只允许一个提交，重复提交返回 ErrSubmitInProgress。
func (b *Board) SubmitComment(ctx context.Context, entryID, name, text string) error {
	normalizedName, body, err := comment.NormalizeSubmission(name, text)
	if err != nil {
		b.mu.Lock()
		b.drafts[entryID] = Draft{Name: name, Text: text}
		b.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	b.mu.Lock()
	if b.submitting[entryID] {
		b.mu.Unlock()
		return ErrSubmitInProgress
	}
	b.submitting[entryID] = true
	b.drafts[entryID] = Draft{Name: name, Text: text}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.submitting, entryID)
		b.mu.Unlock()
	}()

	if _, err := b.store.CreateComment(ctx, entryID, normalizedName, body); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}

	// 评论已经写入，表单可以清空了；进行中的旧读取从此作废
	b.mu.Lock()
	delete(b.drafts, entryID)
	b.commentGen[entryID]++
	gen := b.commentGen[entryID]
	b.mu.Unlock()

	records, err := b.store.ListComments(ctx, entryID)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		// 缓存已过期，丢弃它，下一次展开时重新读取
		delete(b.comments, entryID)
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if b.commentGen[entryID] == gen {
		b.comments[entryID] = fromComments(records)
	}
	return nil
}

// PostEntry 提交一条新的keluh kesah，返回存储分配的ID。
// 提交成功后不修改当前列表，调用方应重新 Load。
func (b *Board) PostEntry(ctx context.Context, name, message string) (string, error) {
	name, message, err := entry.NormalizeSubmission(name, message)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	id, err := b.store.CreateEntry(ctx, name, message)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	return id, nil
}
