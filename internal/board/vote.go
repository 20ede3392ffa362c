package board

import (
	"context"
	"fmt"

	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
)

type voteKey struct {
	entryID string
	kind    reaction.Kind
}

// Vote 给条目投一次反应，返回新的计数。
//
// 同一浏览器对同一 (条目, 反应) 第二次投票时返回 ErrDuplicateVote，不访问存储；
// 前一次还在写入时返回 ErrVoteInProgress。
// 新计数取自内存中的当前值加一，再整体写回存储；不同浏览器并发投票时，
// 后写入者会覆盖前者，其中一次增量可能丢失。
func (b *Board) Vote(ctx context.Context, entryID string, k reaction.Kind) (int, error) {
	if !k.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownReaction, int(k))
	}

	b.mu.Lock()
	if b.voted.Has(entryID, k) {
		b.mu.Unlock()
		return 0, ErrDuplicateVote
	}
	idx, ok := b.index[entryID]
	if !ok {
		b.mu.Unlock()
		return 0, fmt.Errorf("%w: %s", ErrUnknownEntry, entryID)
	}
	key := voteKey{entryID: entryID, kind: k}
	if b.voting[key] {
		b.mu.Unlock()
		return 0, ErrVoteInProgress
	}
	b.voting[key] = true
	newCount := b.entries[idx].Counts.Get(k) + 1
	b.mu.Unlock()

	if err := b.store.UpdateEntryField(ctx, entryID, k, newCount); err != nil {
		b.mu.Lock()
		delete(b.voting, key)
		b.mu.Unlock()
		return 0, fmt.Errorf("%w: %w", ErrUpdate, err)
	}

	b.mu.Lock()
	delete(b.voting, key)
	// 写入期间列表可能被重新加载过，计数只增不减
	if idx, ok := b.index[entryID]; ok && b.entries[idx].Counts.Get(k) < newCount {
		b.entries[idx].Counts.Set(k, newCount)
	}
	b.voted.Mark(entryID, k)
	b.mu.Unlock()

	b.persistVoted(ctx)
	return newCount, nil
}

// HasVoted 报告这个浏览器是否已经给条目投过该反应
func (b *Board) HasVoted(entryID string, k reaction.Kind) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.voted.Has(entryID, k)
}
