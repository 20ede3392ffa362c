// Package board 保存一个浏览器会话的列表状态，并把它与存储中的计数、
// 本地缓存里的投票/展开标记保持一致。
//
// Board 可以被并发使用。内部的互斥锁只保护内存状态，任何存储调用期间都不持有它，
// 因此一个条目上的请求不会阻塞其它条目上的操作。
package board

import (
	"context"
	"fmt"
	"sync"

	"github.com/SlpAus/keluhkesah-backend/internal/localcache"
	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
	"go.uber.org/zap"
)

// Board 是一个浏览器会话的状态
type Board struct {
	store Store
	cache localcache.Cache

	mu         sync.Mutex
	entries    []Entry
	index      map[string]int
	loaded     bool
	loadErr    error
	voted      VoteRecord
	expanded   ExpansionRecord
	comments   map[string][]Comment
	fetching   map[string]bool
	submitting map[string]bool
	drafts     map[string]Draft
	voting     map[voteKey]bool
	// commentGen 在本地提交评论后递增，读取开始前的代数过期时结果被丢弃
	commentGen map[string]int

	// persistMu 串行化本地缓存写入，保证最后写入的是最新状态
	persistMu sync.Mutex
}

// New 创建一个Board，并从本地缓存恢复投票和展开记录
// 本地缓存损坏或不可读时从空记录开始，不影响页面其余部分
func New(ctx context.Context, store Store, cache localcache.Cache) *Board {
	b := &Board{
		store:      store,
		cache:      cache,
		index:      make(map[string]int),
		voted:      make(VoteRecord),
		expanded:   make(ExpansionRecord),
		comments:   make(map[string][]Comment),
		fetching:   make(map[string]bool),
		submitting: make(map[string]bool),
		drafts:     make(map[string]Draft),
		voting:     make(map[voteKey]bool),
		commentGen: make(map[string]int),
	}
	b.restore(ctx)
	return b
}

func (b *Board) restore(ctx context.Context) {
	var voted map[string]map[string]bool
	if _, err := b.cache.Get(ctx, localcache.KeyVotedReactions, &voted); err != nil {
		zap.L().Warn("无法恢复投票记录，将从空记录开始", zap.Error(err))
	}
	for id, kinds := range voted {
		for name, ok := range kinds {
			if !ok {
				continue
			}
			k, err := reaction.Parse(name)
			if err != nil {
				zap.L().Warn("忽略本地缓存中的未知反应", zap.String("entryID", id), zap.String("reaction", name))
				continue
			}
			b.voted.Mark(id, k)
		}
	}

	var expanded map[string]bool
	if _, err := b.cache.Get(ctx, localcache.KeyExpandedComments, &expanded); err != nil {
		zap.L().Warn("无法恢复评论展开记录，将从空记录开始", zap.Error(err))
	}
	for id, open := range expanded {
		b.expanded[id] = open
	}
}

// Load 全量读取条目列表，替换内存中的列表，并丢弃已缓存的评论。
// 失败时返回 ErrFetch，保留上一次成功加载的列表，不做重试。
func (b *Board) Load(ctx context.Context) error {
	records, err := b.store.ListEntries(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrFetch, err)
		b.mu.Lock()
		b.loadErr = err
		b.mu.Unlock()
		return err
	}

	entries := make([]Entry, 0, len(records))
	index := make(map[string]int, len(records))
	for _, rec := range records {
		index[rec.EntryID] = len(entries)
		entries = append(entries, fromRecord(rec))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = entries
	b.index = index
	b.comments = make(map[string][]Comment)
	b.loaded = true
	b.loadErr = nil
	return nil
}

// LoadErr 返回最近一次 Load 的错误，成功加载后为nil
func (b *Board) LoadErr() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadErr
}

// Entry 返回内存中的一个条目
func (b *Board) Entry(id string) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx, ok := b.index[id]
	if !ok {
		return Entry{}, false
	}
	return b.entries[idx], true
}

// ResetLocal 清空本地缓存以及内存中的投票和展开记录，相当于用户清除了浏览器数据
func (b *Board) ResetLocal(ctx context.Context) error {
	b.persistMu.Lock()
	defer b.persistMu.Unlock()

	b.mu.Lock()
	b.voted = make(VoteRecord)
	b.expanded = make(ExpansionRecord)
	b.mu.Unlock()

	if err := b.cache.Clear(ctx); err != nil {
		return fmt.Errorf("清空本地缓存失败: %w", err)
	}
	return nil
}

// persistVoted 把当前的投票记录写入本地缓存
func (b *Board) persistVoted(ctx context.Context) {
	b.persistMu.Lock()
	defer b.persistMu.Unlock()

	b.mu.Lock()
	snapshot := b.voted.clone()
	b.mu.Unlock()

	if err := b.cache.Set(ctx, localcache.KeyVotedReactions, snapshot); err != nil {
		zap.L().Warn("投票记录写入本地缓存失败", zap.Error(err))
	}
}

// persistExpanded 把当前的展开记录写入本地缓存
func (b *Board) persistExpanded(ctx context.Context) {
	b.persistMu.Lock()
	defer b.persistMu.Unlock()

	b.mu.Lock()
	snapshot := b.expanded.clone()
	b.mu.Unlock()

	if err := b.cache.Set(ctx, localcache.KeyExpandedComments, snapshot); err != nil {
		zap.L().Warn("展开记录写入本地缓存失败", zap.Error(err))
	}
}
