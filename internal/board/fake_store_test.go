package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/comment"
	"github.com/SlpAus/keluhkesah-backend/internal/entry"
	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
)

// fakeStore 是一个记录调用次数的内存存储
type fakeStore struct {
	mu       sync.Mutex
	entries  []entry.Entry
	comments map[string][]comment.Comment
	calls    map[string]int
	clock    time.Time
	nextID   int

	failList          error
	failUpdate        error
	failCreateComment error
	failListComments  error

	// 以下钩子在不持有锁的情况下被调用，测试用来制造并发
	beforeCreateComment func()
	beforeUpdate        func()
	// afterListComments 在评论列表已经读出、尚未返回时被调用
	afterListComments func()
}

func newFakeStore(entries ...entry.Entry) *fakeStore {
	return &fakeStore{
		entries:  entries,
		comments: make(map[string][]comment.Comment),
		calls:    make(map[string]int),
		clock:    time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *fakeStore) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *fakeStore) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *fakeStore) stored(id string) entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.EntryID == id {
			return e
		}
	}
	return entry.Entry{}
}

func (s *fakeStore) ListEntries(context.Context) ([]entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["ListEntries"]++
	if s.failList != nil {
		return nil, s.failList
	}
	out := make([]entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *fakeStore) CreateEntry(_ context.Context, name, message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["CreateEntry"]++
	s.nextID++
	id := fmt.Sprintf("new-%d", s.nextID)
	e := entry.Entry{EntryID: id, Name: name, Message: message, CreatedAt: s.tick()}
	s.entries = append([]entry.Entry{e}, s.entries...)
	return id, nil
}

func (s *fakeStore) UpdateEntryField(_ context.Context, entryID string, k reaction.Kind, value int) error {
	if s.beforeUpdate != nil {
		s.beforeUpdate()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["UpdateEntryField"]++
	if s.failUpdate != nil {
		return s.failUpdate
	}
	for i := range s.entries {
		if s.entries[i].EntryID == entryID {
			s.entries[i].SetCount(k, value)
			return nil
		}
	}
	return entry.ErrNotFound
}

func (s *fakeStore) ListComments(_ context.Context, entryID string) ([]comment.Comment, error) {
	s.mu.Lock()
	s.calls["ListComments"]++
	if s.failListComments != nil {
		s.mu.Unlock()
		return nil, s.failListComments
	}
	out := make([]comment.Comment, len(s.comments[entryID]))
	copy(out, s.comments[entryID])
	s.mu.Unlock()

	if s.afterListComments != nil {
		s.afterListComments()
	}
	return out, nil
}

func (s *fakeStore) CreateComment(_ context.Context, entryID, name, body string) (string, error) {
	if s.beforeCreateComment != nil {
		s.beforeCreateComment()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["CreateComment"]++
	if s.failCreateComment != nil {
		return "", s.failCreateComment
	}
	s.nextID++
	c := comment.Comment{
		CommentID: fmt.Sprintf("c-%d", s.nextID),
		EntryID:   entryID,
		Name:      name,
		Body:      body,
		CreatedAt: s.tick(),
	}
	s.comments[entryID] = append(s.comments[entryID], c)
	return c.CommentID, nil
}

func intPtr(n int) *int { return &n }

// fullEntry 构造一个所有计数器都存在的条目
func fullEntry(id string, base int) entry.Entry {
	e := entry.Entry{EntryID: id, Name: "Budi", Message: "capek kuliah " + id}
	for i, k := range reaction.All {
		e.SetCount(k, base+i)
	}
	return e
}
