package main

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/SlpAus/keluhkesah-backend/internal/board"
	"github.com/SlpAus/keluhkesah-backend/internal/localcache"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/config"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/database"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/startup"
	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	store board.Store
	cache localcache.Cache
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.DatabaseConfig{Driver: config.DriverSqlite}
	cfg.Sqlite.Path = fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Open(cfg, "test")
	require.NoError(t, err)
	backend, err := startup.NewGormBackend(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	return &harness{
		store: board.ServiceStore{Entries: backend.Entries, Comments: backend.Comments},
		cache: localcache.NewMemory(),
	}
}

// invoke 模拟一次命令行调用：新的Board，同一个本地缓存
func (h *harness) invoke(t *testing.T, cmd string, args ...string) (string, error) {
	t.Helper()
	ctx := context.Background()
	var out bytes.Buffer
	a := &app{board: board.New(ctx, h.store, h.cache), out: &out}
	err := a.run(ctx, cmd, args)
	return out.String(), err
}

var idPattern = regexp.MustCompile(`\[([0-9a-f-]{36})\]`)

func TestEmptyList(t *testing.T) {
	h := newHarness(t)
	out, err := h.invoke(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Belum ada keluh kesah")
}

func TestPostVoteCommentFlow(t *testing.T) {
	h := newHarness(t)

	out, err := h.invoke(t, "post", "-name", "Budi", "-message", "tugas numpuk")
	require.NoError(t, err)
	m := idPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	id := m[1]

	out, err = h.invoke(t, "vote", id, "sad")
	require.NoError(t, err)
	assert.Contains(t, out, "→ 1")

	out, err = h.invoke(t, "vote", id, "sad")
	require.NoError(t, err, "重复投票只是提示")
	assert.Contains(t, out, "sudah")

	out, err = h.invoke(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Budi")
	assert.Contains(t, out, "tugas numpuk")
	assert.Contains(t, out, reaction.Sad.Info().VotedEmoji+" 1")
	assert.Contains(t, out, reaction.Deep.Info().Emoji+" 0")

	out, err = h.invoke(t, "toggle", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Belum ada komentar")

	out, err = h.invoke(t, "comment", "-name", "Alice", id, "hello", "juga")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "hello juga")

	// 展开状态保存在本地缓存中，下一次列表直接带出评论
	out, err = h.invoke(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hello juga")

	_, err = h.invoke(t, "reset")
	require.NoError(t, err)
	out, err = h.invoke(t, "vote", id, "sad")
	require.NoError(t, err)
	assert.Contains(t, out, "→ 2")
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)

	_, err := h.invoke(t, "dance")
	assert.ErrorIs(t, err, errUsage)

	out, err := h.invoke(t, "vote", "x", "angry")
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out, "thumbUp")

	_, err = h.invoke(t, "toggle")
	assert.ErrorIs(t, err, errUsage)

	_, err = h.invoke(t, "toggle", "missing")
	assert.ErrorIs(t, err, board.ErrUnknownEntry)

	_, err = h.invoke(t, "post", "-message", "  ")
	assert.ErrorIs(t, err, board.ErrValidation)

	_, err = h.invoke(t, "comment", "some-id")
	assert.ErrorIs(t, err, board.ErrValidation)
}
