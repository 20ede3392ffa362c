package comment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SlpAus/keluhkesah-backend/internal/entry"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/config"
	"github.com/SlpAus/keluhkesah-backend/internal/platform/database"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	entries  *entry.Service
	comments *Service
	repo     *GormRepository
	router   *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.DatabaseConfig{Driver: config.DriverSqlite}
	cfg.Sqlite.Path = fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Open(cfg, "test")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	entryRepo := entry.NewGormRepository(db)
	require.NoError(t, entryRepo.Migrate())
	repo := NewGormRepository(db)
	require.NoError(t, repo.Migrate())

	f := &fixture{
		entries: entry.NewService(entryRepo),
		repo:    repo,
	}
	f.comments = NewService(repo, f.entries)

	gin.SetMode(gin.TestMode)
	f.router = gin.New()
	NewHandler(f.comments).RegisterRoutes(f.router.Group("/api/entries"))
	return f
}

func (f *fixture) newEntry(t *testing.T) string {
	t.Helper()
	e, err := f.entries.Create(context.Background(), "", "pesan")
	require.NoError(t, err)
	return e.EntryID
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestNormalizeSubmission(t *testing.T) {
	name, body, err := NormalizeSubmission("   ", "semangat ya")
	require.NoError(t, err)
	assert.Equal(t, DefaultName, name)
	assert.Equal(t, "semangat ya", body)

	_, _, err = NormalizeSubmission("Alice", " \t")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = NormalizeSubmission(strings.Repeat("n", MaxNameLength+1), "ok")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = NormalizeSubmission("", strings.Repeat("b", MaxBodyLength+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = NormalizeSubmission("", strings.Repeat("b", MaxBodyLength))
	assert.NoError(t, err)
}

func TestServiceAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.newEntry(t)
	other := f.newEntry(t)

	for _, body := range []string{"satu", "dua", "tiga"} {
		_, err := f.comments.Create(ctx, id, "", body)
		require.NoError(t, err)
	}
	_, err := f.comments.Create(ctx, other, "Alice", "lain")
	require.NoError(t, err)

	comments, err := f.comments.List(ctx, id)
	require.NoError(t, err)
	var bodies []string
	for _, c := range comments {
		bodies = append(bodies, c.Body)
		assert.Equal(t, DefaultName, c.Name)
		assert.Equal(t, id, c.EntryID)
	}
	assert.Equal(t, []string{"satu", "dua", "tiga"}, bodies)
}

func TestGormListTiesBrokenByInsertOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.newEntry(t)
	at := time.Date(2025, 2, 2, 2, 2, 2, 0, time.UTC)
	require.NoError(t, f.repo.Create(ctx, &Comment{EntryID: id, Name: "a", Body: "x", CreatedAt: at}))
	require.NoError(t, f.repo.Create(ctx, &Comment{EntryID: id, Name: "b", Body: "y", CreatedAt: at}))

	comments, err := f.repo.List(ctx, id)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "a", comments[0].Name)
	assert.Equal(t, "b", comments[1].Name)
}

func TestServiceRejectsUnknownEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.comments.List(ctx, "missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)
	_, err = f.comments.Create(ctx, "missing", "", "halo")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestHandler(t *testing.T) {
	f := newFixture(t)
	id := f.newEntry(t)
	base := "/api/entries/" + id + "/comments"

	w := f.do(http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = f.do(http.MethodPost, base, `{"name":"Alice","comment":"hello"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created CreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	w = f.do(http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, w.Code)
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, created.ID, raw[0]["id"])
	assert.Equal(t, "Alice", raw[0]["name"])
	assert.Equal(t, "hello", raw[0]["comment"])
	assert.Contains(t, raw[0], "timestamp")
	assert.NotContains(t, raw[0], "entryId")

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, base, `{"comment":"  "}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, base, `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/api/entries/missing/comments", `{"comment":"hi"}`).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/entries/missing/comments", "").Code)
}
