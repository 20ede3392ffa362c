package entry

import (
	"context"
	"strings"
	"testing"

	"github.com/SlpAus/keluhkesah-backend/internal/reaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSubmission(t *testing.T) {
	tests := []struct {
		name        string
		inName      string
		inMessage   string
		wantName    string
		wantInvalid bool
	}{
		{name: "名字留空使用占位名", inName: "", inMessage: "halo", wantName: DefaultName},
		{name: "名字只有空白", inName: "  \t", inMessage: "halo", wantName: DefaultName},
		{name: "名字去掉首尾空白", inName: "  Budi ", inMessage: "halo", wantName: "Budi"},
		{name: "消息为空", inName: "Budi", inMessage: "", wantInvalid: true},
		{name: "消息只有空白", inName: "Budi", inMessage: " \n ", wantInvalid: true},
		{name: "名字过长", inName: strings.Repeat("a", MaxNameLength+1), inMessage: "halo", wantInvalid: true},
		{name: "名字按字符计数", inName: strings.Repeat("😢", MaxNameLength), inMessage: "halo", wantName: strings.Repeat("😢", MaxNameLength)},
		{name: "消息过长", inName: "", inMessage: strings.Repeat("x", MaxMessageLength+1), wantInvalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, message, err := NormalizeSubmission(tt.inName, tt.inMessage)
			if tt.wantInvalid {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.inMessage, message)
		})
	}
}

func TestServiceCreateAndSetCount(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newTestRepo(t))

	_, err := svc.Create(ctx, "Budi", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	e, err := svc.Create(ctx, "", "aku lelah")
	require.NoError(t, err)
	assert.Equal(t, DefaultName, e.Name)

	assert.ErrorIs(t, svc.SetReactionCount(ctx, e.EntryID, reaction.Hugs, -1), ErrInvalidInput)
	require.NoError(t, svc.SetReactionCount(ctx, e.EntryID, reaction.Hugs, 1))

	ok, err := svc.Exists(ctx, e.EntryID)
	require.NoError(t, err)
	assert.True(t, ok)
}
