package chatstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/diveplanner/internal/domain/chat"
	"github.com/yanqian/diveplanner/internal/domain/llm"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	session := chat.Session{
		ID:      "s1",
		Valid:   true,
		History: []llm.Message{{Role: llm.RoleUser, Text: "hola"}},
	}
	require.NoError(t, store.Save(ctx, session, 0))

	// mutating the caller copy must not leak into the store
	session.History[0].Text = "changed"

	got, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hola", got.History[0].Text)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, ok, _ = store.Get(ctx, "s1")
	require.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, chat.Session{ID: "s1"}, time.Minute))
	_, ok, _ := store.Get(ctx, "s1")
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = store.Get(ctx, "s1")
	require.False(t, ok)
}
