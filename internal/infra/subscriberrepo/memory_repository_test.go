package subscriberrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	sub, created, err := repo.Create(ctx, "a@b.co", "popup")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, int64(1), sub.ID)

	again, created, err := repo.Create(ctx, "a@b.co", "footer")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, sub, again)

	removed, err := repo.Delete(ctx, "a@b.co")
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = repo.Delete(ctx, "a@b.co")
	require.NoError(t, err)
	require.False(t, removed)
}
