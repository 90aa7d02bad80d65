package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/diveplanner/internal/domain/inspiration"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("png-bytes")
	obj, err := store.Put(ctx, "sketches/a.png", data, "image/png")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), obj.Size)
	require.NotEmpty(t, obj.ETag)

	data[0] = 'X'
	rc, err := store.Get(ctx, "sketches/a.png")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(got))

	require.NoError(t, store.Delete(ctx, "sketches/a.png"))
	_, err = store.Get(ctx, "sketches/a.png")
	require.ErrorIs(t, err, inspiration.ErrBlobNotFound)
	require.ErrorIs(t, store.Delete(ctx, "sketches/a.png"), inspiration.ErrBlobNotFound)
}

func TestSanitizeEndpoint(t *testing.T) {
	cases := map[string]string{
		"":                                     "",
		"https://acc.r2.cloudflarestorage.com": "acc.r2.cloudflarestorage.com",
		"http://localhost:9000/bucket/path":    "localhost:9000",
		" minio:9000 ":                         "minio:9000",
	}
	for in, want := range cases {
		require.Equal(t, want, sanitizeEndpoint(in), in)
	}
}
