package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetStore_IssuedURLIsRecognized(t *testing.T) {
	ctx := context.Background()
	store := NewAssetStore("posters", "uploads")

	url, err := store.PresignUpload(ctx, "uploads/u/a.jpg", "image/png", time.Minute)
	require.NoError(t, err)

	key, ok := store.KeyFromReference("https://posters.assets.local/uploads/u/a.jpg")
	assert.True(t, ok)
	assert.Equal(t, "uploads/u/a.jpg", key)
	assert.Contains(t, url, "content-type=image%2Fpng")

	require.NoError(t, store.Delete(ctx, key))
	assert.Equal(t, []string{"uploads/u/a.jpg"}, store.Deleted())
}

func TestAssetStore_DeleteErr(t *testing.T) {
	store := NewAssetStore("posters", "uploads")
	store.DeleteErr = errors.New("denied")

	assert.Error(t, store.Delete(context.Background(), "uploads/u/a.jpg"))
	assert.Empty(t, store.Deleted())
}
