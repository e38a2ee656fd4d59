package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStore_Upload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalFileStore(dir, "/uploads/")
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "college-id.PNG", strings.NewReader("fake-image-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "fake-image-bytes", string(data))
}

func TestLocalFileStore_Upload_UniqueNames(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	a, err := store.Upload(context.Background(), "id.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := store.Upload(context.Background(), "id.jpg", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocalFileStore_Upload_CanceledContext(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Upload(ctx, "id.jpg", strings.NewReader("a"))
	assert.Error(t, err)
}
