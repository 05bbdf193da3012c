package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storycast/internal/domain"
)

func TestLocalStore_Upload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(Config{Dir: dir, PublicBaseURL: "https://cdn.example.com/audio/"})
	require.NoError(t, err)

	ref, err := store.Upload(context.Background(), []byte("ID3data"), domain.UploadOptions{
		Filename:    "episodes/abc.mp3",
		ContentType: "audio/mpeg",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/audio/episodes/abc.mp3", ref.URL)
	assert.Equal(t, int64(7), ref.Bytes)
	assert.Equal(t, "audio/mpeg", ref.ContentType)

	data, err := os.ReadFile(filepath.Join(dir, "episodes", "abc.mp3"))
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3data"), data)

	entries, err := os.ReadDir(filepath.Join(dir, "episodes"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStore_UploadOverwrites(t *testing.T) {
	store, err := NewLocalStore(Config{Dir: t.TempDir(), PublicBaseURL: "http://localhost/audio"})
	require.NoError(t, err)

	opts := domain.UploadOptions{Filename: "adventures/a/start.mp3"}
	_, err = store.Upload(context.Background(), []byte("one"), opts)
	require.NoError(t, err)
	ref, err := store.Upload(context.Background(), []byte("three"), opts)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost/audio/adventures/a/start.mp3", ref.URL)
	assert.Equal(t, int64(5), ref.Bytes)
}

func TestLocalStore_RejectsEscapingNames(t *testing.T) {
	store, err := NewLocalStore(Config{Dir: t.TempDir()})
	require.NoError(t, err)

	for _, name := range []string{"", "../secret.mp3", "episodes/../../x.mp3", "."} {
		_, err := store.Upload(context.Background(), []byte("x"), domain.UploadOptions{Filename: name})
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestLocalStore_CancelledContext(t *testing.T) {
	store, err := NewLocalStore(Config{Dir: t.TempDir()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Upload(ctx, []byte("x"), domain.UploadOptions{Filename: "a.mp3"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLocalStore_RequiresDir(t *testing.T) {
	_, err := NewLocalStore(Config{})
	assert.Error(t, err)
}
