package filestorages

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) FileStorage {
	t.Helper()
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return storage
}

func putFile(t *testing.T, storage FileStorage, key, data string) {
	t.Helper()
	_, err := storage.Put(context.Background(), key, strings.NewReader(data), PutOptions{AllowOverwrite: true})
	require.NoError(t, err)
}

func TestPut_ValidKey(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	validKeys := []string{
		"file.log.gz",
		"ext/archive_20180321T0100Z_1.2.3.4.log.gz",
		"nested/deep/path/file.txt",
	}

	for _, key := range validKeys {
		t.Run(key, func(t *testing.T) {
			data := "test data"
			reader := strings.NewReader(data)

			result, err := storage.Put(ctx, key, reader, PutOptions{AllowOverwrite: false})
			require.NoError(t, err, "key %q should be valid", key)
			assert.Equal(t, key, result.FileKey)

			content, err := os.ReadFile(storage.FullPath(key))
			require.NoError(t, err)
			assert.Equal(t, data, string(content))
		})
	}
}

func TestPut_AllowOverwriteFalse_FileExists(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	key := "ext/test.gz"
	putFile(t, storage, key, "initial data")

	_, err := storage.Put(ctx, key, strings.NewReader("new data"), PutOptions{AllowOverwrite: false})
	assert.ErrorIs(t, err, ErrFileAlreadyExists)

	// Verify original data is unchanged
	content, err := os.ReadFile(storage.FullPath(key))
	require.NoError(t, err)
	assert.Equal(t, "initial data", string(content))
}

func TestPut_AllowOverwriteTrue_FileExists(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)

	key := "ext/test.gz"
	putFile(t, storage, key, "initial data")
	putFile(t, storage, key, "new data")

	content, err := os.ReadFile(storage.FullPath(key))
	require.NoError(t, err)
	assert.Equal(t, "new data", string(content))
}

func TestPut_InvalidKey(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	invalidKeys := []string{
		"",
		"/absolute/path",
		"..",
		"../file.txt",
		"ext/../../etc/passwd",
		".",
	}

	for _, key := range invalidKeys {
		t.Run(key, func(t *testing.T) {
			_, err := storage.Put(ctx, key, strings.NewReader("x"), PutOptions{AllowOverwrite: false})
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestGet_ReturnsContent(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	putFile(t, storage, "ext/a.gz", "archive bytes")

	rc, err := storage.Get(ctx, "ext/a.gz")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "archive bytes", string(data))
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)

	_, err := storage.Get(context.Background(), "ext/missing.gz")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestExists(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	exists, err := storage.Exists(ctx, "ext/a.gz")
	require.NoError(t, err)
	assert.False(t, exists)

	putFile(t, storage, "ext/a.gz", "x")

	exists, err = storage.Exists(ctx, "ext/a.gz")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestList_FiltersByPatternAndSorts(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)
	ctx := context.Background()

	putFile(t, storage, "ext/b_20180321T0200Z_x.log.gz", "x")
	putFile(t, storage, "ext/a_20180321T0100Z_x.log.gz", "x")
	putFile(t, storage, "ext/notes.txt", "x")
	putFile(t, storage, "int/c_20180321T0300Z_x.log.gz", "x")

	keys, err := storage.List(ctx, "ext", "*.gz")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("ext", "a_20180321T0100Z_x.log.gz"),
		filepath.Join("ext", "b_20180321T0200Z_x.log.gz"),
	}, keys)
}

func TestList_MissingDirIsEmpty(t *testing.T) {
	t.Parallel()

	storage := newTestStorage(t)

	keys, err := storage.List(context.Background(), "nope", "*.gz")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
