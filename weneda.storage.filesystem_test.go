package weneda

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilesystemStorage(t *testing.T) *FilesystemStorage {
	t.Helper()
	storage, err := NewFilesystemStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

func TestNewFilesystemStorage_EmptyRoot(t *testing.T) {
	_, err := NewFilesystemStorage("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidStorageRoot)
}

func TestNewFilesystemStorage_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "snippets")
	storage, err := NewFilesystemStorage(root)
	require.NoError(t, err)
	defer storage.Close()

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFilesystemStorage_SaveAndGet(t *testing.T) {
	storage := newTestFilesystemStorage(t)
	ctx := context.Background()

	snippet := &Snippet{
		Name:     "greeting",
		Content:  "Hello, {name}!",
		Metadata: map[string]string{"lang": "en"},
		Tags:     []string{"greetings"},
	}
	require.NoError(t, storage.Save(ctx, snippet))

	got, err := storage.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, snippet.ID, got.ID)
	assert.Equal(t, "Hello, {name}!", got.Content)
	assert.Equal(t, map[string]string{"lang": "en"}, got.Metadata)
	assert.Equal(t, []string{"greetings"}, got.Tags)
}

func TestFilesystemStorage_PersistsAcrossInstances(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	first, err := NewFilesystemStorage(root)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, &Snippet{Name: "durable", Content: "persisted"}))
	require.NoError(t, first.Close())

	second, err := NewFilesystemStorage(root)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "durable")
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Content)
}

func TestFilesystemStorage_SaveReplacesKeepingIdentity(t *testing.T) {
	storage := newTestFilesystemStorage(t)
	ctx := context.Background()

	first := &Snippet{Name: "greeting", Content: "v1"}
	require.NoError(t, storage.Save(ctx, first))

	second := &Snippet{Name: "greeting", Content: "v2"}
	require.NoError(t, storage.Save(ctx, second))

	got, err := storage.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)
	assert.Equal(t, first.ID, got.ID)
}

func TestFilesystemStorage_NameValidation(t *testing.T) {
	storage := newTestFilesystemStorage(t)
	ctx := context.Background()

	invalid := []string{
		"",
		"../escape",
		"nested/name",
		`back\slash`,
		".hidden",
		"dot..dot",
	}

	for _, name := range invalid {
		_, err := storage.Get(ctx, name)
		require.Error(t, err, "name %q", name)

		err = storage.Save(ctx, &Snippet{Name: name, Content: "x"})
		require.Error(t, err, "name %q", name)
	}
}

func TestFilesystemStorage_DeleteAndExists(t *testing.T) {
	storage := newTestFilesystemStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, &Snippet{Name: "doomed", Content: "x"}))

	exists, err := storage.Exists(ctx, "doomed")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, storage.Delete(ctx, "doomed"))

	exists, err = storage.Exists(ctx, "doomed")
	require.NoError(t, err)
	assert.False(t, exists)

	err = storage.Delete(ctx, "doomed")
	assert.True(t, IsSnippetNotFound(err))
}

func TestFilesystemStorage_DeleteFailureWrapped(t *testing.T) {
	root := t.TempDir()
	storage, err := NewFilesystemStorage(root)
	require.NoError(t, err)
	defer storage.Close()

	// A non-empty directory squatting on the snippet path makes os.Remove
	// fail with something other than "not exist".
	blocked := filepath.Join(root, "blocked"+FilesystemSnippetExt)
	require.NoError(t, os.Mkdir(blocked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(blocked, "inner"), []byte("x"), 0o644))

	err = storage.Delete(context.Background(), "blocked")
	require.Error(t, err)
	assert.False(t, IsSnippetNotFound(err))

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, ErrMsgRemoveSnippetFile, storageErr.Message)
	assert.Equal(t, "blocked", storageErr.Name)
	assert.Error(t, storageErr.Cause)
}

func TestFilesystemStorage_List(t *testing.T) {
	storage := newTestFilesystemStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, &Snippet{Name: "footer", Content: "f"}))
	require.NoError(t, storage.Save(ctx, &Snippet{Name: "header", Content: "h", Tags: []string{"top"}}))

	all, err := storage.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "footer", all[0].Name)
	assert.Equal(t, "header", all[1].Name)

	tagged, err := storage.List(ctx, &SnippetQuery{Tags: []string{"top"}})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "header", tagged[0].Name)
}

func TestFilesystemStorage_ListIgnoresForeignFiles(t *testing.T) {
	root := t.TempDir()
	storage, err := NewFilesystemStorage(root)
	require.NoError(t, err)
	defer storage.Close()
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, &Snippet{Name: "real", Content: "x"}))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("not a snippet"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "subdir"), 0o755))

	all, err := storage.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "real", all[0].Name)
}

func TestFilesystemStorage_Closed(t *testing.T) {
	storage := newTestFilesystemStorage(t)
	require.NoError(t, storage.Close())

	_, err := storage.Get(context.Background(), "any")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgStorageClosed)
}
