package weneda

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FilesystemStorage stores snippets as YAML files on the filesystem.
// Each snippet is stored as one file named after the snippet.
//
// Directory structure:
//
//	<root>/
//	  <snippet-name>.yaml
//	  ...
type FilesystemStorage struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// FilesystemStorageDriver is the driver for creating FilesystemStorage instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Filesystem storage error message constants
const (
	ErrMsgInvalidStorageRoot = "storage root directory cannot be empty"
	ErrMsgCreateStorageDir   = "failed to create storage directory"
	ErrMsgReadSnippetFile    = "failed to read snippet file"
	ErrMsgWriteSnippetFile   = "failed to write snippet file"
	ErrMsgDecodeSnippetFile  = "failed to decode snippet file"
	ErrMsgEncodeSnippet      = "failed to encode snippet"
	ErrMsgListStorageDir     = "failed to list storage directory"
	ErrMsgRemoveSnippetFile  = "failed to remove snippet file"
	ErrMsgStatSnippetFile    = "failed to stat snippet file"
)

// Open creates a new FilesystemStorage instance.
// The connection string is the root directory path.
func (d *FilesystemStorageDriver) Open(connectionString string) (SnippetStorage, error) {
	return NewFilesystemStorage(connectionString)
}

// NewFilesystemStorage creates a new filesystem-based snippet storage.
// The root directory will be created if it doesn't exist.
func NewFilesystemStorage(root string) (*FilesystemStorage, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot}
	}

	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, &StorageError{
			Message: ErrMsgCreateStorageDir,
			Name:    root,
			Cause:   err,
		}
	}

	return &FilesystemStorage{
		root: root,
	}, nil
}

// validateSnippetNameForFilesystem rejects names that could escape the
// storage root or collide with path syntax.
func validateSnippetNameForFilesystem(name string) error {
	if name == "" {
		return &StorageError{Message: ErrMsgEmptySnippetName}
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") || strings.HasPrefix(name, ".") {
		return &StorageError{Message: ErrMsgInvalidSnippetName, Name: name}
	}
	return nil
}

// snippetPath returns the file path for a snippet name.
func (s *FilesystemStorage) snippetPath(name string) string {
	return filepath.Join(s.root, name+FilesystemSnippetExt)
}

// Get retrieves a snippet by name.
func (s *FilesystemStorage) Get(ctx context.Context, name string) (*Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateSnippetNameForFilesystem(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	return s.readSnippet(name)
}

// readSnippet loads and decodes one snippet file. Callers hold the lock.
func (s *FilesystemStorage) readSnippet(name string) (*Snippet, error) {
	data, err := os.ReadFile(s.snippetPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewSnippetNotFoundError(name)
		}
		return nil, &StorageError{Message: ErrMsgReadSnippetFile, Name: name, Cause: err}
	}

	var snippet Snippet
	if err := yaml.Unmarshal(data, &snippet); err != nil {
		return nil, &StorageError{Message: ErrMsgDecodeSnippetFile, Name: name, Cause: err}
	}
	return &snippet, nil
}

// Save stores a snippet, replacing any existing file with the same name.
func (s *FilesystemStorage) Save(ctx context.Context, snippet *Snippet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateSnippetNameForFilesystem(snippet.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	now := time.Now()
	stored := &Snippet{
		ID:        generateSnippetID(),
		Name:      snippet.Name,
		Content:   snippet.Content,
		Metadata:  copyStringMap(snippet.Metadata),
		Tags:      copyStringSlice(snippet.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if existing, err := s.readSnippet(snippet.Name); err == nil {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	}

	data, err := yaml.Marshal(stored)
	if err != nil {
		return &StorageError{Message: ErrMsgEncodeSnippet, Name: snippet.Name, Cause: err}
	}

	if err := os.WriteFile(s.snippetPath(snippet.Name), data, FilesystemFilePermissions); err != nil {
		return &StorageError{Message: ErrMsgWriteSnippetFile, Name: snippet.Name, Cause: err}
	}

	snippet.ID = stored.ID
	snippet.CreatedAt = stored.CreatedAt
	snippet.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes a snippet by name.
func (s *FilesystemStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateSnippetNameForFilesystem(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	err := os.Remove(s.snippetPath(name))
	if os.IsNotExist(err) {
		return NewSnippetNotFoundError(name)
	}
	if err != nil {
		return &StorageError{Message: ErrMsgRemoveSnippetFile, Name: name, Cause: err}
	}
	return nil
}

// List returns snippets matching the query, ordered by name.
func (s *FilesystemStorage) List(ctx context.Context, query *SnippetQuery) ([]*Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	if query == nil {
		query = &SnippetQuery{}
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgListStorageDir, Name: s.root, Cause: err}
	}

	var results []*Snippet
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FilesystemSnippetExt) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), FilesystemSnippetExt)
		snippet, err := s.readSnippet(name)
		if err != nil {
			return nil, err
		}
		if matchesSnippetQuery(snippet, query) {
			results = append(results, snippet)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	if query.Offset > 0 {
		if query.Offset >= len(results) {
			return []*Snippet{}, nil
		}
		results = results[query.Offset:]
	}
	if query.Limit > 0 && len(results) > query.Limit {
		results = results[:query.Limit]
	}

	return results, nil
}

// Exists checks if a snippet with the given name exists.
func (s *FilesystemStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validateSnippetNameForFilesystem(name); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	_, err := os.Stat(s.snippetPath(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, &StorageError{Message: ErrMsgStatSnippetFile, Name: name, Cause: err}
	}
	return true, nil
}

// Close marks the storage as closed.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
