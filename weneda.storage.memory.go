package weneda

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory implementation of SnippetStorage.
// It is primarily intended for testing and development.
// All data is lost when the process terminates.
type MemoryStorage struct {
	mu       sync.RWMutex
	snippets map[string]*Snippet
	closed   bool
}

// MemoryStorageDriver is the driver for creating MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage instance.
// The connection string is ignored for memory storage.
func (d *MemoryStorageDriver) Open(connectionString string) (SnippetStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory snippet storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		snippets: make(map[string]*Snippet),
	}
}

// Get retrieves a snippet by name.
func (s *MemoryStorage) Get(ctx context.Context, name string) (*Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	snippet, ok := s.snippets[name]
	if !ok {
		return nil, NewSnippetNotFoundError(name)
	}

	return copySnippet(snippet), nil
}

// Save stores a snippet, replacing any existing snippet with the same name.
func (s *MemoryStorage) Save(ctx context.Context, snippet *Snippet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if snippet.Name == "" {
		return &StorageError{Message: ErrMsgEmptySnippetName}
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

	// An existing snippet keeps its identity; only content and metadata move.
	if existing, ok := s.snippets[snippet.Name]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	}

	snippet.ID = stored.ID
	snippet.CreatedAt = stored.CreatedAt
	snippet.UpdatedAt = stored.UpdatedAt

	s.snippets[snippet.Name] = stored
	return nil
}

// Delete removes a snippet by name.
func (s *MemoryStorage) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	if _, ok := s.snippets[name]; !ok {
		return NewSnippetNotFoundError(name)
	}

	delete(s.snippets, name)
	return nil
}

// List returns snippets matching the query, ordered by name.
func (s *MemoryStorage) List(ctx context.Context, query *SnippetQuery) ([]*Snippet, error) {
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

	var results []*Snippet
	for _, snippet := range s.snippets {
		if matchesSnippetQuery(snippet, query) {
			results = append(results, copySnippet(snippet))
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
func (s *MemoryStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, NewStorageClosedError()
	}

	_, ok := s.snippets[name]
	return ok, nil
}

// Close marks the storage as closed.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.snippets = nil
	return nil
}

// generateSnippetID generates a unique snippet ID.
func generateSnippetID() SnippetID {
	return SnippetID("snip_" + uuid.NewString())
}
