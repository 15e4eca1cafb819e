package weneda

import (
	"context"
	"strings"
	"sync"
	"time"
)

// SnippetID is a unique identifier for a stored snippet.
// Uses prefixed UUID format (e.g., "snip_2c19b9e3-...").
type SnippetID string

// Snippet is a named reusable piece of text that resolvers can pull into
// formatted output.
type Snippet struct {
	// ID is the unique identifier for this snippet.
	ID SnippetID `json:"id" yaml:"id"`

	// Name is the snippet name used for lookups, unique per storage.
	Name string `json:"name" yaml:"name"`

	// Content is the snippet text.
	Content string `json:"content" yaml:"content"`

	// Metadata contains arbitrary key-value pairs for user-defined data.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Tags for categorization and querying.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// CreatedAt is when the snippet was first saved.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the snippet was last modified.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// SnippetQuery defines filters for listing snippets.
type SnippetQuery struct {
	// NamePrefix filters to names starting with this prefix.
	NamePrefix string

	// NameContains filters to names containing this substring.
	NameContains string

	// Tags filters to snippets having ALL specified tags.
	Tags []string

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip (for pagination).
	Offset int
}

// SnippetStorage is the interface for pluggable snippet backends.
// Implementations must be safe for concurrent use.
//
// The interface follows patterns from database/sql for familiarity:
// context for cancellation and timeouts, explicit error returns, and
// Close for resource cleanup.
type SnippetStorage interface {
	// Get retrieves a snippet by name.
	// Returns a snippet-not-found error if the name doesn't exist.
	Get(ctx context.Context, name string) (*Snippet, error)

	// Save stores a snippet, replacing any existing snippet with the same
	// name. The snippet's ID, CreatedAt, and UpdatedAt fields are set by
	// the storage implementation.
	Save(ctx context.Context, snippet *Snippet) error

	// Delete removes a snippet by name.
	// Returns a snippet-not-found error if the name doesn't exist.
	Delete(ctx context.Context, name string) error

	// List returns snippets matching the query, ordered by name.
	List(ctx context.Context, query *SnippetQuery) ([]*Snippet, error)

	// Exists checks if a snippet with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// Close releases any resources held by the storage.
	// After Close, the storage should not be used.
	Close() error
}

// StorageDriver is a factory for creating storage instances.
// Drivers register themselves during init().
type StorageDriver interface {
	// Open creates a new storage instance with the given connection string.
	// The format of the connection string is driver-specific.
	Open(connectionString string) (SnippetStorage, error)
}

// Storage driver registry
var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver registers a storage driver by name.
// This is typically called from a driver's init() function.
// Panics if a driver with the same name is already registered.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens a storage connection using the named driver.
// The connection string format is driver-specific.
//
// Example:
//
//	storage, err := weneda.OpenStorage("memory", "")
//	storage, err := weneda.OpenStorage("filesystem", "/path/to/snippets")
func OpenStorage(driverName, connectionString string) (SnippetStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, NewStorageDriverNotFoundError(driverName)
	}

	return driver.Open(connectionString)
}

// ListStorageDrivers returns the names of all registered storage drivers.
func ListStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	return names
}

// Storage error message constants
const (
	ErrMsgNilStorageDriver        = "storage driver is nil"
	ErrMsgDriverAlreadyRegistered = "storage driver already registered"
	ErrMsgStorageDriverNotFound   = "storage driver not found"
	ErrMsgStorageClosed           = "storage is closed"
	ErrMsgSnippetNotFound         = "snippet not found"
	ErrMsgEmptySnippetName        = "snippet name cannot be empty"
	ErrMsgInvalidSnippetName      = "snippet name contains invalid characters"
)

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Name    string
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Name != "" {
		return e.Message + ": " + e.Name
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageDriverNotFoundError creates an error for a missing storage driver.
func NewStorageDriverNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgStorageDriverNotFound,
		Name:    name,
	}
}

// NewSnippetNotFoundError creates an error for a missing snippet.
func NewSnippetNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgSnippetNotFound,
		Name:    name,
	}
}

// NewStorageClosedError creates an error for operations on closed storage.
func NewStorageClosedError() error {
	return &StorageError{
		Message: ErrMsgStorageClosed,
	}
}

// IsSnippetNotFound reports whether err is a snippet-not-found storage error.
func IsSnippetNotFound(err error) bool {
	storageErr, ok := err.(*StorageError)
	return ok && storageErr.Message == ErrMsgSnippetNotFound
}

// copySnippet creates a deep copy of a Snippet.
func copySnippet(s *Snippet) *Snippet {
	if s == nil {
		return nil
	}
	return &Snippet{
		ID:        s.ID,
		Name:      s.Name,
		Content:   s.Content,
		Metadata:  copyStringMap(s.Metadata),
		Tags:      copyStringSlice(s.Tags),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// copyStringMap creates a copy of a string map.
func copyStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	result := make(map[string]string, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// copyStringSlice creates a copy of a string slice.
func copyStringSlice(s []string) []string {
	if s == nil {
		return nil
	}
	result := make([]string, len(s))
	copy(result, s)
	return result
}

// matchesSnippetQuery checks if a snippet matches all query filters.
func matchesSnippetQuery(s *Snippet, query *SnippetQuery) bool {
	if query.NamePrefix != "" && !strings.HasPrefix(s.Name, query.NamePrefix) {
		return false
	}
	if query.NameContains != "" && !strings.Contains(s.Name, query.NameContains) {
		return false
	}
	for _, tag := range query.Tags {
		if !containsString(s.Tags, tag) {
			return false
		}
	}
	return true
}

// containsString checks if a slice contains a string.
func containsString(slice []string, s string) bool {
	for _, item := range slice {
		if item == s {
			return true
		}
	}
	return false
}
