package weneda

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// snippetBodyPattern gates the snippet resolver to "snippet:" bodies.
var snippetBodyPattern = regexp.MustCompile(`^snippet:`)

// SnippetResolver resolves placeholders of the form {snippet:<name>} by
// looking the name up in a SnippetStorage. A missing snippet yields no
// value, leaving the placeholder verbatim in the output; any other storage
// failure aborts the Format call.
type SnippetResolver struct {
	storage SnippetStorage
	logger  *zap.Logger
}

// NewSnippetResolver creates a storage-backed snippet resolver.
func NewSnippetResolver(storage SnippetStorage) *SnippetResolver {
	return &SnippetResolver{
		storage: storage,
		logger:  zap.NewNop(),
	}
}

// WithLogger sets the resolver's logger and returns the resolver.
func (r *SnippetResolver) WithLogger(logger *zap.Logger) *SnippetResolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Name returns the resolver's identifier.
func (r *SnippetResolver) Name() string {
	return ResolverNameSnippet
}

// Pattern returns the snippet body pattern.
func (r *SnippetResolver) Pattern() *regexp.Regexp {
	return snippetBodyPattern
}

// Resolve fetches the snippet content from storage.
func (r *SnippetResolver) Resolve(ctx context.Context, raw string, depth int) (string, bool, error) {
	name := strings.TrimPrefix(raw, SnippetBodyPrefix)

	snippet, err := r.storage.Get(ctx, name)
	if err != nil {
		if IsSnippetNotFound(err) {
			r.logger.Debug(LogMsgSnippetMissing, zap.String(LogFieldSnippet, name))
			return "", false, nil
		}
		return "", false, NewSnippetLookupError(name, err)
	}

	r.logger.Debug(LogMsgSnippetResolved,
		zap.String(LogFieldSnippet, name),
		zap.Int(LogFieldDepth, depth),
	)
	return snippet.Content, true, nil
}
