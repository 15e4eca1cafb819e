package weneda

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Formatter.
type Option func(*formatterConfig)

// formatterConfig holds the internal configuration for a Formatter.
type formatterConfig struct {
	opener    string
	closer    string
	escape    string
	noEscape  bool
	logger    *zap.Logger
	resolvers []Resolver
}

// defaultFormatterConfig returns the default formatter configuration.
func defaultFormatterConfig() *formatterConfig {
	return &formatterConfig{
		opener: DefaultOpener,
		closer: DefaultCloser,
		escape: DefaultEscape,
		logger: nil,
	}
}

// WithDelimiters sets the opener and closer tokens.
// Both must be non-empty; they may be equal.
// Default: "{" and "}"
func WithDelimiters(opener, closer string) Option {
	return func(c *formatterConfig) {
		c.opener = opener
		c.closer = closer
	}
}

// WithEscape sets the escape token. It must be non-empty and must differ
// from both the opener and the closer.
// Default: "\"
func WithEscape(escape string) Option {
	return func(c *formatterConfig) {
		c.escape = escape
		c.noEscape = false
	}
}

// WithoutEscape disables escape handling entirely.
func WithoutEscape() Option {
	return func(c *formatterConfig) {
		c.escape = ""
		c.noEscape = true
	}
}

// WithLogger sets the logger for the formatter.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *formatterConfig) {
		c.logger = logger
	}
}

// WithResolvers registers resolvers at construction time, in the given
// order. Equivalent to calling Register for each after New.
func WithResolvers(resolvers ...Resolver) Option {
	return func(c *formatterConfig) {
		c.resolvers = append(c.resolvers, resolvers...)
	}
}

// WithSnippetStorage registers a snippet resolver backed by the given
// storage, handling {snippet:<name>} placeholders.
func WithSnippetStorage(storage SnippetStorage) Option {
	return func(c *formatterConfig) {
		c.resolvers = append(c.resolvers, NewSnippetResolver(storage))
	}
}
