package weneda

import (
	"context"
	"regexp"
)

// Resolver is the interface that placeholder handlers must implement.
// Each resolver produces replacement text for raw placeholder bodies
// it is eligible for.
type Resolver interface {
	// Name returns the resolver's identifier, used in logs and error metadata.
	Name() string

	// Pattern returns the pattern gating this resolver, or nil if the
	// resolver is eligible for every raw body that reaches it. A non-nil
	// pattern must match at the start of the body to claim it.
	Pattern() *regexp.Regexp

	// Resolve produces the replacement for a raw placeholder body.
	// raw is the exact text between a matched opener and closer, with any
	// nested placeholders already substituted. depth is the number of
	// placeholders still open around this one (zero for top level).
	//
	// Returning ok=false signals "no value": the placeholder is left
	// verbatim in the output. This is distinct from returning an empty
	// string, which replaces the placeholder with nothing.
	// A non-nil error aborts the whole Format call.
	Resolve(ctx context.Context, raw string, depth int) (value string, ok bool, err error)
}

// ResolverFunc is a convenience type for creating resolvers from functions.
type ResolverFunc struct {
	name    string
	pattern *regexp.Regexp
	fn      func(ctx context.Context, raw string, depth int) (string, bool, error)
}

// NewResolverFunc creates a function-based resolver.
// pattern may be nil to make the resolver eligible for any raw body.
func NewResolverFunc(
	name string,
	pattern *regexp.Regexp,
	fn func(ctx context.Context, raw string, depth int) (string, bool, error),
) *ResolverFunc {
	return &ResolverFunc{
		name:    name,
		pattern: pattern,
		fn:      fn,
	}
}

// Name returns the resolver's identifier.
func (r *ResolverFunc) Name() string {
	return r.name
}

// Pattern returns the gating pattern, or nil.
func (r *ResolverFunc) Pattern() *regexp.Regexp {
	return r.pattern
}

// Resolve executes the wrapped function.
func (r *ResolverFunc) Resolve(ctx context.Context, raw string, depth int) (string, bool, error) {
	return r.fn(ctx, raw, depth)
}

// MapResolver resolves placeholder bodies by exact lookup in a string map.
// It has no pattern, so it is eligible for every body that reaches it;
// bodies absent from the map yield no value.
type MapResolver struct {
	name   string
	values map[string]string
}

// NewMapResolver creates a map-backed resolver.
// The map is used as provided; callers must not mutate it during a Format call.
func NewMapResolver(name string, values map[string]string) *MapResolver {
	return &MapResolver{
		name:   name,
		values: values,
	}
}

// Name returns the resolver's identifier.
func (r *MapResolver) Name() string {
	return r.name
}

// Pattern returns nil; a MapResolver is eligible for any raw body.
func (r *MapResolver) Pattern() *regexp.Regexp {
	return nil
}

// Resolve looks up the raw body in the map.
func (r *MapResolver) Resolve(ctx context.Context, raw string, depth int) (string, bool, error) {
	value, ok := r.values[raw]
	return value, ok, nil
}
