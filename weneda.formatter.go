package weneda

import (
	"context"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

// Formatter scans text for delimited placeholders and replaces each with the
// value produced by the first eligible registered resolver.
//
// A Formatter is safe for concurrent Format calls: all scan state is local
// to a call. The resolver list may be extended with Register between calls.
type Formatter struct {
	opener    string
	closer    string
	escape    string // empty means escape handling is disabled
	resolvers []Resolver
	mu        sync.RWMutex // protects resolvers
	logger    *zap.Logger
}

// New creates a Formatter with the given options.
// It returns a configuration error if the opener or closer is empty, if an
// escape token is set but empty, or if the escape equals a delimiter.
func New(opts ...Option) (*Formatter, error) {
	config := defaultFormatterConfig()
	for _, opt := range opts {
		opt(config)
	}

	if config.opener == "" {
		return nil, NewConfigurationError(ErrMsgEmptyOpener)
	}
	if config.closer == "" {
		return nil, NewConfigurationError(ErrMsgEmptyCloser)
	}
	if !config.noEscape && config.escape == "" {
		return nil, NewConfigurationError(ErrMsgEmptyEscape)
	}
	if config.escape != "" && (config.escape == config.opener || config.escape == config.closer) {
		return nil, NewConfigurationError(ErrMsgEscapeCollision)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Formatter{
		opener: config.opener,
		closer: config.closer,
		escape: config.escape,
		logger: logger,
	}

	for _, r := range config.resolvers {
		if err := f.Register(r); err != nil {
			return nil, err
		}
	}

	logger.Debug(LogMsgFormatterCreated,
		zap.String(LogFieldOpener, f.opener),
		zap.String(LogFieldCloser, f.closer),
		zap.String(LogFieldEscape, f.escape),
		zap.Int(LogFieldResolvers, len(f.resolvers)),
	)
	return f, nil
}

// MustNew creates a Formatter and panics if there's an error.
func MustNew(opts ...Option) *Formatter {
	f, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Register appends a resolver to the dispatch order.
// Dispatch is first-registered-wins; registration order is significant.
func (f *Formatter) Register(r Resolver) error {
	if r == nil {
		return NewTypeConflictError(ErrMsgNilResolver)
	}
	if r.Name() == "" {
		return NewTypeConflictError(ErrMsgEmptyResolverName)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.resolvers = append(f.resolvers, r)
	f.logger.Debug(LogMsgResolverRegistered, zap.String(LogFieldResolver, r.Name()))
	return nil
}

// MustRegister appends a resolver and panics if registration fails.
func (f *Formatter) MustRegister(r Resolver) {
	if err := f.Register(r); err != nil {
		panic(err)
	}
}

// Resolvers returns the names of all registered resolvers in dispatch order.
func (f *Formatter) Resolvers() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, len(f.resolvers))
	for i, r := range f.resolvers {
		names[i] = r.Name()
	}
	return names
}

// ResolverCount returns the number of registered resolvers.
func (f *Formatter) ResolverCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.resolvers)
}

// Opener returns the configured opener token.
func (f *Formatter) Opener() string { return f.opener }

// Closer returns the configured closer token.
func (f *Formatter) Closer() string { return f.closer }

// Escape returns the configured escape token, or "" if escaping is disabled.
func (f *Formatter) Escape() string { return f.escape }

// Format replaces placeholders in text and returns the result.
//
// The scan is a single left-to-right pass over a mutable buffer. Matched
// placeholders are resolved innermost-first via a stack of open positions;
// each replacement is spliced in place and the cursor continues after it, so
// substituted text is never re-scanned. Identical raw bodies are resolved
// once per call and reused from a memo. Unbalanced delimiters are never an
// error and remain literal text.
//
// Resolvers are invoked strictly sequentially. A resolver error aborts the
// call with no output.
func (f *Formatter) Format(ctx context.Context, text string) (string, error) {
	opener := f.opener
	closer := f.closer
	escape := f.escape
	openerLen := len(opener)
	closerLen := len(closer)
	escapeLen := len(escape)
	same := opener == closer

	// Snapshot the dispatch order so registrations between passes never
	// affect a pass already in flight.
	f.mu.RLock()
	resolvers := make([]Resolver, len(f.resolvers))
	copy(resolvers, f.resolvers)
	f.mu.RUnlock()

	buf := []byte(text)
	var stack []int
	memo := make(map[string]string)
	prevEscape := false
	index := 0

	for index < len(buf) {
		switch {
		case escapeLen > 0 && tokenAt(buf, escape, index):
			// Two escapes in a row collapse to one literal escape token.
			if prevEscape {
				buf = spliceOut(buf, index-escapeLen, index)
			}
			prevEscape = !prevEscape
			index += escapeLen

		// When opener and closer are identical, a token seen while a
		// placeholder is open must close it, not open another.
		case tokenAt(buf, opener, index) && !(same && len(stack) > 0):
			if !prevEscape {
				stack = append(stack, index)
			} else {
				prevEscape = false
				buf = spliceOut(buf, index-escapeLen, index)
			}
			index += openerLen

		case tokenAt(buf, closer, index):
			if prevEscape {
				prevEscape = false
				buf = spliceOut(buf, index-escapeLen, index)
				continue
			}
			if len(stack) == 0 {
				// Closer without a matching opener stays literal.
				index += closerLen
				continue
			}

			openIndex := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			raw := string(buf[openIndex+openerLen : index])

			replacement, ok := memo[raw]
			if !ok {
				var err error
				replacement, err = f.dispatch(ctx, resolvers, raw, len(stack))
				if err != nil {
					return "", err
				}
				memo[raw] = replacement
			} else {
				f.logger.Debug(LogMsgMemoHit, zap.String(LogFieldRawBody, raw))
			}

			buf = splice(buf, openIndex, index+closerLen, replacement)
			index = openIndex + len(replacement)

		default:
			index++
		}
	}

	f.logger.Debug(LogMsgFormatDone,
		zap.Int(LogFieldInputLen, len(text)),
		zap.Int(LogFieldOutputLen, len(buf)),
	)
	return string(buf), nil
}

// dispatch hands the raw body to the first eligible resolver and returns the
// replacement text. A resolver yielding no value, or no resolver being
// eligible, reconstructs the original delimited placeholder verbatim.
func (f *Formatter) dispatch(ctx context.Context, resolvers []Resolver, raw string, depth int) (string, error) {
	for _, r := range resolvers {
		if !patternEligible(r.Pattern(), raw) {
			continue
		}

		value, ok, err := r.Resolve(ctx, raw, depth)
		if err != nil {
			return "", NewResolverFailureError(r.Name(), raw, depth, err)
		}

		f.logger.Debug(LogMsgResolverMatched,
			zap.String(LogFieldResolver, r.Name()),
			zap.String(LogFieldRawBody, raw),
			zap.Int(LogFieldDepth, depth),
		)

		if !ok {
			break
		}
		return value, nil
	}

	f.logger.Debug(LogMsgNoResolverMatched,
		zap.String(LogFieldRawBody, raw),
		zap.Int(LogFieldDepth, depth),
	)
	return f.opener + raw + f.closer, nil
}

// patternEligible reports whether a resolver pattern claims the raw body.
// A nil pattern claims every body. A non-nil pattern must match at the very
// start of the body, so "greet:" claims "greet:Alex" but not "say greet:Alex".
func patternEligible(pattern *regexp.Regexp, raw string) bool {
	if pattern == nil {
		return true
	}
	loc := pattern.FindStringIndex(raw)
	return loc != nil && loc[0] == 0
}

// tokenAt reports whether tok occurs in buf starting at index i.
func tokenAt(buf []byte, tok string, i int) bool {
	if i+len(tok) > len(buf) {
		return false
	}
	return string(buf[i:i+len(tok)]) == tok
}

// spliceOut removes buf[start:end] in place.
func spliceOut(buf []byte, start, end int) []byte {
	return append(buf[:start], buf[end:]...)
}

// splice replaces buf[start:end] with repl, shifting the tail as needed.
func splice(buf []byte, start, end int, repl string) []byte {
	out := make([]byte, 0, len(buf)-(end-start)+len(repl))
	out = append(out, buf[:start]...)
	out = append(out, repl...)
	out = append(out, buf[end:]...)
	return out
}
