package weneda

import (
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Configuration errors
	ErrMsgEmptyOpener     = "opener must be a non-empty string"
	ErrMsgEmptyCloser     = "closer must be a non-empty string"
	ErrMsgEmptyEscape     = "escape must be a non-empty string when set"
	ErrMsgEscapeCollision = "escape must differ from opener and closer"

	// Registration errors
	ErrMsgNilResolver       = "resolver cannot be nil"
	ErrMsgEmptyResolverName = "resolver name cannot be empty"
	ErrMsgNilResolveFunc    = "resolver function cannot be nil"

	// Resolution errors
	ErrMsgResolverFailed      = "placeholder resolution failed"
	ErrMsgSnippetLookupFailed = "snippet storage lookup failed"
)

// Error code constants for categorization
const (
	ErrCodeConfig   = "WENEDA_CONFIG"
	ErrCodeRegistry = "WENEDA_REGISTRY"
	ErrCodeResolve  = "WENEDA_RESOLVE"
)

// NewConfigurationError creates an error for invalid delimiter or escape setup.
// It is returned by New before any formatting occurs.
func NewConfigurationError(msg string) error {
	return cuserr.NewValidationError(ErrCodeConfig, msg)
}

// NewTypeConflictError creates an error for an invalid resolver passed to Register.
// The registry is unaffected by the failed call.
func NewTypeConflictError(msg string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, msg)
}

// NewResolverFailureError wraps an error raised by a resolver during Format.
// It carries the resolver name, the raw placeholder body, and the nesting
// depth as metadata for diagnostics.
func NewResolverFailureError(resolverName, rawBody string, depth int, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeResolve, ErrMsgResolverFailed).
		WithMetadata(MetaKeyResolver, resolverName).
		WithMetadata(MetaKeyRawBody, rawBody).
		WithMetadata(MetaKeyDepth, strconv.Itoa(depth))
}

// NewSnippetLookupError wraps a storage failure hit while resolving a
// snippet placeholder, carrying the snippet name as metadata.
func NewSnippetLookupError(snippetName string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeResolve, ErrMsgSnippetLookupFailed).
		WithMetadata(MetaKeySnippet, snippetName)
}
