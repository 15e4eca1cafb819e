package weneda

// Delimiter constants - single braces match the most common placeholder style
const (
	DefaultOpener = "{"
	DefaultCloser = "}"
	DefaultEscape = "\\"
)

// Built-in resolver names
const (
	ResolverNameSnippet = "snippet"
)

// Placeholder body prefix handled by the snippet resolver
const (
	SnippetBodyPrefix = "snippet:"
)

// Log message constants
const (
	LogMsgFormatterCreated   = "formatter created"
	LogMsgResolverRegistered = "resolver registered"
	LogMsgResolverMatched    = "resolver matched placeholder"
	LogMsgNoResolverMatched  = "no resolver matched placeholder"
	LogMsgMemoHit            = "placeholder served from memo"
	LogMsgFormatDone         = "format pass completed"
	LogMsgSnippetResolved    = "snippet resolved from storage"
	LogMsgSnippetMissing     = "snippet not found in storage"
)

// Log field constants
const (
	LogFieldOpener    = "opener"
	LogFieldCloser    = "closer"
	LogFieldEscape    = "escape"
	LogFieldResolver  = "resolver"
	LogFieldRawBody   = "raw_body"
	LogFieldDepth     = "depth"
	LogFieldSnippet   = "snippet"
	LogFieldResolvers = "resolvers"
	LogFieldInputLen  = "input_len"
	LogFieldOutputLen = "output_len"
)

// Metadata key constants for error context
const (
	MetaKeyResolver = "resolver"
	MetaKeyRawBody  = "raw_body"
	MetaKeyDepth    = "depth"
	MetaKeySnippet  = "snippet"
)

// Filesystem storage constants
const (
	FilesystemDirPermissions  = 0o755
	FilesystemFilePermissions = 0o644
	FilesystemSnippetExt      = ".yaml"
)

// Storage driver name constants
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
)
