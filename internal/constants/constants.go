package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoint defaults.
const (
	// DefaultBaseURL is the Fastly management API endpoint.
	DefaultBaseURL = "https://api.fastly.com"

	// DefaultUserAgent is sent when the caller does not set one.
	DefaultUserAgent = "fastly-go/1.0.0"

	// DefaultProfile is the keyring profile used when none is named.
	DefaultProfile = "default"
)

// Fastly HTTP headers.
const (
	// HeaderAPIKey carries the API token on every request.
	HeaderAPIKey = "Fastly-Key"

	// HeaderRateLimitRemaining reports the write quota left in the current window.
	HeaderRateLimitRemaining = "Fastly-RateLimit-Remaining"

	// HeaderRateLimitReset reports when the write quota resets, as Unix seconds.
	HeaderRateLimitReset = "Fastly-RateLimit-Reset"

	// ContentTypeForm is the body encoding used by create and update calls.
	ContentTypeForm = "application/x-www-form-urlencoded"

	// ContentTypeJSON is the accepted response encoding.
	ContentTypeJSON = "application/json"
)

// Rate-limit defaults.
const (
	// DefaultRateLimit is assumed when Fastly-RateLimit-Remaining is absent.
	DefaultRateLimit = 1000

	// DefaultRateLimitReset is assumed when Fastly-RateLimit-Reset is absent.
	DefaultRateLimitReset = 0
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry and concurrency limits.
const (
	// DefaultRetryMax is zero: transport failures are surfaced, not retried.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait between opt-in retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between opt-in retries.
	DefaultRetryWaitMax = 10 * time.Second

	// DefaultConcurrencyLimit limits concurrent batch operations.
	DefaultConcurrencyLimit = 3
)

// Cache defaults.
const (
	// DefaultCacheSize is the maximum number of entries held by the memory cache.
	DefaultCacheSize = 256

	// DefaultCacheTTL is how long a GET response stays cached.
	DefaultCacheTTL = 30 * time.Second

	// DefaultNATSBucket is the JetStream key-value bucket used for caching.
	DefaultNATSBucket = "fastly_cache"

	// DefaultRedisKeyPrefix namespaces cache keys in Redis.
	DefaultRedisKeyPrefix = "fastly:cache:"
)

// Circuit breaker defaults.
const (
	// CircuitBreakerThreshold is the number of failures before the circuit opens.
	CircuitBreakerThreshold = 5

	// CircuitBreakerTimeout is how long the circuit stays open.
	CircuitBreakerTimeout = 60 * time.Second

	// CircuitBreakerSuccessThreshold is the number of successes needed to close.
	CircuitBreakerSuccessThreshold = 2
)

// HTTP status boundaries used to classify responses.
const (
	// HTTPStatusClientErrorMin is the first status treated as an error.
	HTTPStatusClientErrorMin = 400

	// HTTPStatusServerErrorMin is the first server error status.
	HTTPStatusServerErrorMin = 500

	// HTTPStatusErrorMax is the last status treated as an error.
	HTTPStatusErrorMax = 599
)

// Validation and limits.
const (
	// MinimumArgumentCount is the minimum number of command line arguments.
	MinimumArgumentCount = 2

	// HealthcheckNameLength is the length of generated healthcheck names.
	HealthcheckNameLength = 7

	// SecretVisibleChars is how many characters of a secret are shown.
	SecretVisibleChars = 4
)

// UI and display constants.
const (
	// CheckMarkSymbol is used to indicate current/active items.
	CheckMarkSymbol = "✓"

	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// State constants.
const (
	// StatusOpen indicates an open circuit.
	StatusOpen = "open"

	// StatusHalfOpen indicates a half-open circuit.
	StatusHalfOpen = "half-open"

	// StatusClosed indicates a closed circuit.
	StatusClosed = "closed"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// CRUD operation constants.
const (
	// OperationCreate for create operations.
	OperationCreate = "create"

	// OperationUpdate for update operations.
	OperationUpdate = "update"

	// OperationDelete for delete operations.
	OperationDelete = "delete"

	// OperationList for list operations.
	OperationList = "list"
)
