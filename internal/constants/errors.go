package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPITokenConfigured = errors.New("no API token configured, use 'fastly login' or set FASTLY_API_TOKEN")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrProfileNotFound      = errors.New("profile not found in keyring")
	ErrEmptyToken           = errors.New("API token must not be empty")
)

// Input validation errors.
var (
	ErrServiceRequired        = errors.New("service is required (use --service or 'fastly config set service')")
	ErrServiceVersionRequired = errors.New("service version is required (use --version)")
	ErrNameRequired           = errors.New("name is required")
	ErrInvalidSetFlag         = errors.New("invalid --set value, expected key=value")
	ErrUnsupportedProvider    = errors.New("unsupported logging provider")
	ErrUnsupportedOutput      = errors.New("unsupported output format")
)

// Resolution errors.
var (
	ErrServiceNotFound   = errors.New("service not found")
	ErrAmbiguousService  = errors.New("service name is ambiguous")
	ErrEmptyServiceQuery = errors.New("empty service name")
)
