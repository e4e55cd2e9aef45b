// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Peel is the canonical application identifier used for filesystem paths and CLI branding.
	Peel = "peel"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is the default HTTP User-Agent sent to embed hosts and metadata APIs.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Accept is the default Accept header for page fetches.
	Accept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	// AcceptLanguage is the default Accept-Language header for page fetches.
	AcceptLanguage = "en-US,en;q=0.5"
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
