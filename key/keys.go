// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 20

// Network - these keys tune the HTTP layer shared by every host strategy.
const (
	NetworkTimeout            = "network.timeout"
	NetworkUserAgent          = "network.user_agent"
	NetworkFingerprintDomains = "network.fingerprint_domains"
)

// Resolver - these keys bound the peeling of nested embeds.
const (
	ResolverMaxDepth        = "resolver.max_depth"
	ResolverAdDomains       = "resolver.ad_domains"
	ResolverTrackingDomains = "resolver.tracking_domains"
	ResolverValidate        = "resolver.validate"
	ResolverConcurrency     = "resolver.concurrency"
)

// Episode Synchronizer - these keys point at the metadata services used for absolute numbering.
const (
	SyncTimeout       = "sync.timeout"
	SyncArmAPI        = "sync.arm_api"
	SyncCinemetaAPI   = "sync.cinemeta_api"
	SyncJikanAPI      = "sync.jikan_api"
	SyncTMDBWeb       = "sync.tmdb_web"
	SyncToleranceDays = "sync.tolerance_days"
)

const (
	CatalogURL = "catalog.url"
)

// Diagnostic Logging - these keys manage the persistence and verbosity of application logs.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// Command-Line Interface - these keys manage the general behavior of CLI interactions.
const (
	CliColored = "cli.colored"
	CliIcons   = "cli.icons"
)
