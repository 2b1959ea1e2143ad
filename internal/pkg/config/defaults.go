package config

// Default values for configuration.
const (
	// Export defaults
	DefaultOutputDir           = "export"
	DefaultInternalLinksDomain = "https://t.me/"
	DefaultSliceSize           = 100

	// Server defaults
	DefaultServerHost             = "0.0.0.0"
	DefaultServerPort             = 8080
	DefaultShutdownTimeoutSeconds = 15
	DefaultMaxUploadSizeMB        = 32

	// Processing defaults
	DefaultTaskTimeoutSeconds = 600
	DefaultCacheTTLMinutes    = 60

	// Logging defaults
	DefaultLogLevel = "info"
)
