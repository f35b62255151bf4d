package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests. Exports of
	// large integration archives can be slow, matching the platform's own
	// generous default.
	DefaultHTTPTimeout = 300 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for transient failures.
const (
	// DefaultRetryMax is the default maximum number of attempts for 429/5xx
	// and network-level failures.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum backoff between retries.
	DefaultRetryWaitMin = 200 * time.Millisecond

	// DefaultRetryWaitMax is the maximum backoff between retries.
	DefaultRetryWaitMax = 2 * time.Second
)

// Token lifecycle.
const (
	// DefaultTokenExpiryMargin is subtracted from the server-reported token
	// lifetime so renewal happens before actual expiry.
	DefaultTokenExpiryMargin = 60 * time.Second

	// TokenValidityBuffer is the minimum remaining lifetime for a cached
	// token to still be considered usable.
	TokenValidityBuffer = 30 * time.Second
)

// API path roots for each resource family.
const (
	APIPathIntegrations = "/ic/api/integration/v1/integrations"
	APIPathConnections  = "/ic/api/integration/v1/connections"
	APIPathLibraries    = "/ic/api/integration/v1/libraries"
	APIPathLookups      = "/ic/api/integration/v1/lookups"
	APIPathPackages     = "/ic/api/integration/v1/packages"
	APIPathMonitoring   = "/ic/api/integration/v1/monitoring"
)

// Integration status values used by lifecycle transitions.
const (
	IntegrationStatusActivated  = "ACTIVATED"
	IntegrationStatusConfigured = "CONFIGURED"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files, which hold
	// credentials.
	ConfigFilePerm = 0600

	// ExportFilePerm is the permission for exported archive files.
	ExportFilePerm = 0644
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Display limits.
const (
	// JSONIndentSize is the number of spaces for JSON and YAML indentation.
	JSONIndentSize = 2

	// DefaultListLimit is the default page size for list commands.
	DefaultListLimit = 50
)
