package oic

import (
	"context"
	"time"
)

// Client is the entry point to all OIC resource clients. One Client owns one
// credential record and one token manager; construct a separate Client per
// profile.
type Client interface {
	Integrations() IntegrationsClient
	Connections() ConnectionsClient
	Libraries() LibrariesClient
	Lookups() LookupsClient
	Packages() PackagesClient
	Monitoring() MonitoringClient
}

// IntegrationsClient manages integration lifecycle operations.
type IntegrationsClient interface {
	List(ctx context.Context, params *QueryParams) (*ListResponse[Integration], error)
	ListAll(ctx context.Context, params *QueryParams) ([]Integration, error)
	Get(ctx context.Context, id string) (*Integration, error)
	Create(ctx context.Context, body map[string]interface{}) (*Integration, error)
	Update(ctx context.Context, id string, body map[string]interface{}) (*Integration, error)
	Delete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) (*Integration, error)
	Deactivate(ctx context.Context, id string, stopSchedule bool) (*Integration, error)
	Clone(ctx context.Context, id string, name, identifier string) (*Integration, error)
	Export(ctx context.Context, id string) ([]byte, error)
	Import(ctx context.Context, filename string, archive []byte) (*Integration, error)
	ResumeSchedule(ctx context.Context, id string) error
	ListTypes(ctx context.Context) ([]map[string]interface{}, error)
	GetType(ctx context.Context, typeID string) (map[string]interface{}, error)
}

// ConnectionsClient manages connections.
type ConnectionsClient interface {
	List(ctx context.Context, params *QueryParams) (*ListResponse[Connection], error)
	Get(ctx context.Context, id string) (*Connection, error)
	Create(ctx context.Context, body map[string]interface{}) (*Connection, error)
	Update(ctx context.Context, id string, body map[string]interface{}) (*Connection, error)
	Delete(ctx context.Context, id string) error
	Test(ctx context.Context, id string) (*ConnectionTestResult, error)
	Clone(ctx context.Context, id string, name, identifier string) (*Connection, error)
	ListTypes(ctx context.Context) ([]map[string]interface{}, error)
	GetType(ctx context.Context, typeID string) (map[string]interface{}, error)
}

// LibrariesClient manages JavaScript libraries.
type LibrariesClient interface {
	List(ctx context.Context, params *QueryParams) (*ListResponse[Library], error)
	Get(ctx context.Context, id string) (*Library, error)
	Create(ctx context.Context, body map[string]interface{}) (*Library, error)
	Update(ctx context.Context, id string, body map[string]interface{}) (*Library, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, id string) ([]byte, error)
	Import(ctx context.Context, filename string, archive []byte) (*Library, error)
	ListTypes(ctx context.Context) ([]map[string]interface{}, error)
	GetType(ctx context.Context, typeID string) (map[string]interface{}, error)
}

// LookupsClient manages lookup tables.
type LookupsClient interface {
	List(ctx context.Context, params *QueryParams) (*ListResponse[Lookup], error)
	Get(ctx context.Context, id string) (*Lookup, error)
	Create(ctx context.Context, body map[string]interface{}) (*Lookup, error)
	Update(ctx context.Context, id string, body map[string]interface{}) (*Lookup, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, id string) ([]byte, error)
	Import(ctx context.Context, filename string, archive []byte) (*Lookup, error)
	GetData(ctx context.Context, id string) (map[string]interface{}, error)
	UpdateData(ctx context.Context, id string, body map[string]interface{}) (map[string]interface{}, error)
}

// PackagesClient manages packages, the platform's import/export containers.
type PackagesClient interface {
	List(ctx context.Context, params *QueryParams) (*ListResponse[Package], error)
	Get(ctx context.Context, id string) (*Package, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, id string) ([]byte, error)
	Import(ctx context.Context, filename string, archive []byte) (*Package, error)
	Resources(ctx context.Context, id string) ([]map[string]interface{}, error)
}

// MonitoringClient exposes instance tracking and error reporting.
type MonitoringClient interface {
	ListInstances(ctx context.Context, params *QueryParams) (*ListResponse[Instance], error)
	GetInstance(ctx context.Context, id string) (*Instance, error)
	GetInstanceActivities(ctx context.Context, id string) ([]map[string]interface{}, error)
	GetInstancePayload(ctx context.Context, instanceID, activityID, direction string) (map[string]interface{}, error)
	ResubmitInstance(ctx context.Context, id string) error
	PurgeInstances(ctx context.Context, body map[string]interface{}) error
	IntegrationStats(ctx context.Context, params *QueryParams) (map[string]interface{}, error)
	ListErrors(ctx context.Context, params *QueryParams) ([]map[string]interface{}, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an oic.Client.
//
// InstanceURL and AuthURL are required. Authentication uses the OAuth2
// client_credentials grant against AuthURL with Username/Password as HTTP
// basic auth credentials, the way the OIC identity service expects.
//
// The retry knobs apply only to transient failures (429, 5xx, network). An
// authorization failure triggers exactly one token renewal and one retry of
// the original request, independent of RetryMax.
type Config struct {
	// InstanceURL is the base URL of the OIC instance
	// (e.g. "https://myinstance.integration.ocp.oraclecloud.com").
	InstanceURL string
	// AuthURL is the full OAuth2 token endpoint of the identity service.
	AuthURL string
	// IdentityDomain is sent as the integrationInstance query parameter on
	// every resource call.
	IdentityDomain string
	// Username and Password authenticate the token request (basic auth).
	Username string
	Password string
	// Scope is the optional OAuth2 scope for the token request.
	Scope string

	// Timeout bounds every HTTP call, token requests included. Defaults to
	// constants.DefaultHTTPTimeout when zero.
	Timeout time.Duration
	// SkipTLSVerify disables certificate verification. Intended for test
	// instances behind self-signed certificates only.
	SkipTLSVerify bool

	// TokenExpiryMargin is subtracted from the server-reported token lifetime
	// so renewal happens before actual expiry. Defaults to 60s when zero.
	TokenExpiryMargin time.Duration

	// RetryMax is the maximum number of attempts for transient failures.
	// Defaults to 3 when zero.
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the exponential backoff between
	// transient retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
