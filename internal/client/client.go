// Package client implements the oic.Client facade and the per-resource
// clients behind it.
package client

import (
	"github.com/WolVesz/oic-devops/internal/auth"
	"github.com/WolVesz/oic-devops/internal/constants"
	"github.com/WolVesz/oic-devops/internal/http"
	"github.com/WolVesz/oic-devops/pkg/oic"
)

// Client implements the oic.Client interface. One Client holds one token
// manager, so every resource client derived from it shares the same
// credential and renewal state.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       oic.Logger

	// Resource clients
	integrations oic.IntegrationsClient
	connections  oic.ConnectionsClient
	libraries    oic.LibrariesClient
	lookups      oic.LookupsClient
	packages     oic.PackagesClient
	monitoring   oic.MonitoringClient
}

// createTokenManager creates the token manager from config credentials.
// Returns nil when no credentials are present, which leaves requests
// unauthenticated (useful against test servers).
func createTokenManager(config *oic.Config) auth.TokenManager {
	if config.Username == "" || config.Password == "" {
		return nil
	}

	margin := config.TokenExpiryMargin
	if margin <= 0 {
		margin = constants.DefaultTokenExpiryMargin
	}

	return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
		TokenURL:      config.AuthURL,
		Username:      config.Username,
		Password:      config.Password,
		Scope:         config.Scope,
		ExpiryMargin:  margin,
		Timeout:       config.Timeout,
		SkipTLSVerify: config.SkipTLSVerify,
	})
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *oic.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.IdentityDomain != "" {
		httpOpts = append(httpOpts, http.WithIntegrationInstance(config.IdentityDomain))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.SkipTLSVerify {
		httpOpts = append(httpOpts, http.WithSkipTLSVerify(true))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new OIC API client.
func New(config *oic.Config) (*Client, error) {
	if config == nil {
		return nil, oic.ErrConfigRequired
	}

	if config.InstanceURL == "" {
		return nil, oic.ErrInstanceURLRequired
	}

	tokenManager := createTokenManager(config)
	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(config.InstanceURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.InstanceURL,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenManager creates a new OIC API client with a custom token
// manager, bypassing credential-based construction.
func NewWithTokenManager(config *oic.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, oic.ErrConfigRequired
	}

	if config.InstanceURL == "" {
		return nil, oic.ErrInstanceURLRequired
	}

	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(config.InstanceURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.InstanceURL,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.integrations = NewIntegrationsClient(c.httpClient)
	c.connections = NewConnectionsClient(c.httpClient)
	c.libraries = NewLibrariesClient(c.httpClient)
	c.lookups = NewLookupsClient(c.httpClient)
	c.packages = NewPackagesClient(c.httpClient)
	c.monitoring = NewMonitoringClient(c.httpClient)
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// Resource client accessors

// Integrations implements oic.Client.Integrations.
func (c *Client) Integrations() oic.IntegrationsClient {
	return c.integrations
}

// Connections implements oic.Client.Connections.
func (c *Client) Connections() oic.ConnectionsClient {
	return c.connections
}

// Libraries implements oic.Client.Libraries.
func (c *Client) Libraries() oic.LibrariesClient {
	return c.libraries
}

// Lookups implements oic.Client.Lookups.
func (c *Client) Lookups() oic.LookupsClient {
	return c.lookups
}

// Packages implements oic.Client.Packages.
func (c *Client) Packages() oic.PackagesClient {
	return c.packages
}

// Monitoring implements oic.Client.Monitoring.
func (c *Client) Monitoring() oic.MonitoringClient {
	return c.monitoring
}

// loggerAdapter adapts oic.Logger to http.Logger.
type loggerAdapter struct {
	logger oic.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
