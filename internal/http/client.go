// Package http provides the HTTP request layer shared by all resource
// clients: bearer-token attachment, error classification, the single
// renew-and-retry cycle on authorization failures, and bounded backoff for
// transient failures.
package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/WolVesz/oic-devops/internal/constants"
	"github.com/WolVesz/oic-devops/pkg/oic"
	"github.com/hashicorp/go-retryablehttp"
)

// TokenManager supplies and renews bearer tokens for outbound requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one outbound API call. It is constructed by a resource
// client and consumed once.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-marshaled unless it is a []byte, which is sent as-is.
	Body    interface{}
	Headers map[string]string
}

// Response is the outcome of a successful API call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client wraps outbound HTTP calls with token handling and error
// classification.
type Client struct {
	baseURL             string
	tokenManager        TokenManager
	httpClient          *retryablehttp.Client
	logger              Logger
	debug               bool
	userAgent           string
	integrationInstance string
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets a structured logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes the transient-failure retry budget.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout bounds every request, replacing the default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithSkipTLSVerify disables certificate verification.
func WithSkipTLSVerify(skip bool) Option {
	return func(c *Client) {
		if skip {
			c.httpClient.HTTPClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- explicit opt-in for test instances
			}
		}
	}
}

// WithIntegrationInstance sets the identity domain injected as the
// integrationInstance query parameter on every call.
func WithIntegrationInstance(name string) Option {
	return func(c *Client) {
		c.integrationInstance = name
	}
}

// NewClient creates a new API client.
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil

	client := &Client{
		baseURL:      baseURL,
		tokenManager: tokenManager,
		httpClient:   retryClient,
		userAgent:    "oic-devops",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request. Transient failures (429, 5xx, network) are retried
// with exponential backoff inside the underlying client; an authorization
// failure triggers exactly one token renewal and one reissue of the identical
// request.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	resp, err := c.attempt(ctx, req, body, contentType)
	if err != nil {
		return nil, err
	}

	if (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) && c.tokenManager != nil {
		if c.debug && c.logger != nil {
			c.logger.Debug("Renewing token after authorization failure", map[string]interface{}{
				"status": resp.StatusCode,
				"path":   req.Path,
			})
		}

		err = c.tokenManager.RefreshToken(ctx)
		if err != nil {
			return nil, err
		}

		resp, err = c.attempt(ctx, req, body, contentType)
		if err != nil {
			return nil, err
		}
	}

	return c.classify(req, resp)
}

// attempt performs one full request cycle, including the underlying
// transient-retry budget.
func (c *Client) attempt(ctx context.Context, req *Request, body []byte, contentType string) (*Response, error) {
	fullURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, err
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Retry budget exhausted on a network-level failure.
		return nil, &oic.TransientError{Detail: err.Error()}
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"url":    fullURL,
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

// classify maps the final status code onto the error taxonomy. Transient
// statuses reaching this point have already exhausted their retry budget.
func (c *Client) classify(req *Request, resp *Response) (*Response, error) {
	switch {
	case resp.StatusCode < 300:
		return resp, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return resp, &oic.AuthenticationError{
			StatusCode: resp.StatusCode,
			Detail:     oic.ParseErrorDetail(resp.Body),
		}
	case resp.StatusCode == http.StatusNotFound:
		return resp, &oic.NotFoundError{Path: req.Path}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return resp, &oic.TransientError{
			StatusCode: resp.StatusCode,
			Detail:     oic.ParseErrorDetail(resp.Body),
		}
	default:
		return resp, &oic.RequestError{
			StatusCode: resp.StatusCode,
			Detail:     oic.ParseErrorDetail(resp.Body),
		}
	}
}

// buildURL joins the base URL, path, query parameters, and the
// integrationInstance parameter the platform expects on every call.
func (c *Client) buildURL(req *Request) (string, error) {
	parsed, err := url.Parse(c.baseURL + req.Path)
	if err != nil {
		return "", fmt.Errorf("building request URL: %w", err)
	}

	query := parsed.Query()

	for key, values := range req.Query {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	if c.integrationInstance != "" {
		query.Set("integrationInstance", c.integrationInstance)
	}

	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// encodeBody marshals a request body. []byte payloads pass through untouched
// so archive uploads are not re-encoded.
func encodeBody(body interface{}) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}

	if raw, ok := body.([]byte); ok {
		return raw, "", nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling request body: %w", err)
	}

	return data, "application/json", nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// PostRaw performs a POST request with a raw body and explicit content type,
// used for multipart archive uploads.
func (c *Client) PostRaw(ctx context.Context, path string, body []byte, contentType string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:  http.MethodPost,
		Path:    path,
		Body:    body,
		Headers: map[string]string{"Content-Type": contentType},
	})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
