package auth

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/WolVesz/oic-devops/internal/constants"
	"github.com/WolVesz/oic-devops/pkg/oic"
)

// TokenManager manages access token lifecycle for API requests.
type TokenManager interface {
	// GetToken returns a valid access token, acquiring one if necessary.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken unconditionally re-acquires a token, bypassing the cache.
	RefreshToken(ctx context.Context) error
	// SetToken manually seeds the token cache.
	SetToken(token string, expiresAt time.Time)
}

// OAuth2Config configures the client_credentials grant against the identity
// service token endpoint.
type OAuth2Config struct {
	// TokenURL is the full token endpoint URL.
	TokenURL string
	// Username and Password are sent as HTTP basic auth on the token request.
	Username string
	Password string
	// Scope is the optional OAuth2 scope.
	Scope string

	// ExpiryMargin is subtracted from the server-reported lifetime. Defaults
	// to constants.DefaultTokenExpiryMargin when zero.
	ExpiryMargin time.Duration
	// Timeout bounds the token request. Defaults to
	// constants.ShortHTTPTimeout when zero; token endpoints answer fast or
	// not at all.
	Timeout time.Duration
	// SkipTLSVerify disables certificate verification on the token request.
	SkipTLSVerify bool
}

// OAuth2TokenManager acquires and caches access tokens. Renewal is
// single-flight: concurrent callers observing a missing or expired token
// block on one in-flight acquisition instead of issuing duplicate auth calls.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	store      *TokenStore
	httpClient *http.Client

	// renewMu serializes the check-then-acquire sequence.
	renewMu sync.Mutex
}

// NewOAuth2TokenManager creates a new OAuth2 token manager.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = constants.ShortHTTPTimeout
	}

	transport := http.DefaultTransport
	if config.SkipTLSVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- explicit opt-in for test instances
		}
	}

	return &OAuth2TokenManager{
		config: config,
		store:  NewTokenStore(),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// GetToken returns a valid access token, acquiring one if necessary. The
// common case (cached token still valid) takes only the store's read lock.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	m.renewMu.Lock()
	defer m.renewMu.Unlock()

	// Another caller may have finished acquisition while we waited.
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	token, err := m.requestToken(ctx)
	if err != nil {
		return "", err
	}

	m.store.Set(token)

	return token.AccessToken, nil
}

// RefreshToken unconditionally re-acquires a token. Used after the request
// layer observes an authorization failure with a token that still looked
// valid locally.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.renewMu.Lock()
	defer m.renewMu.Unlock()

	token, err := m.requestToken(ctx)
	if err != nil {
		return err
	}

	m.store.Set(token)

	return nil
}

// SetToken manually seeds the token cache.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// requestToken performs the client_credentials grant. Auth failures are
// terminal; no retries happen at this layer.
func (m *OAuth2TokenManager) requestToken(ctx context.Context) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	if m.config.Scope != "" {
		form.Set("scope", m.config.Scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &oic.AuthenticationError{Detail: "creating token request: " + err.Error()}
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(m.config.Username, m.config.Password)

	issueTime := time.Now()

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, &oic.AuthenticationError{Detail: "token request failed: " + err.Error()}
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &oic.AuthenticationError{Detail: "reading token response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &oic.AuthenticationError{
			StatusCode: resp.StatusCode,
			Detail:     oic.ParseErrorDetail(body),
		}
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return nil, &oic.AuthenticationError{Detail: "parsing token response: " + err.Error()}
	}

	if token.AccessToken == "" {
		return nil, &oic.AuthenticationError{Detail: oic.ErrNoAccessToken.Error()}
	}

	if token.ExpiresIn > 0 {
		margin := m.config.ExpiryMargin
		if margin == 0 {
			margin = constants.DefaultTokenExpiryMargin
		}

		token.ExpiresAt = issueTime.Add(time.Duration(token.ExpiresIn)*time.Second - margin)
	}

	return &token, nil
}
