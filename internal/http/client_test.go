package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	oichttp "github.com/WolVesz/oic-devops/internal/http"
	"github.com/WolVesz/oic-devops/pkg/oic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTokenManager for testing.
type MockTokenManager struct {
	token     string
	err       error
	refreshed atomic.Int64
	// refreshTo replaces token on RefreshToken when non-empty.
	refreshTo string
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

func (m *MockTokenManager) RefreshToken(ctx context.Context) error {
	m.refreshed.Add(1)

	if m.refreshTo != "" {
		m.token = m.refreshTo
	}

	return nil
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/ic/api/integration/v1/connections", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			response := map[string]string{"id": "conn-id", "name": "test-connection"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "test-token"}
		client := oichttp.NewClient(server.URL, tokenManager)

		req := &oichttp.Request{
			Method: "GET",
			Path:   "/ic/api/integration/v1/connections",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "conn-id", result["id"])
		assert.Equal(t, "test-connection", result["name"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "25", request.URL.Query().Get("limit"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := oichttp.NewClient(server.URL, nil)

		req := &oichttp.Request{
			Method: "GET",
			Path:   "/ic/api/integration/v1/integrations",
			Query:  url.Values{"limit": []string{"25"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("injects integration instance parameter", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "myinstance", request.URL.Query().Get("integrationInstance"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := oichttp.NewClient(server.URL, nil, oichttp.WithIntegrationInstance("myinstance"))

		resp, err := client.Get(context.Background(), "/ic/api/integration/v1/lookups", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "test-connection", body["name"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := oichttp.NewClient(server.URL, nil)

		req := &oichttp.Request{
			Method: "POST",
			Path:   "/ic/api/integration/v1/connections",
			Body:   map[string]string{"name": "test-connection"},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("binary body passes through untouched", func(t *testing.T) {
		t.Parallel()

		payload := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0xff}

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Content-Type", "application/octet-stream")
			_, _ = writer.Write(payload)
		}))
		defer server.Close()

		client := oichttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/ic/api/integration/v1/integrations/ID/archive", nil)
		require.NoError(t, err)
		assert.Equal(t, payload, resp.Body)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := oichttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "/ic/api/integration/v1/integrations/MISSING", nil)
		require.Error(t, err)
		assert.True(t, oic.IsNotFound(err))
		assert.Contains(t, err.Error(), "/ic/api/integration/v1/integrations/MISSING")
	})

	t.Run("conflict is not retried", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(writer).Encode(map[string]string{"detail": "identifier already in use"})
		}))
		defer server.Close()

		client := oichttp.NewClient(server.URL, nil)

		_, err := client.Post(context.Background(), "/ic/api/integration/v1/integrations", map[string]string{})
		require.Error(t, err)
		assert.True(t, oic.IsRequest(err))
		assert.Contains(t, err.Error(), "identifier already in use")
		assert.Equal(t, int64(1), attempts.Load())
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "PATCH", request.Header.Get("X-HTTP-Method-Override"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := oichttp.NewClient(server.URL, nil)

		req := &oichttp.Request{
			Method: "POST",
			Path:   "/ic/api/integration/v1/integrations/ID",
			Headers: map[string]string{
				"X-HTTP-Method-Override": "PATCH",
			},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := oichttp.NewClient(server.URL, nil, oichttp.WithLogger(logger), oichttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/ic/api/integration/v1/connections", nil)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_AuthRetry(t *testing.T) {
	t.Parallel()
	t.Run("renews once and retries on 401", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)

			if request.Header.Get("Authorization") != "Bearer fresh-token" {
				writer.WriteHeader(http.StatusUnauthorized)

				return
			}

			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "stale-token", refreshTo: "fresh-token"}
		client := oichttp.NewClient(server.URL, tokenManager)

		resp, err := client.Get(context.Background(), "/ic/api/integration/v1/connections", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int64(2), attempts.Load())
		assert.Equal(t, int64(1), tokenManager.refreshed.Load())
	})

	t.Run("fails after second 401 with no third attempt", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "rejected-token", refreshTo: "still-rejected"}
		client := oichttp.NewClient(server.URL, tokenManager)

		_, err := client.Get(context.Background(), "/ic/api/integration/v1/connections", nil)
		require.Error(t, err)
		assert.True(t, oic.IsAuthentication(err))
		assert.Equal(t, int64(2), attempts.Load())
		assert.Equal(t, int64(1), tokenManager.refreshed.Load())
	})

	t.Run("forbidden follows the same cycle", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "some-token"}
		client := oichttp.NewClient(server.URL, tokenManager)

		_, err := client.Get(context.Background(), "/ic/api/integration/v1/connections", nil)
		require.Error(t, err)
		assert.True(t, oic.IsAuthentication(err))
		assert.Equal(t, int64(2), attempts.Load())
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 2 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := oichttp.NewClient(server.URL, nil, oichttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int64(2), attempts.Load())
	})

	t.Run("retries on rate limiting", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 2 {
				writer.WriteHeader(http.StatusTooManyRequests)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := oichttp.NewClient(server.URL, nil, oichttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int64(2), attempts.Load())
	})

	t.Run("surfaces transient error when budget exhausted", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := oichttp.NewClient(server.URL, nil, oichttp.WithRetryConfig(2, 10*time.Millisecond, 50*time.Millisecond))

		_, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.True(t, oic.IsTransient(err))
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int64

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)

			writer.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		client := oichttp.NewClient(server.URL, nil, oichttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		_, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.True(t, oic.IsRequest(err))
		assert.Equal(t, int64(1), attempts.Load()) // Should not retry
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*oichttp.Client, context.Context) (*oichttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *oichttp.Client, ctx context.Context) (*oichttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *oichttp.Client, ctx context.Context) (*oichttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *oichttp.Client, ctx context.Context) (*oichttp.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *oichttp.Client, ctx context.Context) (*oichttp.Response, error) {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *oichttp.Client, ctx context.Context) (*oichttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := oichttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}
