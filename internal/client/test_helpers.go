package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WolVesz/oic-devops/pkg/oic"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client against a test server with no credentials,
// so requests carry no Authorization header.
func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	client, err := New(&oic.Config{InstanceURL: serverURL})
	require.NoError(t, err)

	return client
}

// jsonHandler returns a handler that asserts method and path before
// responding with the given status and JSON body.
func jsonHandler(t *testing.T, method, path string, status int, body interface{}) http.HandlerFunc {
	t.Helper()

	return func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, method, request.Method)
		require.Equal(t, path, request.URL.EscapedPath())

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)

		if body != nil {
			_ = json.NewEncoder(writer).Encode(body)
		}
	}
}

// newJSONServer starts a test server around jsonHandler and registers
// cleanup.
func newJSONServer(t *testing.T, method, path string, status int, body interface{}) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(jsonHandler(t, method, path, status, body))
	t.Cleanup(server.Close)

	return server
}
