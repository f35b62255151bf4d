package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/WolVesz/oic-devops/pkg/oic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupsClient_List(t *testing.T) {
	t.Parallel()

	response := oic.ListResponse[oic.Lookup]{
		Items:        []oic.Lookup{{Name: "COUNTRY_CODES"}},
		TotalResults: 1,
	}

	server := newJSONServer(t, "GET", "/ic/api/integration/v1/lookups", http.StatusOK, response)
	client := newTestClient(t, server.URL)

	result, err := client.Lookups().List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "COUNTRY_CODES", result.Items[0].Name)
}

func TestLookupsClient_Update(t *testing.T) {
	t.Parallel()

	server := newJSONServer(t, "PUT", "/ic/api/integration/v1/lookups/COUNTRY_CODES", http.StatusOK,
		oic.Lookup{Name: "COUNTRY_CODES"})

	client := newTestClient(t, server.URL)

	lookup, err := client.Lookups().Update(context.Background(), "COUNTRY_CODES", map[string]interface{}{
		"columns": []string{"iso", "name"},
	})
	require.NoError(t, err)
	assert.Equal(t, "COUNTRY_CODES", lookup.Name)
}

func TestLookupsClient_Export(t *testing.T) {
	t.Parallel()

	server := newJSONServer(t, "GET", "/ic/api/integration/v1/lookups/COUNTRY_CODES/archive", http.StatusOK,
		map[string]string{"ok": "true"})

	client := newTestClient(t, server.URL)

	data, err := client.Lookups().Export(context.Background(), "COUNTRY_CODES")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestLookupsClient_GetData(t *testing.T) {
	t.Parallel()

	server := newJSONServer(t, "GET", "/ic/api/integration/v1/lookups/COUNTRY_CODES/data", http.StatusOK,
		map[string]interface{}{
			"columns": []string{"iso", "name"},
			"rows":    []map[string]interface{}{{"iso": "DE", "name": "Germany"}},
		})

	client := newTestClient(t, server.URL)

	data, err := client.Lookups().GetData(context.Background(), "COUNTRY_CODES")
	require.NoError(t, err)
	assert.Contains(t, data, "rows")
}

func TestLookupsClient_UpdateData(t *testing.T) {
	t.Parallel()
	t.Run("replaces rows", func(t *testing.T) {
		t.Parallel()

		server := newJSONServer(t, "PUT", "/ic/api/integration/v1/lookups/COUNTRY_CODES/data", http.StatusOK,
			map[string]interface{}{"rows": []map[string]interface{}{{"iso": "FR"}}})

		client := newTestClient(t, server.URL)

		data, err := client.Lookups().UpdateData(context.Background(), "COUNTRY_CODES", map[string]interface{}{
			"rows": []map[string]interface{}{{"iso": "FR", "name": "France"}},
		})
		require.NoError(t, err)
		assert.Contains(t, data, "rows")
	})

	t.Run("rejects a body without rows", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, "http://localhost:0")

		_, err := client.Lookups().UpdateData(context.Background(), "COUNTRY_CODES", map[string]interface{}{
			"columns": []string{"iso"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rows")
	})
}

func TestPackagesClient_Resources(t *testing.T) {
	t.Parallel()

	server := newJSONServer(t, "GET", "/ic/api/integration/v1/packages/PKG/resources", http.StatusOK,
		[]map[string]interface{}{
			{"code": "HELLO", "type": "INTEGRATION"},
			{"code": "REST_CONN", "type": "CONNECTION"},
		})

	client := newTestClient(t, server.URL)

	resources, err := client.Packages().Resources(context.Background(), "PKG")
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "INTEGRATION", resources[0]["type"])
}

func TestPackagesClient_Export(t *testing.T) {
	t.Parallel()

	server := newJSONServer(t, "GET", "/ic/api/integration/v1/packages/PKG/export", http.StatusOK,
		map[string]string{"ok": "true"})

	client := newTestClient(t, server.URL)

	data, err := client.Packages().Export(context.Background(), "PKG")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
