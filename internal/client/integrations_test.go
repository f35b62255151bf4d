package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WolVesz/oic-devops/pkg/oic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrationsClient_List(t *testing.T) {
	t.Parallel()

	response := oic.ListResponse[oic.Integration]{
		Items: []oic.Integration{
			{ID: "HELLO|01.00.0000", Code: "HELLO", Version: "01.00.0000", Name: "Hello", Status: "ACTIVATED"},
			{ID: "ORDERS|02.01.0000", Code: "ORDERS", Version: "02.01.0000", Name: "Orders", Status: "CONFIGURED"},
		},
		TotalResults: 2,
		HasMore:      false,
		Limit:        50,
	}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ic/api/integration/v1/integrations", request.URL.Path)
		assert.Equal(t, "10", request.URL.Query().Get("limit"))
		assert.Equal(t, "ACTIVATED", request.URL.Query().Get("status"))

		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.Integrations().List(context.Background(), &oic.QueryParams{Limit: 10, Status: "ACTIVATED"})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, "HELLO", result.Items[0].Code)
	assert.Equal(t, 2, result.TotalResults)
	assert.False(t, result.HasMore)
}

func TestIntegrationsClient_ListAll(t *testing.T) {
	t.Parallel()

	pages := map[string]oic.ListResponse[oic.Integration]{
		"": {
			Items:   []oic.Integration{{Code: "A"}, {Code: "B"}},
			HasMore: true,
		},
		"2": {
			Items:   []oic.Integration{{Code: "C"}},
			HasMore: false,
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		page, ok := pages[request.URL.Query().Get("offset")]
		require.True(t, ok, "unexpected offset %q", request.URL.Query().Get("offset"))

		_ = json.NewEncoder(writer).Encode(page)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	all, err := client.Integrations().ListAll(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Code)
	assert.Equal(t, "C", all[2].Code)
}

func TestIntegrationsClient_ListAll_DoesNotMutateParams(t *testing.T) {
	t.Parallel()

	pages := map[string]oic.ListResponse[oic.Integration]{
		"": {
			Items:   []oic.Integration{{Code: "A"}, {Code: "B"}},
			HasMore: true,
		},
		"2": {
			Items:   []oic.Integration{{Code: "C"}},
			HasMore: false,
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		page, ok := pages[request.URL.Query().Get("offset")]
		require.True(t, ok, "unexpected offset %q", request.URL.Query().Get("offset"))

		_ = json.NewEncoder(writer).Encode(page)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	params := &oic.QueryParams{Limit: 2, Status: "ACTIVATED"}

	all, err := client.Integrations().ListAll(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// The caller's params stay usable for a second call.
	assert.Equal(t, 2, params.Limit)
	assert.Equal(t, 0, params.Offset)
}

func TestIntegrationsClient_Get(t *testing.T) {
	t.Parallel()

	server := newJSONServer(t, "GET", "/ic/api/integration/v1/integrations/HELLO%7C01.00.0000", http.StatusOK,
		oic.Integration{ID: "HELLO|01.00.0000", Code: "HELLO", Status: "ACTIVATED"})

	client := newTestClient(t, server.URL)

	integration, err := client.Integrations().Get(context.Background(), "HELLO%7C01.00.0000")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", integration.Code)
	assert.Equal(t, "ACTIVATED", integration.Status)
}

func TestIntegrationsClient_Get_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Integrations().Get(context.Background(), "MISSING")
	require.Error(t, err)
	assert.True(t, oic.IsNotFound(err))
}

func TestIntegrationsClient_Create(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/ic/api/integration/v1/integrations", request.URL.Path)

		var body map[string]interface{}

		_ = json.NewDecoder(request.Body).Decode(&body)
		assert.Equal(t, "HELLO", body["code"])

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(oic.Integration{Code: "HELLO", Status: "CONFIGURED"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	integration, err := client.Integrations().Create(context.Background(), map[string]interface{}{"code": "HELLO"})
	require.NoError(t, err)
	assert.Equal(t, "CONFIGURED", integration.Status)
}

func TestIntegrationsClient_Activate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "PATCH", request.Header.Get("X-HTTP-Method-Override"))

		var body map[string]interface{}

		_ = json.NewDecoder(request.Body).Decode(&body)
		assert.Equal(t, "ACTIVATED", body["status"])

		_ = json.NewEncoder(writer).Encode(oic.Integration{Code: "HELLO", Status: "ACTIVATED"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	integration, err := client.Integrations().Activate(context.Background(), "HELLO|01.00.0000")
	require.NoError(t, err)
	assert.Equal(t, "ACTIVATED", integration.Status)
}

func TestIntegrationsClient_Deactivate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "PATCH", request.Header.Get("X-HTTP-Method-Override"))
		assert.Equal(t, "true", request.URL.Query().Get("stopSchedule"))

		var body map[string]interface{}

		_ = json.NewDecoder(request.Body).Decode(&body)
		assert.Equal(t, "CONFIGURED", body["status"])

		_ = json.NewEncoder(writer).Encode(oic.Integration{Code: "HELLO", Status: "CONFIGURED"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	integration, err := client.Integrations().Deactivate(context.Background(), "HELLO|01.00.0000", true)
	require.NoError(t, err)
	assert.Equal(t, "CONFIGURED", integration.Status)
}

func TestIntegrationsClient_Export(t *testing.T) {
	t.Parallel()

	archive := []byte{0x50, 0x4b, 0x03, 0x04, 0x01, 0x02}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/ic/api/integration/v1/integrations/HELLO%7C01.00.0000/archive", request.URL.EscapedPath())
		assert.Equal(t, "application/octet-stream", request.Header.Get("Accept"))

		writer.Header().Set("Content-Type", "application/octet-stream")
		_, _ = writer.Write(archive)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	data, err := client.Integrations().Export(context.Background(), "HELLO%7C01.00.0000")
	require.NoError(t, err)
	assert.Equal(t, archive, data)
}

func TestIntegrationsClient_Import(t *testing.T) {
	t.Parallel()

	archive := []byte("fake-iar-content")

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/ic/api/integration/v1/integrations/archive", request.URL.Path)

		err := request.ParseMultipartForm(1 << 20)
		require.NoError(t, err)

		file, header, err := request.FormFile("file")
		require.NoError(t, err)

		defer func() { _ = file.Close() }()

		assert.Equal(t, "HELLO_01.00.0000.iar", header.Filename)

		uploaded, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, archive, uploaded)

		_ = json.NewEncoder(writer).Encode(oic.Integration{Code: "HELLO", Status: "CONFIGURED"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	integration, err := client.Integrations().Import(context.Background(), "HELLO_01.00.0000.iar", archive)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", integration.Code)
}

func TestIntegrationsClient_Delete(t *testing.T) {
	t.Parallel()

	server := newJSONServer(t, "DELETE", "/ic/api/integration/v1/integrations/HELLO%7C01.00.0000", http.StatusNoContent, nil)

	client := newTestClient(t, server.URL)

	err := client.Integrations().Delete(context.Background(), "HELLO%7C01.00.0000")
	require.NoError(t, err)
}

func TestIntegrationsClient_ResumeSchedule(t *testing.T) {
	t.Parallel()

	server := newJSONServer(t, "POST", "/ic/api/integration/v1/integrations/HELLO%7C01.00.0000/schedule/resume", http.StatusOK, nil)

	client := newTestClient(t, server.URL)

	err := client.Integrations().ResumeSchedule(context.Background(), "HELLO%7C01.00.0000")
	require.NoError(t, err)
}

func TestIntegrationsClient_Clone(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]interface{}

		_ = json.NewDecoder(request.Body).Decode(&body)
		assert.Equal(t, "Hello Copy", body["name"])
		assert.Equal(t, "HELLO_COPY", body["identifier"])

		_ = json.NewEncoder(writer).Encode(oic.Integration{Code: "HELLO_COPY", Name: "Hello Copy"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	integration, err := client.Integrations().Clone(context.Background(), "HELLO|01.00.0000", "Hello Copy", "HELLO_COPY")
	require.NoError(t, err)
	assert.Equal(t, "HELLO_COPY", integration.Code)
}
