package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/WolVesz/oic-devops/internal/constants"
	internalhttp "github.com/WolVesz/oic-devops/internal/http"
	"github.com/WolVesz/oic-devops/pkg/oic"
)

// LibrariesClient implements the oic.LibrariesClient interface.
type LibrariesClient struct {
	httpClient *internalhttp.Client
}

// NewLibrariesClient creates a new LibrariesClient.
func NewLibrariesClient(httpClient *internalhttp.Client) *LibrariesClient {
	return &LibrariesClient{
		httpClient: httpClient,
	}
}

// List lists JavaScript libraries.
func (c *LibrariesClient) List(ctx context.Context, params *oic.QueryParams) (*oic.ListResponse[oic.Library], error) {
	path := constants.APIPathLibraries

	var queryParams url.Values
	if params != nil {
		queryParams = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, queryParams)
	if err != nil {
		return nil, fmt.Errorf("listing libraries: %w", err)
	}

	var result oic.ListResponse[oic.Library]

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing libraries list response: %w", err)
	}

	return &result, nil
}

// Get retrieves a specific library.
func (c *LibrariesClient) Get(ctx context.Context, id string) (*oic.Library, error) {
	path := constants.APIPathLibraries + "/" + id

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting library: %w", err)
	}

	var library oic.Library

	err = json.Unmarshal(resp.Body, &library)
	if err != nil {
		return nil, fmt.Errorf("parsing library response: %w", err)
	}

	return &library, nil
}

// Create registers a new library from a metadata payload.
func (c *LibrariesClient) Create(ctx context.Context, body map[string]interface{}) (*oic.Library, error) {
	resp, err := c.httpClient.Post(ctx, constants.APIPathLibraries, body)
	if err != nil {
		return nil, fmt.Errorf("creating library: %w", err)
	}

	var library oic.Library

	err = json.Unmarshal(resp.Body, &library)
	if err != nil {
		return nil, fmt.Errorf("parsing library response: %w", err)
	}

	return &library, nil
}

// Update updates a library's metadata via POST with a PATCH method override.
func (c *LibrariesClient) Update(ctx context.Context, id string, body map[string]interface{}) (*oic.Library, error) {
	path := constants.APIPathLibraries + "/" + id

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
		Headers: map[string]string{
			"X-HTTP-Method-Override": "PATCH",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("updating library: %w", err)
	}

	var library oic.Library

	err = json.Unmarshal(resp.Body, &library)
	if err != nil {
		return nil, fmt.Errorf("parsing library response: %w", err)
	}

	return &library, nil
}

// Delete deletes a library.
func (c *LibrariesClient) Delete(ctx context.Context, id string) error {
	path := constants.APIPathLibraries + "/" + id

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting library: %w", err)
	}

	return nil
}

// Export downloads the library source archive.
func (c *LibrariesClient) Export(ctx context.Context, id string) ([]byte, error) {
	path := constants.APIPathLibraries + "/" + id + "/export"

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   path,
		Headers: map[string]string{
			"Accept": "application/octet-stream",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("exporting library: %w", err)
	}

	return resp.Body, nil
}

// ListTypes lists the available library types.
func (c *LibrariesClient) ListTypes(ctx context.Context) ([]map[string]interface{}, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathLibraries+"/types", nil)
	if err != nil {
		return nil, fmt.Errorf("listing library types: %w", err)
	}

	return decodeItems(resp.Body, "library types")
}

// GetType retrieves a specific library type.
func (c *LibrariesClient) GetType(ctx context.Context, typeID string) (map[string]interface{}, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathLibraries+"/types/"+typeID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting library type: %w", err)
	}

	var libraryType map[string]interface{}

	err = json.Unmarshal(resp.Body, &libraryType)
	if err != nil {
		return nil, fmt.Errorf("parsing library type response: %w", err)
	}

	return libraryType, nil
}

// Import uploads a library archive.
func (c *LibrariesClient) Import(ctx context.Context, filename string, archive []byte) (*oic.Library, error) {
	path := constants.APIPathLibraries + "/import"

	respBody, err := uploadArchive(ctx, c.httpClient, path, filename, archive, "library")
	if err != nil {
		return nil, err
	}

	var library oic.Library

	if len(respBody) > 0 {
		err = json.Unmarshal(respBody, &library)
		if err != nil {
			return nil, fmt.Errorf("parsing library response: %w", err)
		}
	}

	return &library, nil
}
