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

// LookupsClient implements the oic.LookupsClient interface.
type LookupsClient struct {
	httpClient *internalhttp.Client
}

// NewLookupsClient creates a new LookupsClient.
func NewLookupsClient(httpClient *internalhttp.Client) *LookupsClient {
	return &LookupsClient{
		httpClient: httpClient,
	}
}

// List lists lookup tables.
func (c *LookupsClient) List(ctx context.Context, params *oic.QueryParams) (*oic.ListResponse[oic.Lookup], error) {
	path := constants.APIPathLookups

	var queryParams url.Values
	if params != nil {
		queryParams = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, queryParams)
	if err != nil {
		return nil, fmt.Errorf("listing lookups: %w", err)
	}

	var result oic.ListResponse[oic.Lookup]

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing lookups list response: %w", err)
	}

	return &result, nil
}

// Get retrieves a specific lookup.
func (c *LookupsClient) Get(ctx context.Context, id string) (*oic.Lookup, error) {
	path := constants.APIPathLookups + "/" + id

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting lookup: %w", err)
	}

	var lookup oic.Lookup

	err = json.Unmarshal(resp.Body, &lookup)
	if err != nil {
		return nil, fmt.Errorf("parsing lookup response: %w", err)
	}

	return &lookup, nil
}

// Create creates a new lookup table.
func (c *LookupsClient) Create(ctx context.Context, body map[string]interface{}) (*oic.Lookup, error) {
	resp, err := c.httpClient.Post(ctx, constants.APIPathLookups, body)
	if err != nil {
		return nil, fmt.Errorf("creating lookup: %w", err)
	}

	var lookup oic.Lookup

	err = json.Unmarshal(resp.Body, &lookup)
	if err != nil {
		return nil, fmt.Errorf("parsing lookup response: %w", err)
	}

	return &lookup, nil
}

// Update replaces a lookup table's rows.
func (c *LookupsClient) Update(ctx context.Context, id string, body map[string]interface{}) (*oic.Lookup, error) {
	path := constants.APIPathLookups + "/" + id

	resp, err := c.httpClient.Put(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating lookup: %w", err)
	}

	var lookup oic.Lookup

	err = json.Unmarshal(resp.Body, &lookup)
	if err != nil {
		return nil, fmt.Errorf("parsing lookup response: %w", err)
	}

	return &lookup, nil
}

// Delete deletes a lookup.
func (c *LookupsClient) Delete(ctx context.Context, id string) error {
	path := constants.APIPathLookups + "/" + id

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting lookup: %w", err)
	}

	return nil
}

// Export downloads a lookup archive.
func (c *LookupsClient) Export(ctx context.Context, id string) ([]byte, error) {
	path := constants.APIPathLookups + "/" + id + "/archive"

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   path,
		Headers: map[string]string{
			"Accept": "application/octet-stream",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("exporting lookup: %w", err)
	}

	return resp.Body, nil
}

// GetData retrieves the row data of a lookup.
func (c *LookupsClient) GetData(ctx context.Context, id string) (map[string]interface{}, error) {
	path := constants.APIPathLookups + "/" + id + "/data"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting lookup data: %w", err)
	}

	var data map[string]interface{}

	err = json.Unmarshal(resp.Body, &data)
	if err != nil {
		return nil, fmt.Errorf("parsing lookup data response: %w", err)
	}

	return data, nil
}

// UpdateData replaces the row data of a lookup. The body must carry a rows
// field; the platform rejects a data update without one.
func (c *LookupsClient) UpdateData(ctx context.Context, id string, body map[string]interface{}) (map[string]interface{}, error) {
	if _, ok := body["rows"]; !ok {
		return nil, fmt.Errorf("lookup data update requires a rows field")
	}

	path := constants.APIPathLookups + "/" + id + "/data"

	resp, err := c.httpClient.Put(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating lookup data: %w", err)
	}

	var data map[string]interface{}

	err = json.Unmarshal(resp.Body, &data)
	if err != nil {
		return nil, fmt.Errorf("parsing lookup data response: %w", err)
	}

	return data, nil
}

// Import uploads a lookup archive.
func (c *LookupsClient) Import(ctx context.Context, filename string, archive []byte) (*oic.Lookup, error) {
	path := constants.APIPathLookups + "/archive"

	respBody, err := uploadArchive(ctx, c.httpClient, path, filename, archive, "lookup")
	if err != nil {
		return nil, err
	}

	var lookup oic.Lookup

	if len(respBody) > 0 {
		err = json.Unmarshal(respBody, &lookup)
		if err != nil {
			return nil, fmt.Errorf("parsing lookup response: %w", err)
		}
	}

	return &lookup, nil
}
