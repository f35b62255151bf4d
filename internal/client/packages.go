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

// PackagesClient implements the oic.PackagesClient interface.
type PackagesClient struct {
	httpClient *internalhttp.Client
}

// NewPackagesClient creates a new PackagesClient.
func NewPackagesClient(httpClient *internalhttp.Client) *PackagesClient {
	return &PackagesClient{
		httpClient: httpClient,
	}
}

// List lists packages.
func (c *PackagesClient) List(ctx context.Context, params *oic.QueryParams) (*oic.ListResponse[oic.Package], error) {
	path := constants.APIPathPackages

	var queryParams url.Values
	if params != nil {
		queryParams = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, queryParams)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}

	var result oic.ListResponse[oic.Package]

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing packages list response: %w", err)
	}

	return &result, nil
}

// Get retrieves a specific package.
func (c *PackagesClient) Get(ctx context.Context, id string) (*oic.Package, error) {
	path := constants.APIPathPackages + "/" + id

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting package: %w", err)
	}

	var pkg oic.Package

	err = json.Unmarshal(resp.Body, &pkg)
	if err != nil {
		return nil, fmt.Errorf("parsing package response: %w", err)
	}

	return &pkg, nil
}

// Delete deletes a package and the integrations it contains.
func (c *PackagesClient) Delete(ctx context.Context, id string) error {
	path := constants.APIPathPackages + "/" + id

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting package: %w", err)
	}

	return nil
}

// Export downloads a package archive.
func (c *PackagesClient) Export(ctx context.Context, id string) ([]byte, error) {
	path := constants.APIPathPackages + "/" + id + "/export"

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   path,
		Headers: map[string]string{
			"Accept": "application/octet-stream",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("exporting package: %w", err)
	}

	return resp.Body, nil
}

// Import uploads a package archive.
func (c *PackagesClient) Import(ctx context.Context, filename string, archive []byte) (*oic.Package, error) {
	path := constants.APIPathPackages + "/import"

	respBody, err := uploadArchive(ctx, c.httpClient, path, filename, archive, "package")
	if err != nil {
		return nil, err
	}

	var pkg oic.Package

	if len(respBody) > 0 {
		err = json.Unmarshal(respBody, &pkg)
		if err != nil {
			return nil, fmt.Errorf("parsing package response: %w", err)
		}
	}

	return &pkg, nil
}

// Resources lists the artifacts contained in a package.
func (c *PackagesClient) Resources(ctx context.Context, id string) ([]map[string]interface{}, error) {
	path := constants.APIPathPackages + "/" + id + "/resources"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing package resources: %w", err)
	}

	return decodeItems(resp.Body, "package resources")
}
