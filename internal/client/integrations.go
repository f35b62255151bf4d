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

// IntegrationsClient implements the oic.IntegrationsClient interface.
type IntegrationsClient struct {
	httpClient *internalhttp.Client
}

// NewIntegrationsClient creates a new IntegrationsClient.
func NewIntegrationsClient(httpClient *internalhttp.Client) *IntegrationsClient {
	return &IntegrationsClient{
		httpClient: httpClient,
	}
}

// List lists one page of integrations.
func (c *IntegrationsClient) List(ctx context.Context, params *oic.QueryParams) (*oic.ListResponse[oic.Integration], error) {
	path := constants.APIPathIntegrations

	var queryParams url.Values
	if params != nil {
		queryParams = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, queryParams)
	if err != nil {
		return nil, fmt.Errorf("listing integrations: %w", err)
	}

	var result oic.ListResponse[oic.Integration]

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing integrations list response: %w", err)
	}

	return &result, nil
}

// ListAll follows offset pagination until the platform reports no more pages.
func (c *IntegrationsClient) ListAll(ctx context.Context, params *oic.QueryParams) ([]oic.Integration, error) {
	// Paginate on a copy so the caller's params are not mutated.
	page := oic.NewQueryParams()
	if params != nil {
		copied := *params
		page = &copied
	}

	if page.Limit <= 0 {
		page.Limit = constants.DefaultListLimit
	}

	var all []oic.Integration

	for {
		result, err := c.List(ctx, page)
		if err != nil {
			return nil, err
		}

		all = append(all, result.Items...)

		if !result.HasMore || len(result.Items) == 0 {
			break
		}

		page.Offset += len(result.Items)
	}

	return all, nil
}

// Get retrieves a specific integration.
func (c *IntegrationsClient) Get(ctx context.Context, id string) (*oic.Integration, error) {
	path := constants.APIPathIntegrations + "/" + id

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting integration: %w", err)
	}

	var integration oic.Integration

	err = json.Unmarshal(resp.Body, &integration)
	if err != nil {
		return nil, fmt.Errorf("parsing integration response: %w", err)
	}

	return &integration, nil
}

// Create creates a new integration. The payload schema is owned by the
// platform, so the body stays opaque.
func (c *IntegrationsClient) Create(ctx context.Context, body map[string]interface{}) (*oic.Integration, error) {
	resp, err := c.httpClient.Post(ctx, constants.APIPathIntegrations, body)
	if err != nil {
		return nil, fmt.Errorf("creating integration: %w", err)
	}

	var integration oic.Integration

	err = json.Unmarshal(resp.Body, &integration)
	if err != nil {
		return nil, fmt.Errorf("parsing integration response: %w", err)
	}

	return &integration, nil
}

// Update updates an integration. The platform only accepts PATCH semantics
// tunneled through POST with a method override header.
func (c *IntegrationsClient) Update(ctx context.Context, id string, body map[string]interface{}) (*oic.Integration, error) {
	path := constants.APIPathIntegrations + "/" + id

	resp, err := c.postOverridePatch(ctx, path, nil, body)
	if err != nil {
		return nil, fmt.Errorf("updating integration: %w", err)
	}

	var integration oic.Integration

	err = json.Unmarshal(resp.Body, &integration)
	if err != nil {
		return nil, fmt.Errorf("parsing integration response: %w", err)
	}

	return &integration, nil
}

// Delete deletes an integration.
func (c *IntegrationsClient) Delete(ctx context.Context, id string) error {
	path := constants.APIPathIntegrations + "/" + id

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting integration: %w", err)
	}

	return nil
}

// Activate transitions an integration to ACTIVATED.
func (c *IntegrationsClient) Activate(ctx context.Context, id string) (*oic.Integration, error) {
	return c.setStatus(ctx, id, constants.IntegrationStatusActivated, nil)
}

// Deactivate transitions an integration back to CONFIGURED. stopSchedule also
// stops the schedule of a scheduled integration rather than pausing it.
func (c *IntegrationsClient) Deactivate(ctx context.Context, id string, stopSchedule bool) (*oic.Integration, error) {
	var query url.Values
	if stopSchedule {
		query = url.Values{"stopSchedule": []string{"true"}}
	}

	return c.setStatus(ctx, id, constants.IntegrationStatusConfigured, query)
}

// setStatus performs the status transition shared by Activate and Deactivate.
func (c *IntegrationsClient) setStatus(ctx context.Context, id, status string, query url.Values) (*oic.Integration, error) {
	path := constants.APIPathIntegrations + "/" + id

	resp, err := c.postOverridePatch(ctx, path, query, map[string]interface{}{"status": status})
	if err != nil {
		return nil, fmt.Errorf("changing integration status to %s: %w", status, err)
	}

	var integration oic.Integration

	err = json.Unmarshal(resp.Body, &integration)
	if err != nil {
		return nil, fmt.Errorf("parsing integration response: %w", err)
	}

	return &integration, nil
}

// Clone copies an integration under a new name and identifier.
func (c *IntegrationsClient) Clone(ctx context.Context, id string, name, identifier string) (*oic.Integration, error) {
	path := constants.APIPathIntegrations + "/" + id + "/clone"

	body := map[string]interface{}{
		"name":       name,
		"identifier": identifier,
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("cloning integration: %w", err)
	}

	var integration oic.Integration

	err = json.Unmarshal(resp.Body, &integration)
	if err != nil {
		return nil, fmt.Errorf("parsing integration response: %w", err)
	}

	return &integration, nil
}

// Export downloads an integration archive. The response body is the raw IAR
// archive bytes.
func (c *IntegrationsClient) Export(ctx context.Context, id string) ([]byte, error) {
	path := constants.APIPathIntegrations + "/" + id + "/archive"

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   path,
		Headers: map[string]string{
			"Accept": "application/octet-stream",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("exporting integration: %w", err)
	}

	return resp.Body, nil
}

// Import uploads an integration archive.
func (c *IntegrationsClient) Import(ctx context.Context, filename string, archive []byte) (*oic.Integration, error) {
	path := constants.APIPathIntegrations + "/archive"

	respBody, err := uploadArchive(ctx, c.httpClient, path, filename, archive, "integration")
	if err != nil {
		return nil, err
	}

	var integration oic.Integration

	if len(respBody) > 0 {
		err = json.Unmarshal(respBody, &integration)
		if err != nil {
			return nil, fmt.Errorf("parsing integration response: %w", err)
		}
	}

	return &integration, nil
}

// ResumeSchedule resumes the schedule of a paused scheduled integration.
func (c *IntegrationsClient) ResumeSchedule(ctx context.Context, id string) error {
	path := constants.APIPathIntegrations + "/" + id + "/schedule/resume"

	_, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("resuming integration schedule: %w", err)
	}

	return nil
}

// ListTypes lists the available integration pattern types.
func (c *IntegrationsClient) ListTypes(ctx context.Context) ([]map[string]interface{}, error) {
	path := constants.APIPathIntegrations + "/types"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing integration types: %w", err)
	}

	return decodeItems(resp.Body, "integration types")
}

// GetType retrieves a specific integration pattern type.
func (c *IntegrationsClient) GetType(ctx context.Context, typeID string) (map[string]interface{}, error) {
	path := constants.APIPathIntegrations + "/types/" + typeID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting integration type: %w", err)
	}

	var result map[string]interface{}

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing integration type response: %w", err)
	}

	return result, nil
}

// postOverridePatch sends a POST with the X-HTTP-Method-Override header set
// to PATCH.
func (c *IntegrationsClient) postOverridePatch(ctx context.Context, path string, query url.Values, body interface{}) (*internalhttp.Response, error) {
	return c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   path,
		Query:  query,
		Body:   body,
		Headers: map[string]string{
			"X-HTTP-Method-Override": "PATCH",
		},
	})
}
