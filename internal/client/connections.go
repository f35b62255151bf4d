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

// ConnectionsClient implements the oic.ConnectionsClient interface.
type ConnectionsClient struct {
	httpClient *internalhttp.Client
}

// NewConnectionsClient creates a new ConnectionsClient.
func NewConnectionsClient(httpClient *internalhttp.Client) *ConnectionsClient {
	return &ConnectionsClient{
		httpClient: httpClient,
	}
}

// List lists connections.
func (c *ConnectionsClient) List(ctx context.Context, params *oic.QueryParams) (*oic.ListResponse[oic.Connection], error) {
	path := constants.APIPathConnections

	var queryParams url.Values
	if params != nil {
		queryParams = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, queryParams)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}

	var result oic.ListResponse[oic.Connection]

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing connections list response: %w", err)
	}

	return &result, nil
}

// Get retrieves a specific connection.
func (c *ConnectionsClient) Get(ctx context.Context, id string) (*oic.Connection, error) {
	path := constants.APIPathConnections + "/" + id

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting connection: %w", err)
	}

	var connection oic.Connection

	err = json.Unmarshal(resp.Body, &connection)
	if err != nil {
		return nil, fmt.Errorf("parsing connection response: %w", err)
	}

	return &connection, nil
}

// Create creates a new connection.
func (c *ConnectionsClient) Create(ctx context.Context, body map[string]interface{}) (*oic.Connection, error) {
	resp, err := c.httpClient.Post(ctx, constants.APIPathConnections, body)
	if err != nil {
		return nil, fmt.Errorf("creating connection: %w", err)
	}

	var connection oic.Connection

	err = json.Unmarshal(resp.Body, &connection)
	if err != nil {
		return nil, fmt.Errorf("parsing connection response: %w", err)
	}

	return &connection, nil
}

// Update updates a connection via POST with a PATCH method override.
func (c *ConnectionsClient) Update(ctx context.Context, id string, body map[string]interface{}) (*oic.Connection, error) {
	path := constants.APIPathConnections + "/" + id

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
		Headers: map[string]string{
			"X-HTTP-Method-Override": "PATCH",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("updating connection: %w", err)
	}

	var connection oic.Connection

	err = json.Unmarshal(resp.Body, &connection)
	if err != nil {
		return nil, fmt.Errorf("parsing connection response: %w", err)
	}

	return &connection, nil
}

// Delete deletes a connection.
func (c *ConnectionsClient) Delete(ctx context.Context, id string) error {
	path := constants.APIPathConnections + "/" + id

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting connection: %w", err)
	}

	return nil
}

// Test asks the platform to verify the connection's configured endpoint.
func (c *ConnectionsClient) Test(ctx context.Context, id string) (*oic.ConnectionTestResult, error) {
	path := constants.APIPathConnections + "/" + id + "/test"

	resp, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("testing connection: %w", err)
	}

	var result oic.ConnectionTestResult

	if len(resp.Body) > 0 {
		err = json.Unmarshal(resp.Body, &result)
		if err != nil {
			return nil, fmt.Errorf("parsing connection test response: %w", err)
		}
	}

	return &result, nil
}

// Clone copies a connection under a new name and identifier.
func (c *ConnectionsClient) Clone(ctx context.Context, id string, name, identifier string) (*oic.Connection, error) {
	path := constants.APIPathConnections + "/" + id + "/clone"

	body := map[string]interface{}{
		"name":       name,
		"identifier": identifier,
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("cloning connection: %w", err)
	}

	var connection oic.Connection

	err = json.Unmarshal(resp.Body, &connection)
	if err != nil {
		return nil, fmt.Errorf("parsing connection response: %w", err)
	}

	return &connection, nil
}

// ListTypes lists the available adapter types.
func (c *ConnectionsClient) ListTypes(ctx context.Context) ([]map[string]interface{}, error) {
	path := constants.APIPathConnections + "/types"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing adapter types: %w", err)
	}

	return decodeItems(resp.Body, "adapter types")
}

// GetType retrieves a specific adapter type.
func (c *ConnectionsClient) GetType(ctx context.Context, typeID string) (map[string]interface{}, error) {
	path := constants.APIPathConnections + "/types/" + typeID

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting adapter type: %w", err)
	}

	var result map[string]interface{}

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing adapter type response: %w", err)
	}

	return result, nil
}
