package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/WolVesz/oic-devops/internal/constants"
	internalhttp "github.com/WolVesz/oic-devops/internal/http"
	"github.com/WolVesz/oic-devops/pkg/oic"
)

// MonitoringClient implements the oic.MonitoringClient interface.
type MonitoringClient struct {
	httpClient *internalhttp.Client
}

// NewMonitoringClient creates a new MonitoringClient.
func NewMonitoringClient(httpClient *internalhttp.Client) *MonitoringClient {
	return &MonitoringClient{
		httpClient: httpClient,
	}
}

// ListInstances lists integration run instances.
func (c *MonitoringClient) ListInstances(ctx context.Context, params *oic.QueryParams) (*oic.ListResponse[oic.Instance], error) {
	path := constants.APIPathMonitoring + "/instances"

	var queryParams url.Values
	if params != nil {
		queryParams = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, queryParams)
	if err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}

	var result oic.ListResponse[oic.Instance]

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing instances list response: %w", err)
	}

	return &result, nil
}

// GetInstance retrieves a specific run instance.
func (c *MonitoringClient) GetInstance(ctx context.Context, id string) (*oic.Instance, error) {
	path := constants.APIPathMonitoring + "/instances/" + id

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting instance: %w", err)
	}

	var instance oic.Instance

	err = json.Unmarshal(resp.Body, &instance)
	if err != nil {
		return nil, fmt.Errorf("parsing instance response: %w", err)
	}

	return &instance, nil
}

// GetInstanceActivities returns the activity stream of a run instance.
func (c *MonitoringClient) GetInstanceActivities(ctx context.Context, id string) ([]map[string]interface{}, error) {
	path := constants.APIPathMonitoring + "/instances/" + id + "/activityStream"

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting instance activities: %w", err)
	}

	return decodeItems(resp.Body, "instance activities")
}

// GetInstancePayload retrieves the request or response payload of one
// activity within a run instance. direction must be "request" or "response".
func (c *MonitoringClient) GetInstancePayload(ctx context.Context, instanceID, activityID, direction string) (map[string]interface{}, error) {
	if direction != "request" && direction != "response" {
		return nil, fmt.Errorf("payload direction must be %q or %q, got %q", "request", "response", direction)
	}

	path := constants.APIPathMonitoring + "/instances/" + instanceID + "/activities/" + activityID + "/payload/" + direction

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting instance payload: %w", err)
	}

	var payload map[string]interface{}

	err = json.Unmarshal(resp.Body, &payload)
	if err != nil {
		return nil, fmt.Errorf("parsing instance payload response: %w", err)
	}

	return payload, nil
}

// ResubmitInstance resubmits a failed run instance.
func (c *MonitoringClient) ResubmitInstance(ctx context.Context, id string) error {
	path := constants.APIPathMonitoring + "/instances/" + id + "/resubmit"

	_, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("resubmitting instance: %w", err)
	}

	return nil
}

// PurgeInstances schedules a purge of run instances matching the request.
func (c *MonitoringClient) PurgeInstances(ctx context.Context, body map[string]interface{}) error {
	path := constants.APIPathMonitoring + "/instances/purge"

	_, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return fmt.Errorf("purging instances: %w", err)
	}

	return nil
}

// IntegrationStats returns aggregate run statistics per integration.
func (c *MonitoringClient) IntegrationStats(ctx context.Context, params *oic.QueryParams) (map[string]interface{}, error) {
	path := constants.APIPathMonitoring + "/integrationStats"

	var queryParams url.Values
	if params != nil {
		queryParams = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, queryParams)
	if err != nil {
		return nil, fmt.Errorf("getting integration stats: %w", err)
	}

	var result map[string]interface{}

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing integration stats response: %w", err)
	}

	return result, nil
}

// ListErrors lists errored run instances.
func (c *MonitoringClient) ListErrors(ctx context.Context, params *oic.QueryParams) ([]map[string]interface{}, error) {
	path := constants.APIPathMonitoring + "/errors"

	var queryParams url.Values
	if params != nil {
		queryParams = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, path, queryParams)
	if err != nil {
		return nil, fmt.Errorf("listing errors: %w", err)
	}

	return decodeItems(resp.Body, "errors")
}
