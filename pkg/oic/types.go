package oic

import (
	"net/url"
	"strconv"
)

// ListResponse is the paginated envelope returned by OIC list endpoints.
type ListResponse[T any] struct {
	Items        []T  `json:"items"        yaml:"items"`
	TotalResults int  `json:"totalResults" yaml:"totalResults"`
	HasMore      bool `json:"hasMore"      yaml:"hasMore"`
	Limit        int  `json:"limit"        yaml:"limit"`
	Offset       int  `json:"offset"       yaml:"offset"`
}

// QueryParams holds common query parameters for list endpoints.
type QueryParams struct {
	Limit   int
	Offset  int
	Fields  string
	Query   string
	OrderBy string
	Status  string
	Extra   map[string]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{Extra: map[string]string{}}
}

// ToValues converts the parameters to url.Values, dropping zero values.
func (p *QueryParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	if p.Offset > 0 {
		values.Set("offset", strconv.Itoa(p.Offset))
	}

	if p.Fields != "" {
		values.Set("fields", p.Fields)
	}

	if p.Query != "" {
		values.Set("q", p.Query)
	}

	if p.OrderBy != "" {
		values.Set("orderBy", p.OrderBy)
	}

	if p.Status != "" {
		values.Set("status", p.Status)
	}

	for key, value := range p.Extra {
		values.Set(key, value)
	}

	return values
}

// Integration represents an integration as returned by the platform. The
// platform owns the full schema; only the envelope fields used for display
// and path construction are modeled.
type Integration struct {
	ID          string `json:"id,omitempty"          yaml:"id,omitempty"`
	Code        string `json:"code,omitempty"        yaml:"code,omitempty"`
	Version     string `json:"version,omitempty"     yaml:"version,omitempty"`
	Name        string `json:"name,omitempty"        yaml:"name,omitempty"`
	Status      string `json:"status,omitempty"      yaml:"status,omitempty"`
	Pattern     string `json:"pattern,omitempty"     yaml:"pattern,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
}

// Connection represents a connection record.
type Connection struct {
	ID          string `json:"id,omitempty"          yaml:"id,omitempty"`
	Code        string `json:"code,omitempty"        yaml:"code,omitempty"`
	Name        string `json:"name,omitempty"        yaml:"name,omitempty"`
	Status      string `json:"status,omitempty"      yaml:"status,omitempty"`
	AdapterType string `json:"adapterType,omitempty" yaml:"adapterType,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
}

// ConnectionTestResult is the outcome of a connection test.
type ConnectionTestResult struct {
	Status  string `json:"status,omitempty"  yaml:"status,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Library represents a JavaScript library record.
type Library struct {
	ID          string `json:"id,omitempty"          yaml:"id,omitempty"`
	Code        string `json:"code,omitempty"        yaml:"code,omitempty"`
	Version     string `json:"version,omitempty"     yaml:"version,omitempty"`
	Name        string `json:"name,omitempty"        yaml:"name,omitempty"`
	Status      string `json:"status,omitempty"      yaml:"status,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
}

// Lookup represents a lookup table record.
type Lookup struct {
	ID          string `json:"id,omitempty"          yaml:"id,omitempty"`
	Name        string `json:"name,omitempty"        yaml:"name,omitempty"`
	Status      string `json:"status,omitempty"      yaml:"status,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
}

// Package represents a package record.
type Package struct {
	ID          string `json:"id,omitempty"          yaml:"id,omitempty"`
	Name        string `json:"name,omitempty"        yaml:"name,omitempty"`
	Type        string `json:"type,omitempty"        yaml:"type,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
}

// Instance represents a monitoring instance record.
type Instance struct {
	ID            string `json:"id,omitempty"            yaml:"id,omitempty"`
	IntegrationID string `json:"integrationId,omitempty" yaml:"integrationId,omitempty"`
	Status        string `json:"status,omitempty"        yaml:"status,omitempty"`
	CreationDate  string `json:"creationDate,omitempty"  yaml:"creationDate,omitempty"`
}
