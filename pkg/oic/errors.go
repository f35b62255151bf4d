package oic

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrInstanceURLRequired = errors.New("instance URL is required")
	ErrAuthURLRequired     = errors.New("auth URL is required")
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrNoAccessToken       = errors.New("no access token in authentication response")
)

// ConfigurationError reports a bad or missing profile or profile field. It is
// fatal and never retried.
type ConfigurationError struct {
	Profile string
	Detail  string
}

func (e *ConfigurationError) Error() string {
	if e.Profile != "" {
		return fmt.Sprintf("configuration error for profile %q: %s", e.Profile, e.Detail)
	}

	return "configuration error: " + e.Detail
}

// AuthenticationError reports a failed token acquisition or an authorization
// failure that persisted after one renewal.
type AuthenticationError struct {
	StatusCode int
	Detail     string
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication failed with status %d: %s", e.StatusCode, e.Detail)
	}

	return "authentication failed: " + e.Detail
}

// NotFoundError reports a resource path that does not exist upstream.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "resource not found: " + e.Path
}

// RequestError reports a non-transient client error (validation, conflict).
// It carries the upstream status and detail and is never retried.
type RequestError struct {
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Detail)
}

// TransientError reports a failure that was retried with backoff and still
// failed: 429, 5xx, or a network-level error (StatusCode 0).
type TransientError struct {
	StatusCode int
	Detail     string
}

func (e *TransientError) Error() string {
	if e.StatusCode == 0 {
		return "transient request failure: " + e.Detail
	}

	return fmt.Sprintf("transient request failure with status %d: %s", e.StatusCode, e.Detail)
}

// IsConfiguration checks if the error is a configuration error.
func IsConfiguration(err error) bool {
	target := &ConfigurationError{}

	return errors.As(err, &target)
}

// IsAuthentication checks if the error is an authentication error.
func IsAuthentication(err error) bool {
	target := &AuthenticationError{}

	return errors.As(err, &target)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	target := &NotFoundError{}

	return errors.As(err, &target)
}

// IsRequest checks if the error is a non-transient request error.
func IsRequest(err error) bool {
	target := &RequestError{}

	return errors.As(err, &target)
}

// IsTransient checks if the error is a transient error.
func IsTransient(err error) bool {
	target := &TransientError{}

	return errors.As(err, &target)
}

// errorBody is the shape of OIC error responses. Which field carries the
// message varies by endpoint.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Title   string `json:"title"`
}

// ParseErrorDetail extracts the most specific message from an OIC error body,
// falling back to the raw body when it is not JSON.
func ParseErrorDetail(data []byte) string {
	var body errorBody

	err := json.Unmarshal(data, &body)
	if err != nil {
		return string(data)
	}

	switch {
	case body.Detail != "":
		return body.Detail
	case body.Message != "":
		return body.Message
	case body.Title != "":
		return body.Title
	default:
		return string(data)
	}
}
