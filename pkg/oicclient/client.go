// Package oicclient provides the main entry point for creating Oracle
// Integration Cloud API clients.
package oicclient

import (
	"context"
	"strings"

	"github.com/WolVesz/oic-devops/internal/client"
	"github.com/WolVesz/oic-devops/pkg/oic"
	"github.com/WolVesz/oic-devops/pkg/profile"
)

// New creates a new OIC API client from an explicit configuration.
func New(ctx context.Context, config *oic.Config) (oic.Client, error) {
	if config == nil {
		return nil, oic.ErrConfigRequired
	}

	if config.InstanceURL == "" {
		return nil, oic.ErrInstanceURLRequired
	}

	config.InstanceURL = normalizeURL(config.InstanceURL)

	if needsAuth(config) {
		if config.AuthURL == "" {
			return nil, oic.ErrAuthURLRequired
		}

		if config.Username == "" || config.Password == "" {
			return nil, oic.ErrCredentialsRequired
		}
	}

	return client.New(config)
}

// NewFromProfile resolves a named profile from the given config file path
// (empty path means the default locations) and builds a client from it.
func NewFromProfile(ctx context.Context, path, name string) (oic.Client, error) {
	store, err := profile.NewStore(path)
	if err != nil {
		return nil, err
	}

	record, err := store.Resolve(name)
	if err != nil {
		return nil, err
	}

	return New(ctx, record.ClientConfig())
}

// NewWithCredentials wraps New for the common case of instance URL, token
// endpoint, and a username/password pair.
func NewWithCredentials(ctx context.Context, instanceURL, authURL, username, password string) (oic.Client, error) {
	return New(ctx, &oic.Config{
		InstanceURL: instanceURL,
		AuthURL:     authURL,
		Username:    username,
		Password:    password,
	})
}

// needsAuth reports whether the config carries any credential material.
func needsAuth(config *oic.Config) bool {
	return config.Username != "" || config.Password != "" || config.AuthURL != ""
}

// normalizeURL trims trailing slashes and defaults the scheme to https.
func normalizeURL(raw string) string {
	normalized := strings.TrimSuffix(raw, "/")
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	return normalized
}
