package oicclient_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/WolVesz/oic-devops/pkg/oic"
	"github.com/WolVesz/oic-devops/pkg/oicclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("creates client with full config", func(t *testing.T) {
		t.Parallel()

		client, err := oicclient.New(context.Background(), &oic.Config{
			InstanceURL: "https://myinstance.integration.ocp.oraclecloud.com",
			AuthURL:     "https://idcs.example.com/oauth2/v1/token",
			Username:    "svc-user",
			Password:    "secret",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("creates unauthenticated client", func(t *testing.T) {
		t.Parallel()

		client, err := oicclient.New(context.Background(), &oic.Config{
			InstanceURL: "https://myinstance.integration.ocp.oraclecloud.com",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("rejects nil config", func(t *testing.T) {
		t.Parallel()

		_, err := oicclient.New(context.Background(), nil)
		require.ErrorIs(t, err, oic.ErrConfigRequired)
	})

	t.Run("rejects missing instance URL", func(t *testing.T) {
		t.Parallel()

		_, err := oicclient.New(context.Background(), &oic.Config{
			AuthURL:  "https://idcs.example.com/oauth2/v1/token",
			Username: "svc-user",
			Password: "secret",
		})
		require.ErrorIs(t, err, oic.ErrInstanceURLRequired)
	})

	t.Run("rejects credentials without auth URL", func(t *testing.T) {
		t.Parallel()

		_, err := oicclient.New(context.Background(), &oic.Config{
			InstanceURL: "https://myinstance.integration.ocp.oraclecloud.com",
			Username:    "svc-user",
			Password:    "secret",
		})
		require.ErrorIs(t, err, oic.ErrAuthURLRequired)
	})

	t.Run("rejects partial credentials", func(t *testing.T) {
		t.Parallel()

		_, err := oicclient.New(context.Background(), &oic.Config{
			InstanceURL: "https://myinstance.integration.ocp.oraclecloud.com",
			AuthURL:     "https://idcs.example.com/oauth2/v1/token",
			Username:    "svc-user",
		})
		require.ErrorIs(t, err, oic.ErrCredentialsRequired)
	})

	t.Run("normalizes instance URL", func(t *testing.T) {
		t.Parallel()

		config := &oic.Config{
			InstanceURL: "myinstance.integration.ocp.oraclecloud.com/",
		}

		_, err := oicclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.Equal(t, "https://myinstance.integration.ocp.oraclecloud.com", config.InstanceURL)
	})
}

func TestNewWithCredentials(t *testing.T) {
	t.Parallel()

	client, err := oicclient.NewWithCredentials(context.Background(),
		"https://myinstance.integration.ocp.oraclecloud.com",
		"https://idcs.example.com/oauth2/v1/token",
		"svc-user", "secret")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewFromProfile(t *testing.T) {
	t.Parallel()
	t.Run("builds client from resolved profile", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "config.yml")

		content := `profiles:
  production:
    instance_url: https://prod.integration.ocp.oraclecloud.com
    auth_url: https://idcs.example.com/oauth2/v1/token
    identity_domain: prod
    username: svc-user
    password: secret
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		client, err := oicclient.NewFromProfile(context.Background(), path, "production")
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("unknown profile fails with configuration error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "config.yml")

		require.NoError(t, os.WriteFile(path, []byte("profiles: {}\n"), 0600))

		_, err := oicclient.NewFromProfile(context.Background(), path, "missing")
		require.Error(t, err)
		assert.True(t, oic.IsConfiguration(err))
	})
}
