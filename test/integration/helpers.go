//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msclient"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Tenant       string
	ClientID     string
	ClientSecret string
	RefreshToken string
	NATSURL      string
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Tenant:       os.Getenv("MSPC_TENANT"),
		ClientID:     os.Getenv("MSPC_CLIENT_ID"),
		ClientSecret: os.Getenv("MSPC_CLIENT_SECRET"),
		RefreshToken: os.Getenv("MSPC_REFRESH_TOKEN"),
		NATSURL:      os.Getenv("NATS_URL"),
	}
}

// SkipIfMissingConfig skips the test unless application credentials are set.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Tenant == "" || config.ClientID == "" || config.ClientSecret == "" {
		t.Skip("MSPC_TENANT, MSPC_CLIENT_ID or MSPC_CLIENT_SECRET not set, skipping integration test")
	}
}

// Authentication returns refresh token credentials when a refresh token is
// configured and client credentials otherwise.
func (config *TestConfig) Authentication() msapi.Authentication {
	if config.RefreshToken != "" {
		return msapi.RefreshTokenCredentials{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RefreshToken: config.RefreshToken,
		}
	}

	return msapi.ClientCredentials{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
	}
}

// NewPartnerCenter creates a Partner Center client for the test tenant.
func (config *TestConfig) NewPartnerCenter(t *testing.T, store msapi.RefreshTokenStore) msapi.PartnerCenter {
	t.Helper()

	pc, err := msclient.NewPartnerCenter(context.Background(), &msapi.Config{
		TenantDomain:      config.Tenant,
		Authentication:    config.Authentication(),
		Conflict:          msapi.DefaultConflictPolicy(),
		RefreshTokenStore: store,
		Timeout:           time.Minute,
	})
	require.NoError(t, err)

	return pc
}

// NewGraph creates a Graph client for the test tenant.
func (config *TestConfig) NewGraph(t *testing.T) msapi.Graph {
	t.Helper()

	graph, err := msclient.NewGraph(context.Background(), &msapi.Config{
		TenantDomain:   config.Tenant,
		Authentication: config.Authentication(),
		Timeout:        time.Minute,
	})
	require.NoError(t, err)

	return graph
}
