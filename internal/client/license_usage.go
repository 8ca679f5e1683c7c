package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// LicenseUsageClient implements msapi.LicenseUsageClient.
type LicenseUsageClient struct {
	httpClient *http.Client
}

// NewLicenseUsageClient creates a new license usage client.
func NewLicenseUsageClient(httpClient *http.Client) *LicenseUsageClient {
	return &LicenseUsageClient{
		httpClient: httpClient,
	}
}

// Usage implements msapi.LicenseUsageClient.Usage.
func (c *LicenseUsageClient) Usage(ctx context.Context, customerID string) ([]msapi.LicenseUsage, error) {
	resp, err := c.httpClient.Get(ctx, "/customers/"+customerID+"/subscribedskus", nil)
	if err != nil {
		return nil, fmt.Errorf("getting license usage: %w", err)
	}

	return decodeItems[msapi.LicenseUsage](resp, "license usage")
}
