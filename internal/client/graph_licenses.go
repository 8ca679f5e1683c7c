package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// GraphLicensesClient implements msapi.GraphLicensesClient.
type GraphLicensesClient struct {
	httpClient *http.Client
}

// NewGraphLicensesClient creates a new Graph licenses client.
func NewGraphLicensesClient(httpClient *http.Client) *GraphLicensesClient {
	return &GraphLicensesClient{
		httpClient: httpClient,
	}
}

// UserLicenses implements msapi.GraphLicensesClient.UserLicenses.
func (c *GraphLicensesClient) UserLicenses(ctx context.Context) ([]msapi.UserAssignedLicenses, error) {
	query := url.Values{}
	query.Set("$select", "id,userPrincipalName,assignedLicenses")

	resp, err := c.httpClient.Get(ctx, "/users", query)
	if err != nil {
		return nil, fmt.Errorf("listing user licenses: %w", err)
	}

	return decodeValue[msapi.UserAssignedLicenses](resp, "user licenses list")
}

// SubscribedSkus implements msapi.GraphLicensesClient.SubscribedSkus.
func (c *GraphLicensesClient) SubscribedSkus(ctx context.Context) ([]msapi.SubscribedSku, error) {
	resp, err := c.httpClient.Get(ctx, "/subscribedSkus", nil)
	if err != nil {
		return nil, fmt.Errorf("listing subscribed skus: %w", err)
	}

	return decodeValue[msapi.SubscribedSku](resp, "subscribed skus list")
}
