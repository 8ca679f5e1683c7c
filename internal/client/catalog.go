package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// CatalogClient implements msapi.CatalogClient.
type CatalogClient struct {
	httpClient *http.Client
}

// NewCatalogClient creates a new catalog client.
func NewCatalogClient(httpClient *http.Client) *CatalogClient {
	return &CatalogClient{
		httpClient: httpClient,
	}
}

func skusPath(customerID, productID string) string {
	return "/customers/" + customerID + "/products/" + productID + "/skus"
}

// Skus implements msapi.CatalogClient.Skus.
func (c *CatalogClient) Skus(ctx context.Context, customerID, productID string) ([]msapi.Sku, error) {
	resp, err := c.httpClient.Get(ctx, skusPath(customerID, productID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing skus: %w", err)
	}

	return decodeItems[msapi.Sku](resp, "skus list")
}

// Sku implements msapi.CatalogClient.Sku.
func (c *CatalogClient) Sku(ctx context.Context, customerID, productID, skuID string) (*msapi.Sku, error) {
	resp, err := c.httpClient.Get(ctx, skusPath(customerID, productID)+"/"+skuID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting sku: %w", err)
	}

	return decodeResponse[msapi.Sku](resp, "sku")
}

// Availabilities implements msapi.CatalogClient.Availabilities.
func (c *CatalogClient) Availabilities(ctx context.Context, customerID, productID, skuID string) ([]msapi.Availability, error) {
	resp, err := c.httpClient.Get(ctx, skusPath(customerID, productID)+"/"+skuID+"/availabilities", nil)
	if err != nil {
		return nil, fmt.Errorf("listing availabilities: %w", err)
	}

	return decodeItems[msapi.Availability](resp, "availabilities list")
}
