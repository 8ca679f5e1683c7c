package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// CustomersClient implements msapi.CustomersClient.
type CustomersClient struct {
	httpClient *http.Client
}

// NewCustomersClient creates a new customers client.
func NewCustomersClient(httpClient *http.Client) *CustomersClient {
	return &CustomersClient{
		httpClient: httpClient,
	}
}

// List implements msapi.CustomersClient.List.
func (c *CustomersClient) List(ctx context.Context) ([]msapi.Customer, error) {
	resp, err := c.httpClient.Get(ctx, "/customers", nil)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	return decodeItems[msapi.Customer](resp, "customers list")
}

// Get implements msapi.CustomersClient.Get.
func (c *CustomersClient) Get(ctx context.Context, customerID string) (*msapi.Customer, error) {
	resp, err := c.httpClient.Get(ctx, "/customers/"+customerID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return decodeResponse[msapi.Customer](resp, "customer")
}

// Create implements msapi.CustomersClient.Create.
func (c *CustomersClient) Create(ctx context.Context, request *msapi.CustomerCreateRequest) (*msapi.Customer, error) {
	resp, err := c.httpClient.Post(ctx, "/customers", request)
	if err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}

	return decodeResponse[msapi.Customer](resp, "customer")
}
