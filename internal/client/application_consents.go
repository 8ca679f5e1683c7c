package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// ApplicationConsentsClient implements msapi.ApplicationConsentsClient.
type ApplicationConsentsClient struct {
	httpClient *http.Client
}

// NewApplicationConsentsClient creates a new application consents client.
func NewApplicationConsentsClient(httpClient *http.Client) *ApplicationConsentsClient {
	return &ApplicationConsentsClient{
		httpClient: httpClient,
	}
}

// Create implements msapi.ApplicationConsentsClient.Create.
func (c *ApplicationConsentsClient) Create(
	ctx context.Context,
	customerID string,
	consent *msapi.ApplicationConsent,
) (*msapi.ApplicationConsent, error) {
	resp, err := c.httpClient.Post(ctx, "/customers/"+customerID+"/applicationconsents", consent)
	if err != nil {
		return nil, fmt.Errorf("creating application consent: %w", err)
	}

	return decodeResponse[msapi.ApplicationConsent](resp, "application consent")
}

// Remove implements msapi.ApplicationConsentsClient.Remove.
func (c *ApplicationConsentsClient) Remove(ctx context.Context, customerID, applicationID string) error {
	_, err := c.httpClient.Delete(ctx, "/customers/"+customerID+"/applicationconsents/"+applicationID)
	if err != nil {
		return fmt.Errorf("removing application consent: %w", err)
	}

	return nil
}
