package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// DomainsClient implements msapi.DomainsClient.
type DomainsClient struct {
	httpClient *http.Client
}

// NewDomainsClient creates a new domains client.
func NewDomainsClient(httpClient *http.Client) *DomainsClient {
	return &DomainsClient{
		httpClient: httpClient,
	}
}

// Create implements msapi.DomainsClient.Create.
func (c *DomainsClient) Create(ctx context.Context, domainName string) (*msapi.Domain, error) {
	resp, err := c.httpClient.Post(ctx, "/domains", &msapi.DomainCreate{ID: domainName})
	if err != nil {
		return nil, fmt.Errorf("creating domain: %w", err)
	}

	return decodeResponse[msapi.Domain](resp, "domain")
}

// List implements msapi.DomainsClient.List.
func (c *DomainsClient) List(ctx context.Context) ([]msapi.Domain, error) {
	resp, err := c.httpClient.Get(ctx, "/domains", nil)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}

	return decodeValue[msapi.Domain](resp, "domains list")
}

// Get implements msapi.DomainsClient.Get.
func (c *DomainsClient) Get(ctx context.Context, domainName string) (*msapi.Domain, error) {
	resp, err := c.httpClient.Get(ctx, "/domains/"+domainName, nil)
	if err != nil {
		return nil, fmt.Errorf("getting domain: %w", err)
	}

	return decodeResponse[msapi.Domain](resp, "domain")
}

// Update implements msapi.DomainsClient.Update. Graph answers 204, so the
// domain is read back afterwards.
func (c *DomainsClient) Update(ctx context.Context, domainName string, update *msapi.DomainUpdate) (*msapi.Domain, error) {
	resp, err := c.httpClient.Patch(ctx, "/domains/"+domainName, update)
	if err != nil {
		return nil, fmt.Errorf("updating domain: %w", err)
	}

	if len(resp.Body) == 0 {
		return c.Get(ctx, domainName)
	}

	return decodeResponse[msapi.Domain](resp, "domain")
}

// Delete implements msapi.DomainsClient.Delete.
func (c *DomainsClient) Delete(ctx context.Context, domainName string) error {
	_, err := c.httpClient.Delete(ctx, "/domains/"+domainName)
	if err != nil {
		return fmt.Errorf("deleting domain: %w", err)
	}

	return nil
}

// Verify implements msapi.DomainsClient.Verify.
func (c *DomainsClient) Verify(ctx context.Context, domainName string) (*msapi.Domain, error) {
	resp, err := c.httpClient.Post(ctx, "/domains/"+domainName+"/verify", nil)
	if err != nil {
		return nil, fmt.Errorf("verifying domain: %w", err)
	}

	return decodeResponse[msapi.Domain](resp, "domain")
}

// VerificationDNSRecords implements msapi.DomainsClient.VerificationDNSRecords.
func (c *DomainsClient) VerificationDNSRecords(ctx context.Context, domainName string) ([]msapi.DomainDNSRecord, error) {
	resp, err := c.httpClient.Get(ctx, "/domains/"+domainName+"/verificationDnsRecords", nil)
	if err != nil {
		return nil, fmt.Errorf("listing domain verification records: %w", err)
	}

	return decodeValue[msapi.DomainDNSRecord](resp, "domain verification records")
}
