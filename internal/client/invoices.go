package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

const contentTypePDF = "application/pdf"

// InvoicesClient implements msapi.InvoicesClient.
type InvoicesClient struct {
	httpClient *http.Client
}

// NewInvoicesClient creates a new invoices client.
func NewInvoicesClient(httpClient *http.Client) *InvoicesClient {
	return &InvoicesClient{
		httpClient: httpClient,
	}
}

// List implements msapi.InvoicesClient.List.
func (c *InvoicesClient) List(ctx context.Context) ([]msapi.Invoice, error) {
	resp, err := c.httpClient.Get(ctx, "/invoices", nil)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	return decodeItems[msapi.Invoice](resp, "invoices list")
}

// StatementPDF implements msapi.InvoicesClient.StatementPDF. The document is
// returned as received.
func (c *InvoicesClient) StatementPDF(ctx context.Context, invoiceID string) ([]byte, error) {
	resp, err := c.httpClient.GetRaw(ctx, "/invoices/"+invoiceID+"/documents/statement", contentTypePDF)
	if err != nil {
		return nil, fmt.Errorf("downloading invoice statement: %w", err)
	}

	return resp.Body, nil
}
