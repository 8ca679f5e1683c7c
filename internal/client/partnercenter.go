package client

import (
	"context"

	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// PartnerCenterClient implements msapi.PartnerCenter.
type PartnerCenterClient struct {
	*service

	customers           *CustomersClient
	subscriptions       *SubscriptionsClient
	invoices            *InvoicesClient
	users               *CustomerUsersClient
	orders              *OrdersClient
	catalog             *CatalogClient
	applicationConsents *ApplicationConsentsClient
	licenses            *LicenseUsageClient
}

// NewPartnerCenter creates a Partner Center client from a normalized config.
// Every call carries MS-RequestId and MS-CorrelationId headers ahead of any
// caller interceptors.
func NewPartnerCenter(ctx context.Context, config *msapi.Config) (*PartnerCenterClient, error) {
	chain := chainWith(config.Interceptors, msapi.CorrelationInterceptor(""))

	svc, err := newService(ctx, config, chain)
	if err != nil {
		return nil, err
	}

	return &PartnerCenterClient{
		service:             svc,
		customers:           NewCustomersClient(svc.httpClient),
		subscriptions:       NewSubscriptionsClient(svc.httpClient),
		invoices:            NewInvoicesClient(svc.httpClient),
		users:               NewCustomerUsersClient(svc.httpClient),
		orders:              NewOrdersClient(svc.httpClient),
		catalog:             NewCatalogClient(svc.httpClient),
		applicationConsents: NewApplicationConsentsClient(svc.httpClient),
		licenses:            NewLicenseUsageClient(svc.httpClient),
	}, nil
}

// Customers implements msapi.PartnerCenter.Customers.
func (c *PartnerCenterClient) Customers() msapi.CustomersClient {
	return c.customers
}

// Subscriptions implements msapi.PartnerCenter.Subscriptions.
func (c *PartnerCenterClient) Subscriptions() msapi.SubscriptionsClient {
	return c.subscriptions
}

// Invoices implements msapi.PartnerCenter.Invoices.
func (c *PartnerCenterClient) Invoices() msapi.InvoicesClient {
	return c.invoices
}

// Users implements msapi.PartnerCenter.Users.
func (c *PartnerCenterClient) Users() msapi.CustomerUsersClient {
	return c.users
}

// Orders implements msapi.PartnerCenter.Orders.
func (c *PartnerCenterClient) Orders() msapi.OrdersClient {
	return c.orders
}

// Catalog implements msapi.PartnerCenter.Catalog.
func (c *PartnerCenterClient) Catalog() msapi.CatalogClient {
	return c.catalog
}

// ApplicationConsents implements msapi.PartnerCenter.ApplicationConsents.
func (c *PartnerCenterClient) ApplicationConsents() msapi.ApplicationConsentsClient {
	return c.applicationConsents
}

// Licenses implements msapi.PartnerCenter.Licenses.
func (c *PartnerCenterClient) Licenses() msapi.LicenseUsageClient {
	return c.licenses
}

var _ msapi.PartnerCenter = (*PartnerCenterClient)(nil)
