package client

import (
	"context"

	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// GraphClient implements msapi.Graph.
type GraphClient struct {
	*service

	gdap                   *GDAPClient
	domains                *DomainsClient
	users                  *GraphUsersClient
	licenses               *GraphLicensesClient
	applications           *ApplicationsClient
	enterpriseApplications *EnterpriseApplicationsClient
}

// NewGraph creates a Microsoft Graph client from a normalized config.
func NewGraph(ctx context.Context, config *msapi.Config) (*GraphClient, error) {
	svc, err := newService(ctx, config, chainWith(config.Interceptors))
	if err != nil {
		return nil, err
	}

	return &GraphClient{
		service:                svc,
		gdap:                   NewGDAPClient(svc.httpClient),
		domains:                NewDomainsClient(svc.httpClient),
		users:                  NewGraphUsersClient(svc.httpClient),
		licenses:               NewGraphLicensesClient(svc.httpClient),
		applications:           NewApplicationsClient(svc.httpClient),
		enterpriseApplications: NewEnterpriseApplicationsClient(svc.httpClient),
	}, nil
}

// GDAP implements msapi.Graph.GDAP.
func (c *GraphClient) GDAP() msapi.GDAPClient {
	return c.gdap
}

// Domains implements msapi.Graph.Domains.
func (c *GraphClient) Domains() msapi.DomainsClient {
	return c.domains
}

// Users implements msapi.Graph.Users.
func (c *GraphClient) Users() msapi.GraphUsersClient {
	return c.users
}

// Licenses implements msapi.Graph.Licenses.
func (c *GraphClient) Licenses() msapi.GraphLicensesClient {
	return c.licenses
}

// Applications implements msapi.Graph.Applications.
func (c *GraphClient) Applications() msapi.ApplicationsClient {
	return c.applications
}

// EnterpriseApplications implements msapi.Graph.EnterpriseApplications.
func (c *GraphClient) EnterpriseApplications() msapi.EnterpriseApplicationsClient {
	return c.enterpriseApplications
}

var _ msapi.Graph = (*GraphClient)(nil)
