package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// EnterpriseApplicationsClient implements msapi.EnterpriseApplicationsClient.
type EnterpriseApplicationsClient struct {
	httpClient *http.Client
}

// NewEnterpriseApplicationsClient creates a new enterprise applications client.
func NewEnterpriseApplicationsClient(httpClient *http.Client) *EnterpriseApplicationsClient {
	return &EnterpriseApplicationsClient{
		httpClient: httpClient,
	}
}

// findServicePrincipal returns the first service principal registered for
// appID, or nil. selectFields may be empty.
func findServicePrincipal(ctx context.Context, httpClient *http.Client, appID, selectFields string) (*msapi.ServicePrincipal, error) {
	query := url.Values{}
	query.Set("$filter", "appId eq '"+appID+"'")

	if selectFields != "" {
		query.Set("$select", selectFields)
	}

	resp, err := httpClient.Get(ctx, "/servicePrincipals", query)
	if err != nil {
		return nil, fmt.Errorf("getting service principal: %w", err)
	}

	principals, err := decodeValue[msapi.ServicePrincipal](resp, "service principals list")
	if err != nil {
		return nil, err
	}

	if len(principals) == 0 {
		return nil, nil //nolint:nilnil // absence is not an error
	}

	return &principals[0], nil
}

// GetByAppID implements msapi.EnterpriseApplicationsClient.GetByAppID.
func (c *EnterpriseApplicationsClient) GetByAppID(ctx context.Context, appID string) (*msapi.ServicePrincipal, error) {
	return findServicePrincipal(ctx, c.httpClient, appID, "")
}

// AppRoleAssignments implements msapi.EnterpriseApplicationsClient.AppRoleAssignments.
func (c *EnterpriseApplicationsClient) AppRoleAssignments(ctx context.Context, principalID string) ([]msapi.AppRoleAssignment, error) {
	resp, err := c.httpClient.Get(ctx, "/servicePrincipals/"+principalID+"/appRoleAssignments", nil)
	if err != nil {
		return nil, fmt.Errorf("listing app role assignments: %w", err)
	}

	assignments, err := decodeValue[msapi.AppRoleAssignment](resp, "app role assignments list")
	if err != nil {
		return nil, err
	}

	if assignments == nil {
		assignments = []msapi.AppRoleAssignment{}
	}

	return assignments, nil
}

// GrantAppRoleAssignment implements msapi.EnterpriseApplicationsClient.GrantAppRoleAssignment.
func (c *EnterpriseApplicationsClient) GrantAppRoleAssignment(
	ctx context.Context,
	principalID, resourceID, appRoleID string,
) (*msapi.AppRoleAssignment, error) {
	body := &msapi.AppRoleAssignment{
		PrincipalID: principalID,
		ResourceID:  resourceID,
		AppRoleID:   appRoleID,
	}

	resp, err := c.httpClient.Post(ctx, "/servicePrincipals/"+principalID+"/appRoleAssignments", body)
	if err != nil {
		return nil, fmt.Errorf("granting app role assignment: %w", err)
	}

	return decodeResponse[msapi.AppRoleAssignment](resp, "app role assignment")
}
