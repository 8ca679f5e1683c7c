package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"golang.org/x/sync/errgroup"
)

const (
	permissionFields   = "id,displayName,appRoles,oauth2PermissionScopes"
	resourceAccessRole = "Role"
)

// ApplicationsClient implements msapi.ApplicationsClient.
type ApplicationsClient struct {
	httpClient *http.Client
}

// NewApplicationsClient creates a new applications client.
func NewApplicationsClient(httpClient *http.Client) *ApplicationsClient {
	return &ApplicationsClient{
		httpClient: httpClient,
	}
}

// GetByAppID implements msapi.ApplicationsClient.GetByAppID.
func (c *ApplicationsClient) GetByAppID(ctx context.Context, appID string) (*msapi.Application, error) {
	resp, err := c.httpClient.Get(ctx, "/applications(appId='"+appID+"')", nil)
	if err != nil {
		return nil, fmt.Errorf("getting application: %w", err)
	}

	return decodeResponse[msapi.Application](resp, "application")
}

// Permissions implements msapi.ApplicationsClient.Permissions. Each resource
// the application requests access to is resolved through its service
// principal, one lookup per distinct resource.
func (c *ApplicationsClient) Permissions(ctx context.Context, appID string) ([]msapi.AppPermissionGroup, error) {
	app, err := c.GetByAppID(ctx, appID)
	if err != nil {
		return nil, err
	}

	principals, err := c.resourcePrincipals(ctx, app.RequiredResourceAccess)
	if err != nil {
		return nil, err
	}

	groups := make([]msapi.AppPermissionGroup, 0, len(app.RequiredResourceAccess))

	for _, resource := range app.RequiredResourceAccess {
		principal := principals[resource.ResourceAppID]

		group := msapi.AppPermissionGroup{
			Role:        resource.ResourceAppID,
			Permissions: make([]msapi.AppPermission, 0, len(resource.ResourceAccess)),
		}

		if principal.DisplayName != "" {
			group.Role = principal.DisplayName
		}

		for _, access := range resource.ResourceAccess {
			group.Permissions = append(group.Permissions, resolvePermission(principal, access))
		}

		groups = append(groups, group)
	}

	return groups, nil
}

func (c *ApplicationsClient) resourcePrincipals(
	ctx context.Context,
	resources []msapi.RequiredResourceAccess,
) (map[string]*msapi.ServicePrincipal, error) {
	var (
		mutex      sync.Mutex
		principals = make(map[string]*msapi.ServicePrincipal, len(resources))
	)

	group, groupCtx := errgroup.WithContext(ctx)

	for _, resource := range resources {
		resourceAppID := resource.ResourceAppID

		mutex.Lock()
		_, seen := principals[resourceAppID]
		principals[resourceAppID] = nil
		mutex.Unlock()

		if seen {
			continue
		}

		group.Go(func() error {
			principal, err := findServicePrincipal(groupCtx, c.httpClient, resourceAppID, permissionFields)
			if err != nil {
				return err
			}

			if principal == nil {
				return fmt.Errorf("%w for resourceAppId %s", constants.ErrServicePrincipalAbsent, resourceAppID)
			}

			mutex.Lock()
			principals[resourceAppID] = principal
			mutex.Unlock()

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	return principals, nil
}

func resolvePermission(principal *msapi.ServicePrincipal, access msapi.ResourceAccess) msapi.AppPermission {
	permission := msapi.AppPermission{
		Name: access.ID,
		Type: msapi.PermissionTypeDelegated,
	}

	if access.Type == resourceAccessRole {
		permission.Type = msapi.PermissionTypeApplication

		for _, role := range principal.AppRoles {
			if role.ID == access.ID && role.Value != "" {
				permission.Name = role.Value

				break
			}
		}

		return permission
	}

	for _, scope := range principal.OAuth2PermissionScopes {
		if scope.ID == access.ID && scope.Value != "" {
			permission.Name = scope.Value

			break
		}
	}

	return permission
}
