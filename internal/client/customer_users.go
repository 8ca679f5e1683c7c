package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

const objectTypeCustomerUser = "CustomerUser"

// CustomerUsersClient implements msapi.CustomerUsersClient.
type CustomerUsersClient struct {
	httpClient *http.Client
}

// NewCustomerUsersClient creates a new customer users client.
func NewCustomerUsersClient(httpClient *http.Client) *CustomerUsersClient {
	return &CustomerUsersClient{
		httpClient: httpClient,
	}
}

func customerUsersPath(customerID string) string {
	return "/customers/" + customerID + "/users"
}

// Create implements msapi.CustomerUsersClient.Create.
func (c *CustomerUsersClient) Create(
	ctx context.Context,
	customerID string,
	request *msapi.CustomerUserCreateRequest,
) (*msapi.CustomerUser, error) {
	resp, err := c.httpClient.Post(ctx, customerUsersPath(customerID), request)
	if err != nil {
		return nil, fmt.Errorf("creating customer user: %w", err)
	}

	return decodeResponse[msapi.CustomerUser](resp, "customer user")
}

// List implements msapi.CustomerUsersClient.List.
func (c *CustomerUsersClient) List(ctx context.Context, customerID string) ([]msapi.CustomerUser, error) {
	resp, err := c.httpClient.Get(ctx, customerUsersPath(customerID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing customer users: %w", err)
	}

	return decodeItems[msapi.CustomerUser](resp, "customer users list")
}

// Get implements msapi.CustomerUsersClient.Get.
func (c *CustomerUsersClient) Get(ctx context.Context, customerID, userID string) (*msapi.CustomerUser, error) {
	resp, err := c.httpClient.Get(ctx, customerUsersPath(customerID)+"/"+userID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting customer user: %w", err)
	}

	return decodeResponse[msapi.CustomerUser](resp, "customer user")
}

// GetByPrincipalName implements msapi.CustomerUsersClient.GetByPrincipalName.
func (c *CustomerUsersClient) GetByPrincipalName(
	ctx context.Context,
	customerID, userPrincipalName string,
) (*msapi.CustomerUser, error) {
	users, err := c.List(ctx, customerID)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].UserPrincipalName == userPrincipalName {
			return &users[i], nil
		}
	}

	return nil, nil //nolint:nilnil // absence is not an error
}

// Roles implements msapi.CustomerUsersClient.Roles.
func (c *CustomerUsersClient) Roles(ctx context.Context, customerID, userID string) ([]msapi.DirectoryRole, error) {
	resp, err := c.httpClient.Get(ctx, customerUsersPath(customerID)+"/"+userID+"/directoryroles", nil)
	if err != nil {
		return nil, fmt.Errorf("listing customer user roles: %w", err)
	}

	return decodeItems[msapi.DirectoryRole](resp, "directory roles list")
}

type resetPasswordRequest struct {
	PasswordProfile msapi.PasswordProfile `json:"passwordProfile"`
	Attributes      msapi.Attributes      `json:"attributes"`
}

// ResetPassword implements msapi.CustomerUsersClient.ResetPassword.
func (c *CustomerUsersClient) ResetPassword(
	ctx context.Context,
	customerID, userID string,
	profile msapi.PasswordProfile,
) (*msapi.CustomerUser, error) {
	request := &resetPasswordRequest{
		PasswordProfile: profile,
		Attributes:      msapi.Attributes{ObjectType: objectTypeCustomerUser},
	}

	resp, err := c.httpClient.Patch(ctx, customerUsersPath(customerID)+"/"+userID+"/resetpassword", request)
	if err != nil {
		return nil, fmt.Errorf("resetting customer user password: %w", err)
	}

	return decodeResponse[msapi.CustomerUser](resp, "customer user")
}

// AddToRole implements msapi.CustomerUsersClient.AddToRole.
func (c *CustomerUsersClient) AddToRole(
	ctx context.Context,
	customerID, roleID string,
	member *msapi.UserRoleMemberRequest,
) (*msapi.UserRoleMember, error) {
	path := "/customers/" + customerID + "/directoryroles/" + roleID + "/usermembers"

	resp, err := c.httpClient.Post(ctx, path, member)
	if err != nil {
		return nil, fmt.Errorf("adding customer user to role: %w", err)
	}

	return decodeResponse[msapi.UserRoleMember](resp, "role member")
}

// AssignLicenses implements msapi.CustomerUsersClient.AssignLicenses.
func (c *CustomerUsersClient) AssignLicenses(
	ctx context.Context,
	customerID, userID string,
	request *msapi.LicenseUpdateRequest,
) (*msapi.LicenseUpdateResponse, error) {
	resp, err := c.httpClient.Post(ctx, customerUsersPath(customerID)+"/"+userID+"/licenseupdates", request)
	if err != nil {
		return nil, fmt.Errorf("assigning customer user licenses: %w", err)
	}

	return decodeResponse[msapi.LicenseUpdateResponse](resp, "license update")
}

// LicenseAssignments implements msapi.CustomerUsersClient.LicenseAssignments.
func (c *CustomerUsersClient) LicenseAssignments(ctx context.Context, customerID, userID string) ([]msapi.UserLicense, error) {
	resp, err := c.httpClient.Get(ctx, customerUsersPath(customerID)+"/"+userID+"/licenses", nil)
	if err != nil {
		return nil, fmt.Errorf("listing customer user licenses: %w", err)
	}

	return decodeItems[msapi.UserLicense](resp, "user licenses list")
}
