package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

const graphUsersURL = "https://graph.microsoft.com/v1.0/users/"

// GraphUsersClient implements msapi.GraphUsersClient.
type GraphUsersClient struct {
	httpClient *http.Client
}

// NewGraphUsersClient creates a new Graph users client.
func NewGraphUsersClient(httpClient *http.Client) *GraphUsersClient {
	return &GraphUsersClient{
		httpClient: httpClient,
	}
}

// Get implements msapi.GraphUsersClient.Get. userID may be an object ID or a
// userPrincipalName.
func (c *GraphUsersClient) Get(ctx context.Context, userID string) (*msapi.GraphUser, error) {
	resp, err := c.httpClient.Get(ctx, "/users/"+userID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return decodeResponse[msapi.GraphUser](resp, "user")
}

// Create implements msapi.GraphUsersClient.Create. A manager, when given, is
// assigned after the user exists.
func (c *GraphUsersClient) Create(ctx context.Context, input *msapi.GraphUserInput) (*msapi.GraphUser, error) {
	resp, err := c.httpClient.Post(ctx, "/users", input)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	user, err := decodeResponse[msapi.GraphUser](resp, "user")
	if err != nil {
		return nil, err
	}

	if input.Manager != "" {
		err = c.AssignManager(ctx, user.ID, input.Manager)
		if err != nil {
			return user, err
		}
	}

	return user, nil
}

// Update implements msapi.GraphUsersClient.Update. The manager is changed
// only when it differs from the current one.
func (c *GraphUsersClient) Update(ctx context.Context, userID string, input *msapi.GraphUserInput) (*msapi.GraphUser, error) {
	if input.RemoveManager || input.Manager != "" {
		err := c.reconcileManager(ctx, userID, input)
		if err != nil {
			return nil, err
		}
	}

	resp, err := c.httpClient.Patch(ctx, "/users/"+userID, input)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	if len(resp.Body) == 0 {
		return c.Get(ctx, userID)
	}

	return decodeResponse[msapi.GraphUser](resp, "user")
}

func (c *GraphUsersClient) reconcileManager(ctx context.Context, userID string, input *msapi.GraphUserInput) error {
	current, err := c.Manager(ctx, userID)
	if err != nil {
		return err
	}

	if input.RemoveManager {
		if current == nil {
			return nil
		}

		return c.RemoveManager(ctx, userID)
	}

	if current != nil && (current.UserPrincipalName == input.Manager || current.ID == input.Manager) {
		return nil
	}

	return c.AssignManager(ctx, userID, input.Manager)
}

// Manager implements msapi.GraphUsersClient.Manager.
func (c *GraphUsersClient) Manager(ctx context.Context, userID string) (*msapi.GraphUser, error) {
	resp, err := c.httpClient.Get(ctx, "/users/"+userID+"/manager", nil)
	if err != nil {
		if msapi.IsNotFound(err) {
			return nil, nil //nolint:nilnil // no manager assigned
		}

		return nil, fmt.Errorf("getting user manager: %w", err)
	}

	return decodeResponse[msapi.GraphUser](resp, "manager")
}

// AssignManager implements msapi.GraphUsersClient.AssignManager.
func (c *GraphUsersClient) AssignManager(ctx context.Context, userID, managerID string) error {
	user, err := c.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", constants.ErrUserNotFound, userID, err)
	}

	manager, err := c.Get(ctx, managerID)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", constants.ErrManagerNotFound, managerID, err)
	}

	body := map[string]string{"@odata.id": graphUsersURL + manager.ID}

	_, err = c.httpClient.Put(ctx, "/users/"+user.ID+"/manager/$ref", body)
	if err != nil {
		return fmt.Errorf("assigning user manager: %w", err)
	}

	return nil
}

// RemoveManager implements msapi.GraphUsersClient.RemoveManager.
func (c *GraphUsersClient) RemoveManager(ctx context.Context, userID string) error {
	user, err := c.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", constants.ErrUserNotFound, userID, err)
	}

	_, err = c.httpClient.Delete(ctx, "/users/"+user.ID+"/manager/$ref")
	if err != nil {
		return fmt.Errorf("removing user manager: %w", err)
	}

	return nil
}
