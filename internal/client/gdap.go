package client

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

const relationshipsPath = "/tenantRelationships/delegatedAdminRelationships"

// GDAPClient implements msapi.GDAPClient.
type GDAPClient struct {
	httpClient *http.Client
}

// NewGDAPClient creates a new GDAP client.
func NewGDAPClient(httpClient *http.Client) *GDAPClient {
	return &GDAPClient{
		httpClient: httpClient,
	}
}

// ifMatch returns the If-Match header for an optional etag.
func ifMatch(etag string) map[string]string {
	if etag == "" {
		return nil
	}

	return map[string]string{"If-Match": etag}
}

// CreateRelationship implements msapi.GDAPClient.CreateRelationship.
func (c *GDAPClient) CreateRelationship(
	ctx context.Context,
	relationship *msapi.GDAPRelationshipCreate,
) (*msapi.GDAPRelationship, error) {
	resp, err := c.httpClient.Post(ctx, relationshipsPath, relationship)
	if err != nil {
		return nil, fmt.Errorf("creating GDAP relationship: %w", err)
	}

	return decodeResponse[msapi.GDAPRelationship](resp, "GDAP relationship")
}

// ListRelationships implements msapi.GDAPClient.ListRelationships.
func (c *GDAPClient) ListRelationships(ctx context.Context) ([]msapi.GDAPRelationship, error) {
	resp, err := c.httpClient.Get(ctx, relationshipsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing GDAP relationships: %w", err)
	}

	return decodeValue[msapi.GDAPRelationship](resp, "GDAP relationships list")
}

// GetRelationship implements msapi.GDAPClient.GetRelationship.
func (c *GDAPClient) GetRelationship(ctx context.Context, relationshipID string) (*msapi.GDAPRelationship, error) {
	resp, err := c.httpClient.Get(ctx, relationshipsPath+"/"+relationshipID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting GDAP relationship: %w", err)
	}

	return decodeResponse[msapi.GDAPRelationship](resp, "GDAP relationship")
}

// ListRelationshipsByCustomer implements msapi.GDAPClient.ListRelationshipsByCustomer.
func (c *GDAPClient) ListRelationshipsByCustomer(ctx context.Context, customerTenantID string) ([]msapi.GDAPRelationship, error) {
	query := url.Values{}
	query.Set("$filter", "customer/tenantId eq '"+customerTenantID+"'")

	resp, err := c.httpClient.Get(ctx, relationshipsPath, query)
	if err != nil {
		return nil, fmt.Errorf("listing GDAP relationships for customer: %w", err)
	}

	return decodeValue[msapi.GDAPRelationship](resp, "GDAP relationships list")
}

// UpdateRelationship implements msapi.GDAPClient.UpdateRelationship.
func (c *GDAPClient) UpdateRelationship(
	ctx context.Context,
	relationshipID string,
	update *msapi.GDAPRelationshipUpdate,
	etag string,
) (*msapi.GDAPRelationship, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPatch,
		Path:    relationshipsPath + "/" + relationshipID,
		Body:    update,
		Headers: ifMatch(etag),
	})
	if err != nil {
		return nil, fmt.Errorf("updating GDAP relationship: %w", err)
	}

	// Graph may answer 204 with no body.
	if len(resp.Body) == 0 {
		return c.GetRelationship(ctx, relationshipID)
	}

	return decodeResponse[msapi.GDAPRelationship](resp, "GDAP relationship")
}

// DeleteRelationship implements msapi.GDAPClient.DeleteRelationship.
func (c *GDAPClient) DeleteRelationship(ctx context.Context, relationshipID, etag string) error {
	_, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodDelete,
		Path:    relationshipsPath + "/" + relationshipID,
		Headers: ifMatch(etag),
	})
	if err != nil {
		return fmt.Errorf("deleting GDAP relationship: %w", err)
	}

	return nil
}

// CreateRelationshipRequest implements msapi.GDAPClient.CreateRelationshipRequest.
func (c *GDAPClient) CreateRelationshipRequest(
	ctx context.Context,
	relationshipID, action string,
) (*msapi.GDAPRelationshipRequest, error) {
	body := map[string]string{"action": action}

	resp, err := c.httpClient.Post(ctx, relationshipsPath+"/"+relationshipID+"/requests", body)
	if err != nil {
		return nil, fmt.Errorf("creating GDAP relationship request: %w", err)
	}

	return decodeResponse[msapi.GDAPRelationshipRequest](resp, "GDAP relationship request")
}

// ListRelationshipRequests implements msapi.GDAPClient.ListRelationshipRequests.
func (c *GDAPClient) ListRelationshipRequests(ctx context.Context, relationshipID string) ([]msapi.GDAPRelationshipRequest, error) {
	resp, err := c.httpClient.Get(ctx, relationshipsPath+"/"+relationshipID+"/requests", nil)
	if err != nil {
		return nil, fmt.Errorf("listing GDAP relationship requests: %w", err)
	}

	return decodeValue[msapi.GDAPRelationshipRequest](resp, "GDAP relationship requests list")
}

// GetRelationshipRequest implements msapi.GDAPClient.GetRelationshipRequest.
func (c *GDAPClient) GetRelationshipRequest(
	ctx context.Context,
	relationshipID, requestID string,
) (*msapi.GDAPRelationshipRequest, error) {
	resp, err := c.httpClient.Get(ctx, relationshipsPath+"/"+relationshipID+"/requests/"+requestID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting GDAP relationship request: %w", err)
	}

	return decodeResponse[msapi.GDAPRelationshipRequest](resp, "GDAP relationship request")
}

func accessAssignmentsPath(relationshipID string) string {
	return relationshipsPath + "/" + relationshipID + "/accessAssignments"
}

// CreateAccessAssignment implements msapi.GDAPClient.CreateAccessAssignment.
func (c *GDAPClient) CreateAccessAssignment(
	ctx context.Context,
	relationshipID string,
	assignment *msapi.GDAPAccessAssignmentCreate,
) (*msapi.GDAPAccessAssignment, error) {
	resp, err := c.httpClient.Post(ctx, accessAssignmentsPath(relationshipID), assignment)
	if err != nil {
		return nil, fmt.Errorf("creating GDAP access assignment: %w", err)
	}

	return decodeResponse[msapi.GDAPAccessAssignment](resp, "GDAP access assignment")
}

// ListAccessAssignments implements msapi.GDAPClient.ListAccessAssignments.
func (c *GDAPClient) ListAccessAssignments(ctx context.Context, relationshipID string) ([]msapi.GDAPAccessAssignment, error) {
	resp, err := c.httpClient.Get(ctx, accessAssignmentsPath(relationshipID), nil)
	if err != nil {
		return nil, fmt.Errorf("listing GDAP access assignments: %w", err)
	}

	return decodeValue[msapi.GDAPAccessAssignment](resp, "GDAP access assignments list")
}

// GetAccessAssignment implements msapi.GDAPClient.GetAccessAssignment.
func (c *GDAPClient) GetAccessAssignment(
	ctx context.Context,
	relationshipID, assignmentID string,
) (*msapi.GDAPAccessAssignment, error) {
	resp, err := c.httpClient.Get(ctx, accessAssignmentsPath(relationshipID)+"/"+assignmentID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting GDAP access assignment: %w", err)
	}

	return decodeResponse[msapi.GDAPAccessAssignment](resp, "GDAP access assignment")
}

// UpdateAccessAssignment implements msapi.GDAPClient.UpdateAccessAssignment.
func (c *GDAPClient) UpdateAccessAssignment(
	ctx context.Context,
	relationshipID, assignmentID string,
	update *msapi.GDAPAccessAssignmentUpdate,
	etag string,
) (*msapi.GDAPAccessAssignment, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodPatch,
		Path:    accessAssignmentsPath(relationshipID) + "/" + assignmentID,
		Body:    update,
		Headers: ifMatch(etag),
	})
	if err != nil {
		return nil, fmt.Errorf("updating GDAP access assignment: %w", err)
	}

	if len(resp.Body) == 0 {
		return c.GetAccessAssignment(ctx, relationshipID, assignmentID)
	}

	return decodeResponse[msapi.GDAPAccessAssignment](resp, "GDAP access assignment")
}

// DeleteAccessAssignment implements msapi.GDAPClient.DeleteAccessAssignment.
func (c *GDAPClient) DeleteAccessAssignment(ctx context.Context, relationshipID, assignmentID, etag string) error {
	_, err := c.httpClient.Do(ctx, &http.Request{
		Method:  nethttp.MethodDelete,
		Path:    accessAssignmentsPath(relationshipID) + "/" + assignmentID,
		Headers: ifMatch(etag),
	})
	if err != nil {
		return fmt.Errorf("deleting GDAP access assignment: %w", err)
	}

	return nil
}
