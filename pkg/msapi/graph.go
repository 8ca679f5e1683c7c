package msapi

import "context"

// Graph is the Microsoft Graph API client.
type Graph interface {
	GDAP() GDAPClient
	Domains() DomainsClient
	Users() GraphUsersClient
	Licenses() GraphLicensesClient
	Applications() ApplicationsClient
	EnterpriseApplications() EnterpriseApplicationsClient

	// RefreshToken returns the current refresh token, authenticating first if
	// needed. It is empty when the client was not configured with one.
	RefreshToken(ctx context.Context) (string, error)
}

// GDAPClient manages granular delegated admin privileges. Update and delete
// calls accept an optional etag that is sent as If-Match.
type GDAPClient interface {
	CreateRelationship(ctx context.Context, relationship *GDAPRelationshipCreate) (*GDAPRelationship, error)
	ListRelationships(ctx context.Context) ([]GDAPRelationship, error)
	GetRelationship(ctx context.Context, relationshipID string) (*GDAPRelationship, error)
	ListRelationshipsByCustomer(ctx context.Context, customerTenantID string) ([]GDAPRelationship, error)
	UpdateRelationship(ctx context.Context, relationshipID string, update *GDAPRelationshipUpdate, etag string) (*GDAPRelationship, error)
	DeleteRelationship(ctx context.Context, relationshipID, etag string) error

	CreateRelationshipRequest(ctx context.Context, relationshipID, action string) (*GDAPRelationshipRequest, error)
	ListRelationshipRequests(ctx context.Context, relationshipID string) ([]GDAPRelationshipRequest, error)
	GetRelationshipRequest(ctx context.Context, relationshipID, requestID string) (*GDAPRelationshipRequest, error)

	CreateAccessAssignment(ctx context.Context, relationshipID string, assignment *GDAPAccessAssignmentCreate) (*GDAPAccessAssignment, error)
	ListAccessAssignments(ctx context.Context, relationshipID string) ([]GDAPAccessAssignment, error)
	GetAccessAssignment(ctx context.Context, relationshipID, assignmentID string) (*GDAPAccessAssignment, error)
	UpdateAccessAssignment(
		ctx context.Context,
		relationshipID, assignmentID string,
		update *GDAPAccessAssignmentUpdate,
		etag string,
	) (*GDAPAccessAssignment, error)
	DeleteAccessAssignment(ctx context.Context, relationshipID, assignmentID, etag string) error
}

// DomainsClient manages tenant domains.
type DomainsClient interface {
	Create(ctx context.Context, domainName string) (*Domain, error)
	List(ctx context.Context) ([]Domain, error)
	Get(ctx context.Context, domainName string) (*Domain, error)
	Update(ctx context.Context, domainName string, update *DomainUpdate) (*Domain, error)
	Delete(ctx context.Context, domainName string) error
	Verify(ctx context.Context, domainName string) (*Domain, error)
	VerificationDNSRecords(ctx context.Context, domainName string) ([]DomainDNSRecord, error)
}

// GraphUsersClient manages tenant users and their managers.
type GraphUsersClient interface {
	Get(ctx context.Context, userID string) (*GraphUser, error)
	Create(ctx context.Context, input *GraphUserInput) (*GraphUser, error)
	Update(ctx context.Context, userID string, input *GraphUserInput) (*GraphUser, error)
	// Manager returns nil without error when the user has no manager.
	Manager(ctx context.Context, userID string) (*GraphUser, error)
	// AssignManager resolves both users by ID or userPrincipalName before
	// linking them.
	AssignManager(ctx context.Context, userID, managerID string) error
	RemoveManager(ctx context.Context, userID string) error
}

// GraphLicensesClient reads license state.
type GraphLicensesClient interface {
	UserLicenses(ctx context.Context) ([]UserAssignedLicenses, error)
	SubscribedSkus(ctx context.Context) ([]SubscribedSku, error)
}

// ApplicationsClient reads application registrations.
type ApplicationsClient interface {
	GetByAppID(ctx context.Context, appID string) (*Application, error)
	Permissions(ctx context.Context, appID string) ([]AppPermissionGroup, error)
}

// EnterpriseApplicationsClient manages service principals.
type EnterpriseApplicationsClient interface {
	// GetByAppID returns nil without error when no service principal exists.
	GetByAppID(ctx context.Context, appID string) (*ServicePrincipal, error)
	AppRoleAssignments(ctx context.Context, principalID string) ([]AppRoleAssignment, error)
	// GrantAppRoleAssignment grants appRoleID of resourceID to principalID.
	GrantAppRoleAssignment(ctx context.Context, principalID, resourceID, appRoleID string) (*AppRoleAssignment, error)
}
