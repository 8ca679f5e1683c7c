package msapi

import "time"

// GDAP relationship request actions.
const (
	GDAPActionLockForApproval = "lockForApproval"
	GDAPActionApprove         = "approve"
	GDAPActionTerminate       = "terminate"
)

// GDAPCustomer identifies the customer side of a relationship.
type GDAPCustomer struct {
	TenantID    string `json:"tenantId"              yaml:"tenantId"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
}

// UnifiedRole references a directory role definition.
type UnifiedRole struct {
	RoleDefinitionID string `json:"roleDefinitionId" yaml:"roleDefinitionId"`
}

// GDAPAccessDetails lists the roles granted by a relationship or assignment.
type GDAPAccessDetails struct {
	UnifiedRoles []UnifiedRole `json:"unifiedRoles" yaml:"unifiedRoles"`
}

// GDAPRelationship is a granular delegated admin relationship.
type GDAPRelationship struct {
	ETag                 string             `json:"@odata.etag,omitempty"          yaml:"etag,omitempty"`
	ID                   string             `json:"id"                             yaml:"id"`
	DisplayName          string             `json:"displayName"                    yaml:"displayName"`
	Duration             string             `json:"duration"                       yaml:"duration"`
	Customer             *GDAPCustomer      `json:"customer,omitempty"             yaml:"customer,omitempty"`
	AccessDetails        *GDAPAccessDetails `json:"accessDetails,omitempty"        yaml:"accessDetails,omitempty"`
	Status               string             `json:"status,omitempty"               yaml:"status,omitempty"`
	AutoExtendDuration   string             `json:"autoExtendDuration,omitempty"   yaml:"autoExtendDuration,omitempty"`
	CreatedDateTime      *time.Time         `json:"createdDateTime,omitempty"      yaml:"createdDateTime,omitempty"`
	LastModifiedDateTime *time.Time         `json:"lastModifiedDateTime,omitempty" yaml:"lastModifiedDateTime,omitempty"`
	ActivatedDateTime    *time.Time         `json:"activatedDateTime,omitempty"    yaml:"activatedDateTime,omitempty"`
	EndDateTime          *time.Time         `json:"endDateTime,omitempty"          yaml:"endDateTime,omitempty"`
}

// GDAPRelationshipCreate is the body of a new relationship.
type GDAPRelationshipCreate struct {
	DisplayName        string             `json:"displayName"                  yaml:"displayName"`
	Duration           string             `json:"duration"                     yaml:"duration"`
	Customer           *GDAPCustomer      `json:"customer,omitempty"           yaml:"customer,omitempty"`
	AccessDetails      *GDAPAccessDetails `json:"accessDetails"                yaml:"accessDetails"`
	AutoExtendDuration string             `json:"autoExtendDuration,omitempty" yaml:"autoExtendDuration,omitempty"`
}

// GDAPRelationshipUpdate patches a relationship that is still in created state.
type GDAPRelationshipUpdate struct {
	DisplayName        string             `json:"displayName,omitempty"        yaml:"displayName,omitempty"`
	Duration           string             `json:"duration,omitempty"           yaml:"duration,omitempty"`
	Customer           *GDAPCustomer      `json:"customer,omitempty"           yaml:"customer,omitempty"`
	AccessDetails      *GDAPAccessDetails `json:"accessDetails,omitempty"      yaml:"accessDetails,omitempty"`
	AutoExtendDuration string             `json:"autoExtendDuration,omitempty" yaml:"autoExtendDuration,omitempty"`
}

// GDAPRelationshipRequest is an action applied to a relationship.
type GDAPRelationshipRequest struct {
	ID                   string     `json:"id"                             yaml:"id"`
	Action               string     `json:"action"                         yaml:"action"`
	Status               string     `json:"status,omitempty"               yaml:"status,omitempty"`
	CreatedDateTime      *time.Time `json:"createdDateTime,omitempty"      yaml:"createdDateTime,omitempty"`
	LastModifiedDateTime *time.Time `json:"lastModifiedDateTime,omitempty" yaml:"lastModifiedDateTime,omitempty"`
}

// GDAPAccessContainer is the security group receiving access.
type GDAPAccessContainer struct {
	AccessContainerID   string `json:"accessContainerId"   yaml:"accessContainerId"`
	AccessContainerType string `json:"accessContainerType" yaml:"accessContainerType"`
}

// GDAPAccessAssignment grants roles of a relationship to a security group.
type GDAPAccessAssignment struct {
	ETag                 string               `json:"@odata.etag,omitempty"          yaml:"etag,omitempty"`
	ID                   string               `json:"id"                             yaml:"id"`
	Status               string               `json:"status,omitempty"               yaml:"status,omitempty"`
	AccessContainer      *GDAPAccessContainer `json:"accessContainer,omitempty"      yaml:"accessContainer,omitempty"`
	AccessDetails        *GDAPAccessDetails   `json:"accessDetails,omitempty"        yaml:"accessDetails,omitempty"`
	CreatedDateTime      *time.Time           `json:"createdDateTime,omitempty"      yaml:"createdDateTime,omitempty"`
	LastModifiedDateTime *time.Time           `json:"lastModifiedDateTime,omitempty" yaml:"lastModifiedDateTime,omitempty"`
}

// GDAPAccessAssignmentCreate is the body of a new access assignment.
type GDAPAccessAssignmentCreate struct {
	AccessContainer *GDAPAccessContainer `json:"accessContainer" yaml:"accessContainer"`
	AccessDetails   *GDAPAccessDetails   `json:"accessDetails"   yaml:"accessDetails"`
}

// GDAPAccessAssignmentUpdate replaces the roles of an access assignment.
type GDAPAccessAssignmentUpdate struct {
	AccessDetails *GDAPAccessDetails `json:"accessDetails" yaml:"accessDetails"`
}

// Domain is a domain registered in a tenant.
type Domain struct {
	ID                               string                 `json:"id"                                         yaml:"id"`
	AuthenticationType               string                 `json:"authenticationType,omitempty"               yaml:"authenticationType,omitempty"`
	AvailabilityStatus               string                 `json:"availabilityStatus,omitempty"               yaml:"availabilityStatus,omitempty"`
	IsAdminManaged                   bool                   `json:"isAdminManaged"                             yaml:"isAdminManaged"`
	IsDefault                        bool                   `json:"isDefault"                                  yaml:"isDefault"`
	IsInitial                        bool                   `json:"isInitial"                                  yaml:"isInitial"`
	IsRoot                           bool                   `json:"isRoot"                                     yaml:"isRoot"`
	IsVerified                       bool                   `json:"isVerified"                                 yaml:"isVerified"`
	PasswordNotificationWindowInDays *int                   `json:"passwordNotificationWindowInDays,omitempty" yaml:"passwordNotificationWindowInDays,omitempty"`
	PasswordValidityPeriodInDays     *int                   `json:"passwordValidityPeriodInDays,omitempty"     yaml:"passwordValidityPeriodInDays,omitempty"`
	SupportedServices                []string               `json:"supportedServices,omitempty"                yaml:"supportedServices,omitempty"`
	State                            map[string]interface{} `json:"state,omitempty"                            yaml:"state,omitempty"`
}

// DomainCreate registers a new domain.
type DomainCreate struct {
	ID string `json:"id" yaml:"id"`
}

// DomainUpdate patches a domain. Nil fields are left unchanged.
type DomainUpdate struct {
	AuthenticationType               string   `json:"authenticationType,omitempty"               yaml:"authenticationType,omitempty"`
	IsDefault                        *bool    `json:"isDefault,omitempty"                        yaml:"isDefault,omitempty"`
	PasswordNotificationWindowInDays *int     `json:"passwordNotificationWindowInDays,omitempty" yaml:"passwordNotificationWindowInDays,omitempty"`
	PasswordValidityPeriodInDays     *int     `json:"passwordValidityPeriodInDays,omitempty"     yaml:"passwordValidityPeriodInDays,omitempty"`
	SupportedServices                []string `json:"supportedServices,omitempty"                yaml:"supportedServices,omitempty"`
}

// DomainDNSRecord is a DNS record needed to verify a domain.
type DomainDNSRecord struct {
	ID               string `json:"id"                         yaml:"id"`
	IsOptional       bool   `json:"isOptional"                 yaml:"isOptional"`
	Label            string `json:"label"                      yaml:"label"`
	RecordType       string `json:"recordType"                 yaml:"recordType"`
	SupportedService string `json:"supportedService,omitempty" yaml:"supportedService,omitempty"`
	TTL              int    `json:"ttl"                        yaml:"ttl"`
	Text             string `json:"text,omitempty"             yaml:"text,omitempty"`
	MailExchange     string `json:"mailExchange,omitempty"     yaml:"mailExchange,omitempty"`
	Preference       *int   `json:"preference,omitempty"       yaml:"preference,omitempty"`
}

// AssignedLicense is a license held by a Graph user.
type AssignedLicense struct {
	SkuID         string   `json:"skuId"         yaml:"skuId"`
	DisabledPlans []string `json:"disabledPlans" yaml:"disabledPlans"`
}

// GraphUser is a Microsoft Graph user.
type GraphUser struct {
	ID                string            `json:"id"                          yaml:"id"`
	DisplayName       string            `json:"displayName,omitempty"       yaml:"displayName,omitempty"`
	GivenName         string            `json:"givenName,omitempty"         yaml:"givenName,omitempty"`
	Surname           string            `json:"surname,omitempty"           yaml:"surname,omitempty"`
	UserPrincipalName string            `json:"userPrincipalName,omitempty" yaml:"userPrincipalName,omitempty"`
	Mail              string            `json:"mail,omitempty"              yaml:"mail,omitempty"`
	JobTitle          string            `json:"jobTitle,omitempty"          yaml:"jobTitle,omitempty"`
	Department        string            `json:"department,omitempty"        yaml:"department,omitempty"`
	OfficeLocation    string            `json:"officeLocation,omitempty"    yaml:"officeLocation,omitempty"`
	MobilePhone       string            `json:"mobilePhone,omitempty"       yaml:"mobilePhone,omitempty"`
	BusinessPhones    []string          `json:"businessPhones,omitempty"    yaml:"businessPhones,omitempty"`
	AccountEnabled    *bool             `json:"accountEnabled,omitempty"    yaml:"accountEnabled,omitempty"`
	UsageLocation     string            `json:"usageLocation,omitempty"     yaml:"usageLocation,omitempty"`
	CompanyName       string            `json:"companyName,omitempty"       yaml:"companyName,omitempty"`
	EmployeeID        string            `json:"employeeId,omitempty"        yaml:"employeeId,omitempty"`
	CreatedDateTime   *time.Time        `json:"createdDateTime,omitempty"   yaml:"createdDateTime,omitempty"`
	AssignedLicenses  []AssignedLicense `json:"assignedLicenses,omitempty"  yaml:"assignedLicenses,omitempty"`
}

// GraphPasswordProfile sets a Graph user's password.
type GraphPasswordProfile struct {
	ForceChangePasswordNextSignIn bool   `json:"forceChangePasswordNextSignIn" yaml:"forceChangePasswordNextSignIn"`
	Password                      string `json:"password,omitempty"            yaml:"-"`
}

// GraphUserInput creates or updates a Graph user. Manager is the ID of the
// user's manager and is applied through the manager reference after the user
// itself is written.
type GraphUserInput struct {
	AccountEnabled    *bool                 `json:"accountEnabled,omitempty"    yaml:"accountEnabled,omitempty"`
	DisplayName       string                `json:"displayName,omitempty"       yaml:"displayName,omitempty"`
	MailNickname      string                `json:"mailNickname,omitempty"      yaml:"mailNickname,omitempty"`
	UserPrincipalName string                `json:"userPrincipalName,omitempty" yaml:"userPrincipalName,omitempty"`
	GivenName         string                `json:"givenName,omitempty"         yaml:"givenName,omitempty"`
	Surname           string                `json:"surname,omitempty"           yaml:"surname,omitempty"`
	JobTitle          string                `json:"jobTitle,omitempty"          yaml:"jobTitle,omitempty"`
	Department        string                `json:"department,omitempty"        yaml:"department,omitempty"`
	OfficeLocation    string                `json:"officeLocation,omitempty"    yaml:"officeLocation,omitempty"`
	MobilePhone       string                `json:"mobilePhone,omitempty"       yaml:"mobilePhone,omitempty"`
	UsageLocation     string                `json:"usageLocation,omitempty"     yaml:"usageLocation,omitempty"`
	PasswordProfile   *GraphPasswordProfile `json:"passwordProfile,omitempty"   yaml:"passwordProfile,omitempty"`

	Manager       string `json:"-" yaml:"manager,omitempty"`
	RemoveManager bool   `json:"-" yaml:"removeManager,omitempty"`
}

// UserAssignedLicenses is a user with the licenses assigned to them.
type UserAssignedLicenses struct {
	ID                string            `json:"id"                yaml:"id"`
	UserPrincipalName string            `json:"userPrincipalName" yaml:"userPrincipalName"`
	AssignedLicenses  []AssignedLicense `json:"assignedLicenses"  yaml:"assignedLicenses"`
}

// PrepaidUnits counts licenses by state.
type PrepaidUnits struct {
	Enabled   int `json:"enabled"   yaml:"enabled"`
	Suspended int `json:"suspended" yaml:"suspended"`
	Warning   int `json:"warning"   yaml:"warning"`
	LockedOut int `json:"lockedOut" yaml:"lockedOut"`
}

// SkuServicePlan is a service plan of a subscribed SKU.
type SkuServicePlan struct {
	ServicePlanID      string `json:"servicePlanId"      yaml:"servicePlanId"`
	ServicePlanName    string `json:"servicePlanName"    yaml:"servicePlanName"`
	ProvisioningStatus string `json:"provisioningStatus" yaml:"provisioningStatus"`
	AppliesTo          string `json:"appliesTo"          yaml:"appliesTo"`
}

// SubscribedSku is a commercial subscription the tenant has acquired.
type SubscribedSku struct {
	ID               string           `json:"id"                        yaml:"id"`
	AccountID        string           `json:"accountId,omitempty"       yaml:"accountId,omitempty"`
	AccountName      string           `json:"accountName,omitempty"     yaml:"accountName,omitempty"`
	AppliesTo        string           `json:"appliesTo"                 yaml:"appliesTo"`
	CapabilityStatus string           `json:"capabilityStatus"          yaml:"capabilityStatus"`
	ConsumedUnits    int              `json:"consumedUnits"             yaml:"consumedUnits"`
	SkuID            string           `json:"skuId"                     yaml:"skuId"`
	SkuPartNumber    string           `json:"skuPartNumber"             yaml:"skuPartNumber"`
	SubscriptionIDs  []string         `json:"subscriptionIds,omitempty" yaml:"subscriptionIds,omitempty"`
	PrepaidUnits     PrepaidUnits     `json:"prepaidUnits"              yaml:"prepaidUnits"`
	ServicePlans     []SkuServicePlan `json:"servicePlans"              yaml:"servicePlans"`
}

// ResourceAccess is one permission requested from a resource application.
type ResourceAccess struct {
	ID   string `json:"id"   yaml:"id"`
	Type string `json:"type" yaml:"type"`
}

// RequiredResourceAccess groups the permissions requested from one resource.
type RequiredResourceAccess struct {
	ResourceAppID  string           `json:"resourceAppId"  yaml:"resourceAppId"`
	ResourceAccess []ResourceAccess `json:"resourceAccess" yaml:"resourceAccess"`
}

// Application is an application registration.
type Application struct {
	ID                     string                   `json:"id"                               yaml:"id"`
	AppID                  string                   `json:"appId"                            yaml:"appId"`
	DisplayName            string                   `json:"displayName"                      yaml:"displayName"`
	Description            string                   `json:"description,omitempty"            yaml:"description,omitempty"`
	PublisherDomain        string                   `json:"publisherDomain,omitempty"        yaml:"publisherDomain,omitempty"`
	SignInAudience         string                   `json:"signInAudience,omitempty"         yaml:"signInAudience,omitempty"`
	CreatedDateTime        *time.Time               `json:"createdDateTime,omitempty"        yaml:"createdDateTime,omitempty"`
	IdentifierURIs         []string                 `json:"identifierUris,omitempty"         yaml:"identifierUris,omitempty"`
	Tags                   []string                 `json:"tags,omitempty"                   yaml:"tags,omitempty"`
	RequiredResourceAccess []RequiredResourceAccess `json:"requiredResourceAccess,omitempty" yaml:"requiredResourceAccess,omitempty"`
}

// Permission types reported by Applications.Permissions.
const (
	PermissionTypeApplication = "Application"
	PermissionTypeDelegated   = "Delegated"
)

// AppPermission is a named permission resolved from a service principal.
type AppPermission struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// AppPermissionGroup is the set of permissions an application requests from
// one resource, named after the resource's service principal.
type AppPermissionGroup struct {
	Role        string          `json:"role"        yaml:"role"`
	Permissions []AppPermission `json:"permissions" yaml:"permissions"`
}

// AppRole is an application role published by a service principal.
type AppRole struct {
	ID                 string   `json:"id"                    yaml:"id"`
	AllowedMemberTypes []string `json:"allowedMemberTypes"    yaml:"allowedMemberTypes"`
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`
	DisplayName        string   `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	IsEnabled          bool     `json:"isEnabled"             yaml:"isEnabled"`
	Value              string   `json:"value"                 yaml:"value"`
}

// PermissionScope is a delegated permission published by a service principal.
type PermissionScope struct {
	ID                      string `json:"id"                                yaml:"id"`
	AdminConsentDisplayName string `json:"adminConsentDisplayName,omitempty" yaml:"adminConsentDisplayName,omitempty"`
	AdminConsentDescription string `json:"adminConsentDescription,omitempty" yaml:"adminConsentDescription,omitempty"`
	IsEnabled               bool   `json:"isEnabled"                         yaml:"isEnabled"`
	Type                    string `json:"type"                              yaml:"type"`
	Value                   string `json:"value"                             yaml:"value"`
}

// ServicePrincipal is the tenant-local instance of an application.
type ServicePrincipal struct {
	ID                     string            `json:"id"                               yaml:"id"`
	AppID                  string            `json:"appId"                            yaml:"appId"`
	AppDisplayName         string            `json:"appDisplayName,omitempty"         yaml:"appDisplayName,omitempty"`
	DisplayName            string            `json:"displayName"                      yaml:"displayName"`
	AccountEnabled         bool              `json:"accountEnabled"                   yaml:"accountEnabled"`
	AppOwnerOrganizationID string            `json:"appOwnerOrganizationId,omitempty" yaml:"appOwnerOrganizationId,omitempty"`
	ServicePrincipalType   string            `json:"servicePrincipalType,omitempty"   yaml:"servicePrincipalType,omitempty"`
	SignInAudience         string            `json:"signInAudience,omitempty"         yaml:"signInAudience,omitempty"`
	ServicePrincipalNames  []string          `json:"servicePrincipalNames,omitempty"  yaml:"servicePrincipalNames,omitempty"`
	ReplyURLs              []string          `json:"replyUrls,omitempty"              yaml:"replyUrls,omitempty"`
	Tags                   []string          `json:"tags,omitempty"                   yaml:"tags,omitempty"`
	AppRoles               []AppRole         `json:"appRoles,omitempty"               yaml:"appRoles,omitempty"`
	OAuth2PermissionScopes []PermissionScope `json:"oauth2PermissionScopes,omitempty" yaml:"oauth2PermissionScopes,omitempty"`
}

// AppRoleAssignment grants an app role to a principal.
type AppRoleAssignment struct {
	ID                   string     `json:"id,omitempty"                   yaml:"id,omitempty"`
	AppRoleID            string     `json:"appRoleId"                      yaml:"appRoleId"`
	PrincipalID          string     `json:"principalId"                    yaml:"principalId"`
	ResourceID           string     `json:"resourceId"                     yaml:"resourceId"`
	PrincipalDisplayName string     `json:"principalDisplayName,omitempty" yaml:"principalDisplayName,omitempty"`
	PrincipalType        string     `json:"principalType,omitempty"        yaml:"principalType,omitempty"`
	ResourceDisplayName  string     `json:"resourceDisplayName,omitempty"  yaml:"resourceDisplayName,omitempty"`
	CreatedDateTime      *time.Time `json:"createdDateTime,omitempty"      yaml:"createdDateTime,omitempty"`
}
