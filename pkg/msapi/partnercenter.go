package msapi

import "context"

// PartnerCenter is the Microsoft Partner Center API client.
type PartnerCenter interface {
	Customers() CustomersClient
	Subscriptions() SubscriptionsClient
	Invoices() InvoicesClient
	Users() CustomerUsersClient
	Orders() OrdersClient
	Catalog() CatalogClient
	ApplicationConsents() ApplicationConsentsClient
	Licenses() LicenseUsageClient

	// RefreshToken returns the current refresh token, authenticating first if
	// needed. It is empty when the client was not configured with one.
	RefreshToken(ctx context.Context) (string, error)
}

// CustomersClient manages customer tenants.
type CustomersClient interface {
	List(ctx context.Context) ([]Customer, error)
	Get(ctx context.Context, customerID string) (*Customer, error)
	Create(ctx context.Context, request *CustomerCreateRequest) (*Customer, error)
}

// SubscriptionsClient manages customer subscriptions.
type SubscriptionsClient interface {
	List(ctx context.Context, customerID string) ([]Subscription, error)
	Get(ctx context.Context, customerID, subscriptionID string) (*Subscription, error)
	// GetByOfferID returns nil without error when no subscription matches.
	GetByOfferID(ctx context.Context, customerID, offerID string) (*Subscription, error)
	Update(ctx context.Context, customerID, subscriptionID string, update *SubscriptionUpdate) (*Subscription, error)
	UpdateQuantity(ctx context.Context, customerID, subscriptionID string, quantity int) (*Subscription, error)
}

// InvoicesClient reads partner invoices.
type InvoicesClient interface {
	List(ctx context.Context) ([]Invoice, error)
	StatementPDF(ctx context.Context, invoiceID string) ([]byte, error)
}

// CustomerUsersClient manages users inside customer tenants.
type CustomerUsersClient interface {
	Create(ctx context.Context, customerID string, request *CustomerUserCreateRequest) (*CustomerUser, error)
	List(ctx context.Context, customerID string) ([]CustomerUser, error)
	Get(ctx context.Context, customerID, userID string) (*CustomerUser, error)
	// GetByPrincipalName returns nil without error when no user matches.
	GetByPrincipalName(ctx context.Context, customerID, userPrincipalName string) (*CustomerUser, error)
	Roles(ctx context.Context, customerID, userID string) ([]DirectoryRole, error)
	ResetPassword(ctx context.Context, customerID, userID string, profile PasswordProfile) (*CustomerUser, error)
	AddToRole(ctx context.Context, customerID, roleID string, member *UserRoleMemberRequest) (*UserRoleMember, error)
	AssignLicenses(ctx context.Context, customerID, userID string, request *LicenseUpdateRequest) (*LicenseUpdateResponse, error)
	LicenseAssignments(ctx context.Context, customerID, userID string) ([]UserLicense, error)
}

// OrdersClient places orders for customers.
type OrdersClient interface {
	Create(ctx context.Context, customerID string, billingCycle BillingCycle, lineItems []OrderLineItem) (*Order, error)
	// CreateByProductID orders the first SKU and availability of a product.
	CreateByProductID(
		ctx context.Context,
		customerID, productID string,
		quantity int,
		billingCycle BillingCycle,
		options *OrderLineItemOptions,
	) (*Order, error)
}

// CatalogClient reads the product catalog for a customer.
type CatalogClient interface {
	Skus(ctx context.Context, customerID, productID string) ([]Sku, error)
	Sku(ctx context.Context, customerID, productID, skuID string) (*Sku, error)
	Availabilities(ctx context.Context, customerID, productID, skuID string) ([]Availability, error)
}

// ApplicationConsentsClient manages application consents in customer tenants.
type ApplicationConsentsClient interface {
	Create(ctx context.Context, customerID string, consent *ApplicationConsent) (*ApplicationConsent, error)
	Remove(ctx context.Context, customerID, applicationID string) error
}

// LicenseUsageClient reports license consumption.
type LicenseUsageClient interface {
	Usage(ctx context.Context, customerID string) ([]LicenseUsage, error)
}
