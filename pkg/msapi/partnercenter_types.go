package msapi

import (
	"encoding/json"
	"time"
)

// Customer represents a Partner Center customer.
type Customer struct {
	ID                    string                  `json:"id"                              yaml:"id"`
	CompanyProfile        CompanyProfile          `json:"companyProfile"                  yaml:"companyProfile"`
	BillingProfile        *CustomerBillingProfile `json:"billingProfile,omitempty"        yaml:"billingProfile,omitempty"`
	RelationshipToPartner string                  `json:"relationshipToPartner,omitempty" yaml:"relationshipToPartner,omitempty"`
	Links                 Links                   `json:"links,omitempty"                 yaml:"links,omitempty"`
	Attributes            Attributes              `json:"attributes,omitempty"            yaml:"attributes,omitempty"`
}

// CompanyProfile is the customer's tenant identity.
type CompanyProfile struct {
	TenantID    string     `json:"tenantId,omitempty"    yaml:"tenantId,omitempty"`
	Domain      string     `json:"domain"                yaml:"domain"`
	CompanyName string     `json:"companyName,omitempty" yaml:"companyName,omitempty"`
	Links       Links      `json:"links,omitempty"       yaml:"links,omitempty"`
	Attributes  Attributes `json:"attributes,omitempty"  yaml:"attributes,omitempty"`
}

// CustomerBillingProfile is required when creating a customer.
type CustomerBillingProfile struct {
	Email          string   `json:"email"          yaml:"email"`
	Culture        string   `json:"culture"        yaml:"culture"`
	Language       string   `json:"language"       yaml:"language"`
	CompanyName    string   `json:"companyName"    yaml:"companyName"`
	DefaultAddress *Address `json:"defaultAddress" yaml:"defaultAddress"`
}

// Address is a postal address.
type Address struct {
	Country      string `json:"country"                yaml:"country"`
	City         string `json:"city"                   yaml:"city"`
	State        string `json:"state,omitempty"        yaml:"state,omitempty"`
	AddressLine1 string `json:"addressLine1"           yaml:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty" yaml:"addressLine2,omitempty"`
	PostalCode   string `json:"postalCode"             yaml:"postalCode"`
	FirstName    string `json:"firstName,omitempty"    yaml:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"     yaml:"lastName,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty"  yaml:"phoneNumber,omitempty"`
}

// CustomerCreateRequest creates a new customer tenant.
type CustomerCreateRequest struct {
	CompanyProfile CompanyProfile          `json:"companyProfile" yaml:"companyProfile"`
	BillingProfile *CustomerBillingProfile `json:"billingProfile" yaml:"billingProfile"`
}

// Subscription status values.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusDeleted   = "deleted"
	SubscriptionStatusDisabled  = "disabled"
	SubscriptionStatusSuspended = "suspended"
	SubscriptionStatusExpired   = "expired"
)

// Subscription represents a customer subscription.
type Subscription struct {
	ID                           string       `json:"id"                                     yaml:"id"`
	OfferID                      string       `json:"offerId"                                yaml:"offerId"`
	OfferName                    string       `json:"offerName,omitempty"                    yaml:"offerName,omitempty"`
	FriendlyName                 string       `json:"friendlyName,omitempty"                 yaml:"friendlyName,omitempty"`
	ProductType                  *ProductType `json:"productType,omitempty"                  yaml:"productType,omitempty"`
	Quantity                     int          `json:"quantity"                               yaml:"quantity"`
	UnitType                     string       `json:"unitType,omitempty"                     yaml:"unitType,omitempty"`
	HasPurchasableAddons         bool         `json:"hasPurchasableAddons"                   yaml:"hasPurchasableAddons"`
	CreationDate                 *time.Time   `json:"creationDate,omitempty"                 yaml:"creationDate,omitempty"`
	EffectiveStartDate           *time.Time   `json:"effectiveStartDate,omitempty"           yaml:"effectiveStartDate,omitempty"`
	CommitmentEndDate            *time.Time   `json:"commitmentEndDate,omitempty"            yaml:"commitmentEndDate,omitempty"`
	CancellationAllowedUntilDate *time.Time   `json:"cancellationAllowedUntilDate,omitempty" yaml:"cancellationAllowedUntilDate,omitempty"`
	BillingCycleEndDate          *time.Time   `json:"billingCycleEndDate,omitempty"          yaml:"billingCycleEndDate,omitempty"`
	Status                       string       `json:"status"                                 yaml:"status"`
	AutoRenewEnabled             bool         `json:"autoRenewEnabled"                       yaml:"autoRenewEnabled"`
	IsTrial                      bool         `json:"isTrial"                                yaml:"isTrial"`
	BillingType                  string       `json:"billingType,omitempty"                  yaml:"billingType,omitempty"`
	BillingCycle                 string       `json:"billingCycle,omitempty"                 yaml:"billingCycle,omitempty"`
	TermDuration                 string       `json:"termDuration,omitempty"                 yaml:"termDuration,omitempty"`
	RenewalTermDuration          string       `json:"renewalTermDuration,omitempty"          yaml:"renewalTermDuration,omitempty"`
	IsMicrosoftProduct           bool         `json:"isMicrosoftProduct"                     yaml:"isMicrosoftProduct"`
	PartnerID                    string       `json:"partnerId,omitempty"                    yaml:"partnerId,omitempty"`
	AttentionNeeded              bool         `json:"attentionNeeded"                        yaml:"attentionNeeded"`
	ActionTaken                  bool         `json:"actionTaken"                            yaml:"actionTaken"`
	ContractType                 string       `json:"contractType,omitempty"                 yaml:"contractType,omitempty"`
	PublisherName                string       `json:"publisherName,omitempty"                yaml:"publisherName,omitempty"`
	OrderID                      string       `json:"orderId,omitempty"                      yaml:"orderId,omitempty"`
	EntitlementID                string       `json:"entitlementId,omitempty"                yaml:"entitlementId,omitempty"`
	Actions                      []string     `json:"actions,omitempty"                      yaml:"actions,omitempty"`
	SuspensionReasons            []string     `json:"suspensionReasons,omitempty"            yaml:"suspensionReasons,omitempty"`
	Links                        Links        `json:"links,omitempty"                        yaml:"links,omitempty"`
	Attributes                   Attributes   `json:"attributes,omitempty"                   yaml:"attributes,omitempty"`
}

// ProductType identifies the product family of a subscription.
type ProductType struct {
	ID          string `json:"id"          yaml:"id"`
	DisplayName string `json:"displayName" yaml:"displayName"`
}

// SubscriptionUpdate lists the mutable subscription fields. Nil fields keep
// their current value.
type SubscriptionUpdate struct {
	FriendlyName     *string
	Quantity         *int
	Status           *string
	AutoRenewEnabled *bool
	BillingCycle     *string
}

// Fields returns the set fields keyed by their JSON names.
func (u *SubscriptionUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u == nil {
		return fields
	}

	if u.FriendlyName != nil {
		fields["friendlyName"] = *u.FriendlyName
	}

	if u.Quantity != nil {
		fields["quantity"] = *u.Quantity
	}

	if u.Status != nil {
		fields["status"] = *u.Status
	}

	if u.AutoRenewEnabled != nil {
		fields["autoRenewEnabled"] = *u.AutoRenewEnabled
	}

	if u.BillingCycle != nil {
		fields["billingCycle"] = *u.BillingCycle
	}

	return fields
}

// Invoice represents a partner invoice.
type Invoice struct {
	ID                     string          `json:"id"                               yaml:"id"`
	InvoiceDate            *time.Time      `json:"invoiceDate,omitempty"            yaml:"invoiceDate,omitempty"`
	BillingPeriodStartDate *time.Time      `json:"billingPeriodStartDate,omitempty" yaml:"billingPeriodStartDate,omitempty"`
	BillingPeriodEndDate   *time.Time      `json:"billingPeriodEndDate,omitempty"   yaml:"billingPeriodEndDate,omitempty"`
	TotalCharges           float64         `json:"totalCharges"                     yaml:"totalCharges"`
	PaidAmount             float64         `json:"paidAmount"                       yaml:"paidAmount"`
	CurrencyCode           string          `json:"currencyCode"                     yaml:"currencyCode"`
	CurrencySymbol         string          `json:"currencySymbol,omitempty"         yaml:"currencySymbol,omitempty"`
	PDFDownloadLink        string          `json:"pdfDownloadLink,omitempty"        yaml:"pdfDownloadLink,omitempty"`
	InvoiceDetails         []InvoiceDetail `json:"invoiceDetails,omitempty"         yaml:"invoiceDetails,omitempty"`
	DocumentType           string          `json:"documentType,omitempty"           yaml:"documentType,omitempty"`
	State                  string          `json:"state,omitempty"                  yaml:"state,omitempty"`
	InvoiceType            string          `json:"invoiceType,omitempty"            yaml:"invoiceType,omitempty"`
	Links                  Links           `json:"links,omitempty"                  yaml:"links,omitempty"`
	Attributes             Attributes      `json:"attributes,omitempty"             yaml:"attributes,omitempty"`
}

// InvoiceDetail is one line-item category of an invoice.
type InvoiceDetail struct {
	InvoiceLineItemType string     `json:"invoiceLineItemType" yaml:"invoiceLineItemType"`
	BillingProvider     string     `json:"billingProvider"     yaml:"billingProvider"`
	Links               Links      `json:"links,omitempty"     yaml:"links,omitempty"`
	Attributes          Attributes `json:"attributes"          yaml:"attributes"`
}

// PasswordProfile sets a Partner Center customer user's password.
type PasswordProfile struct {
	ForceChangePassword bool   `json:"forceChangePassword" yaml:"forceChangePassword"`
	Password            string `json:"password"            yaml:"-"`
}

// CustomerUserCreateRequest creates a user in a customer tenant.
type CustomerUserCreateRequest struct {
	UsageLocation     string          `json:"usageLocation"     yaml:"usageLocation"`
	UserPrincipalName string          `json:"userPrincipalName" yaml:"userPrincipalName"`
	FirstName         string          `json:"firstName"         yaml:"firstName"`
	LastName          string          `json:"lastName"          yaml:"lastName"`
	DisplayName       string          `json:"displayName"       yaml:"displayName"`
	PasswordProfile   PasswordProfile `json:"passwordProfile"   yaml:"passwordProfile"`
}

// CustomerUser represents a user in a customer tenant.
type CustomerUser struct {
	ID                    string           `json:"id"                              yaml:"id"`
	UsageLocation         string           `json:"usageLocation,omitempty"         yaml:"usageLocation,omitempty"`
	UserPrincipalName     string           `json:"userPrincipalName"               yaml:"userPrincipalName"`
	FirstName             string           `json:"firstName,omitempty"             yaml:"firstName,omitempty"`
	LastName              string           `json:"lastName,omitempty"              yaml:"lastName,omitempty"`
	DisplayName           string           `json:"displayName,omitempty"           yaml:"displayName,omitempty"`
	ImmutableID           string           `json:"immutableId,omitempty"           yaml:"immutableId,omitempty"`
	PasswordProfile       *PasswordProfile `json:"passwordProfile,omitempty"       yaml:"passwordProfile,omitempty"`
	LastDirectorySyncTime *time.Time       `json:"lastDirectorySyncTime,omitempty" yaml:"lastDirectorySyncTime,omitempty"`
	UserDomainType        string           `json:"userDomainType,omitempty"        yaml:"userDomainType,omitempty"`
	State                 string           `json:"state,omitempty"                 yaml:"state,omitempty"`
	SoftDeletionTime      *time.Time       `json:"softDeletionTime,omitempty"      yaml:"softDeletionTime,omitempty"`
	Attributes            Attributes       `json:"attributes,omitempty"            yaml:"attributes,omitempty"`
}

// DirectoryRole is an Entra ID directory role held by a customer user.
type DirectoryRole struct {
	ID         string     `json:"id"         yaml:"id"`
	Name       string     `json:"name"       yaml:"name"`
	Attributes Attributes `json:"attributes" yaml:"attributes"`
}

// UserRoleMemberRequest adds a user to a directory role. Partner Center
// expects PascalCase keys for this call.
type UserRoleMemberRequest struct {
	ID                string `json:"Id"                yaml:"id"`
	DisplayName       string `json:"DisplayName"       yaml:"displayName"`
	UserPrincipalName string `json:"UserPrincipalName" yaml:"userPrincipalName"`
}

// UserRoleMember is the role membership returned by Partner Center.
type UserRoleMember struct {
	ID                string     `json:"id"                yaml:"id"`
	DisplayName       string     `json:"displayName"       yaml:"displayName"`
	UserPrincipalName string     `json:"userPrincipalName" yaml:"userPrincipalName"`
	RoleID            string     `json:"roleId"            yaml:"roleId"`
	Attributes        Attributes `json:"attributes"        yaml:"attributes"`
}

// LicenseAssignment assigns one product SKU to a user.
type LicenseAssignment struct {
	SkuID         string   `json:"skuId"                   yaml:"skuId"`
	ExcludedPlans []string `json:"excludedPlans,omitempty" yaml:"excludedPlans,omitempty"`
}

// LicenseUpdateRequest assigns and removes user licenses in one call.
type LicenseUpdateRequest struct {
	LicensesToAssign []LicenseAssignment `json:"licensesToAssign,omitempty" yaml:"licensesToAssign,omitempty"`
	LicensesToRemove []string            `json:"licensesToRemove,omitempty" yaml:"licensesToRemove,omitempty"`
	Attributes       Attributes          `json:"attributes"                 yaml:"attributes"`
}

// LicenseWarning is reported when an assignment partially fails.
type LicenseWarning struct {
	Code         string   `json:"code"                   yaml:"code"`
	Message      string   `json:"message"                yaml:"message"`
	ServicePlans []string `json:"servicePlans,omitempty" yaml:"servicePlans,omitempty"`
}

// LicenseUpdateResponse echoes the applied license update.
type LicenseUpdateResponse struct {
	LicensesToAssign []LicenseAssignment `json:"licensesToAssign,omitempty" yaml:"licensesToAssign,omitempty"`
	LicensesToRemove []string            `json:"licensesToRemove,omitempty" yaml:"licensesToRemove,omitempty"`
	LicenseWarnings  []LicenseWarning    `json:"licenseWarnings,omitempty"  yaml:"licenseWarnings,omitempty"`
	Attributes       Attributes          `json:"attributes"                 yaml:"attributes"`
}

// ProductSku identifies a licensable product.
type ProductSku struct {
	ID             string `json:"id"                       yaml:"id"`
	Name           string `json:"name"                     yaml:"name"`
	SkuPartNumber  string `json:"skuPartNumber"            yaml:"skuPartNumber"`
	TargetType     string `json:"targetType,omitempty"     yaml:"targetType,omitempty"`
	LicenseGroupID string `json:"licenseGroupId,omitempty" yaml:"licenseGroupId,omitempty"`
}

// LicenseServicePlan is a service plan included in a product SKU.
type LicenseServicePlan struct {
	ID               string `json:"id"                         yaml:"id"`
	DisplayName      string `json:"displayName"                yaml:"displayName"`
	ServiceName      string `json:"serviceName"                yaml:"serviceName"`
	CapabilityStatus string `json:"capabilityStatus,omitempty" yaml:"capabilityStatus,omitempty"`
	TargetType       string `json:"targetType,omitempty"       yaml:"targetType,omitempty"`
}

// UserLicense is a license currently assigned to a customer user.
type UserLicense struct {
	ProductSku   ProductSku           `json:"productSku"   yaml:"productSku"`
	ServicePlans []LicenseServicePlan `json:"servicePlans" yaml:"servicePlans"`
	Attributes   Attributes           `json:"attributes"   yaml:"attributes"`
}

// LicenseUsage reports license consumption for a customer.
type LicenseUsage struct {
	AvailableUnits   int                  `json:"availableUnits"   yaml:"availableUnits"`
	ActiveUnits      int                  `json:"activeUnits"      yaml:"activeUnits"`
	ConsumedUnits    int                  `json:"consumedUnits"    yaml:"consumedUnits"`
	SuspendedUnits   int                  `json:"suspendedUnits"   yaml:"suspendedUnits"`
	TotalUnits       int                  `json:"totalUnits"       yaml:"totalUnits"`
	WarningUnits     int                  `json:"warningUnits"     yaml:"warningUnits"`
	ProductSku       ProductSku           `json:"productSku"       yaml:"productSku"`
	ServicePlans     []LicenseServicePlan `json:"servicePlans"     yaml:"servicePlans"`
	CapabilityStatus string               `json:"capabilityStatus" yaml:"capabilityStatus"`
	Attributes       Attributes           `json:"attributes"       yaml:"attributes"`
}

// OrderLineItem is one line of an order. A nil LineItemNumber lets the
// client number the lines by position.
type OrderLineItem struct {
	LineItemNumber       *int            `json:"lineItemNumber,omitempty"       yaml:"lineItemNumber,omitempty"`
	OfferID              string          `json:"offerId"                        yaml:"offerId"`
	Quantity             int             `json:"quantity"                       yaml:"quantity"`
	FriendlyName         string          `json:"friendlyName,omitempty"         yaml:"friendlyName,omitempty"`
	TermDuration         string          `json:"termDuration,omitempty"         yaml:"termDuration,omitempty"`
	CustomTermEndDate    string          `json:"customTermEndDate,omitempty"    yaml:"customTermEndDate,omitempty"`
	ParentSubscriptionID string          `json:"parentSubscriptionId,omitempty" yaml:"parentSubscriptionId,omitempty"`
	PromotionID          string          `json:"promotionId,omitempty"          yaml:"promotionId,omitempty"`
	TransactionType      string          `json:"transactionType,omitempty"      yaml:"transactionType,omitempty"`
	AttestationAccepted  *bool           `json:"attestationAccepted,omitempty"  yaml:"attestationAccepted,omitempty"`
	RenewsTo             json.RawMessage `json:"renewsTo,omitempty"             yaml:"-"`
}

// OrderLineItemOptions are the optional line item settings used when
// ordering by product ID.
type OrderLineItemOptions struct {
	LineItemNumber       *int
	FriendlyName         string
	TermDuration         string
	CustomTermEndDate    string
	ParentSubscriptionID string
	PromotionID          string
	TransactionType      string
	AttestationAccepted  *bool
	RenewsTo             json.RawMessage
}

// ApplyTo copies the options onto item.
func (o *OrderLineItemOptions) ApplyTo(item *OrderLineItem) {
	if o == nil || item == nil {
		return
	}

	item.LineItemNumber = o.LineItemNumber
	item.FriendlyName = o.FriendlyName
	item.TermDuration = o.TermDuration
	item.CustomTermEndDate = o.CustomTermEndDate
	item.ParentSubscriptionID = o.ParentSubscriptionID
	item.PromotionID = o.PromotionID
	item.TransactionType = o.TransactionType
	item.AttestationAccepted = o.AttestationAccepted
	item.RenewsTo = o.RenewsTo
}

// OrderCreateRequest is the body of POST customers/{id}/orders.
type OrderCreateRequest struct {
	LineItems    []OrderLineItem `json:"lineItems"    yaml:"lineItems"`
	BillingCycle BillingCycle    `json:"billingCycle" yaml:"billingCycle"`
}

// Order represents a placed order.
type Order struct {
	ID                  string          `json:"id"                            yaml:"id"`
	AlternateID         string          `json:"alternateId,omitempty"         yaml:"alternateId,omitempty"`
	ReferenceCustomerID string          `json:"referenceCustomerId,omitempty" yaml:"referenceCustomerId,omitempty"`
	BillingCycle        string          `json:"billingCycle"                  yaml:"billingCycle"`
	CurrencyCode        string          `json:"currencyCode,omitempty"        yaml:"currencyCode,omitempty"`
	CurrencySymbol      string          `json:"currencySymbol,omitempty"      yaml:"currencySymbol,omitempty"`
	LineItems           []OrderLineItem `json:"lineItems"                     yaml:"lineItems"`
	CreationDate        *time.Time      `json:"creationDate,omitempty"        yaml:"creationDate,omitempty"`
	Status              string          `json:"status"                        yaml:"status"`
	TransactionType     string          `json:"transactionType,omitempty"     yaml:"transactionType,omitempty"`
	Links               Links           `json:"links,omitempty"               yaml:"links,omitempty"`
	Attributes          Attributes      `json:"attributes,omitempty"          yaml:"attributes,omitempty"`
}

// Sku is a purchasable variant of a product.
type Sku struct {
	ID                     string                 `json:"id"                               yaml:"id"`
	ProductID              string                 `json:"productId"                        yaml:"productId"`
	Title                  string                 `json:"title"                            yaml:"title"`
	Description            string                 `json:"description,omitempty"            yaml:"description,omitempty"`
	MinimumQuantity        int                    `json:"minimumQuantity"                  yaml:"minimumQuantity"`
	MaximumQuantity        int                    `json:"maximumQuantity"                  yaml:"maximumQuantity"`
	IsTrial                bool                   `json:"isTrial"                          yaml:"isTrial"`
	TermsOfUseURI          string                 `json:"termsOfUseUri,omitempty"          yaml:"termsOfUseUri,omitempty"`
	SupportedBillingCycles []string               `json:"supportedBillingCycles,omitempty" yaml:"supportedBillingCycles,omitempty"`
	PurchasePrerequisites  []string               `json:"purchasePrerequisites,omitempty"  yaml:"purchasePrerequisites,omitempty"`
	Actions                []string               `json:"actions,omitempty"                yaml:"actions,omitempty"`
	DynamicAttributes      map[string]interface{} `json:"dynamicAttributes,omitempty"      yaml:"dynamicAttributes,omitempty"`
	Links                  Links                  `json:"links,omitempty"                  yaml:"links,omitempty"`
}

// Availability is a purchasable configuration of a SKU in a market.
type Availability struct {
	ID              string               `json:"id"                        yaml:"id"`
	ProductID       string               `json:"productId"                 yaml:"productId"`
	SkuID           string               `json:"skuId"                     yaml:"skuId"`
	CatalogItemID   string               `json:"catalogItemId"             yaml:"catalogItemId"`
	DefaultCurrency *Currency            `json:"defaultCurrency,omitempty" yaml:"defaultCurrency,omitempty"`
	Segment         string               `json:"segment,omitempty"         yaml:"segment,omitempty"`
	Country         string               `json:"country,omitempty"         yaml:"country,omitempty"`
	IsPurchasable   bool                 `json:"isPurchasable"             yaml:"isPurchasable"`
	IsRenewable     bool                 `json:"isRenewable"               yaml:"isRenewable"`
	Terms           []Term               `json:"terms,omitempty"           yaml:"terms,omitempty"`
	Product         *AvailabilityProduct `json:"product,omitempty"         yaml:"product,omitempty"`
	Links           Links                `json:"links,omitempty"           yaml:"links,omitempty"`
}

// Currency is an ISO currency with its display symbol.
type Currency struct {
	Code   string `json:"code"   yaml:"code"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

// Term is a purchasable term of an availability.
type Term struct {
	ID           string `json:"id"                     yaml:"id"`
	Duration     string `json:"duration"               yaml:"duration"`
	Description  string `json:"description,omitempty"  yaml:"description,omitempty"`
	BillingCycle string `json:"billingCycle,omitempty" yaml:"billingCycle,omitempty"`
}

// AvailabilityProduct is the product an availability belongs to.
type AvailabilityProduct struct {
	ID                 string       `json:"id"                    yaml:"id"`
	Title              string       `json:"title"                 yaml:"title"`
	Description        string       `json:"description,omitempty" yaml:"description,omitempty"`
	ProductType        *ProductType `json:"productType,omitempty" yaml:"productType,omitempty"`
	IsMicrosoftProduct bool         `json:"isMicrosoftProduct"    yaml:"isMicrosoftProduct"`
	PublisherName      string       `json:"publisherName"         yaml:"publisherName"`
}

// ApplicationGrant grants one scope of an enterprise application.
type ApplicationGrant struct {
	EnterpriseApplicationID string `json:"enterpriseApplicationId" yaml:"enterpriseApplicationId"`
	Scope                   string `json:"scope"                   yaml:"scope"`
}

// ApplicationConsent grants a control-panel vendor application access to a
// customer tenant.
type ApplicationConsent struct {
	ApplicationID     string             `json:"applicationId"     yaml:"applicationId"`
	ApplicationGrants []ApplicationGrant `json:"applicationGrants" yaml:"applicationGrants"`
}
