package constants

import "errors"

// Configuration errors.
var (
	ErrTenantRequired         = errors.New("tenant domain is required")
	ErrAuthenticationRequired = errors.New("authentication is required")
	ErrClientIDRequired       = errors.New("client ID is required")
	ErrClientSecretRequired   = errors.New("client secret is required")
	ErrBearerTokenRequired    = errors.New("bearer token is required")
	ErrUnsupportedAuth        = errors.New("unsupported authentication type")
	ErrUnsupportedOAuth       = errors.New("unsupported OAuth version")
	ErrUnsupportedTokenStore  = errors.New("unsupported token store")
	ErrNATSURLRequired        = errors.New("NATS URL is required for the nats token store")
)

// Token errors.
var (
	ErrNoValidCredentials       = errors.New("no valid credentials available")
	ErrMissingAccessToken       = errors.New("token response did not contain an access token")
	ErrNoExpirationClaim        = errors.New("no expiration claim found")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
)

// Resource errors.
var (
	ErrNoSKUFound             = errors.New("no SKU found for this product")
	ErrNoAvailabilityFound    = errors.New("no availability found for this product")
	ErrManagerNotFound        = errors.New("manager not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrServicePrincipalAbsent = errors.New("service principal not found")
)
