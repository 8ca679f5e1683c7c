package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Service endpoints.
const (
	// PartnerCenterBaseURL is the root of the Partner Center REST API.
	PartnerCenterBaseURL = "https://api.partnercenter.microsoft.com/v1/"

	// PartnerCenterScope is the OAuth2 scope for Partner Center tokens.
	PartnerCenterScope = "https://api.partnercenter.microsoft.com/.default"

	// GraphBaseURL is the root of the Microsoft Graph v1.0 REST API.
	GraphBaseURL = "https://graph.microsoft.com/v1.0/"

	// GraphScope is the OAuth2 scope for Microsoft Graph tokens.
	GraphScope = "https://graph.microsoft.com/.default"

	// DefaultAuthorityHost is the Entra ID login host.
	DefaultAuthorityHost = "https://login.microsoftonline.com"
)

// OAuth2 grant types and form fields.
const (
	GrantTypeClientCredentials = "client_credentials"
	GrantTypeRefreshToken      = "refresh_token"

	TokenTypeBearer = "Bearer"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as token persistence.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultConflictRetryDelay is the wait between retries after a 409 Conflict.
	DefaultConflictRetryDelay = 1 * time.Second

	// DefaultConflictMaxRetries bounds the number of retries after a 409 Conflict.
	DefaultConflictMaxRetries = 3

	// DefaultRetryWaitMin is the minimum transport-level backoff.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum transport-level backoff.
	DefaultRetryWaitMax = 30 * time.Second
)

// Request headers understood by Partner Center.
const (
	HeaderRequestID     = "MS-RequestId"
	HeaderCorrelationID = "MS-CorrelationId"
)

// Persistence defaults.
const (
	// DefaultNATSBucket is the JetStream key-value bucket for refresh tokens.
	DefaultNATSBucket = "mspc_refresh_tokens"

	// DefaultTokenFileName is the refresh token file inside the config directory.
	DefaultTokenFileName = "tokens.yml"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// DateFormat is used for table output.
	DateFormat = "2006-01-02"
)
