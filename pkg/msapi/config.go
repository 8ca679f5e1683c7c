package msapi

import (
	"context"
	"net/http"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
)

// OAuthVersion selects the token endpoint flavour.
type OAuthVersion string

const (
	// OAuthV2 uses /{tenant}/oauth2/v2.0/token and scopes.
	OAuthV2 OAuthVersion = "v2.0"

	// OAuthV1 uses the legacy /{tenant}/oauth2/token endpoint, which also
	// accepts the resource parameter.
	OAuthV1 OAuthVersion = "v1"
)

// Authentication is the credential variant used by a client. It is one of
// ClientCredentials, RefreshTokenCredentials, or BearerToken.
type Authentication interface {
	authentication()
}

// ClientCredentials authenticates the application itself with the
// client_credentials grant.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
}

// RefreshTokenCredentials exchanges a refresh token for access tokens. The
// refresh token may be rotated by the token endpoint; see
// Config.OnRefreshTokenRotated.
type RefreshTokenCredentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// BearerToken sends a pre-obtained access token as-is. It cannot be renewed.
type BearerToken struct {
	Token string
}

func (ClientCredentials) authentication()       {}
func (RefreshTokenCredentials) authentication() {}
func (BearerToken) authentication()             {}

// ConflictPolicy controls retries after HTTP 409 Conflict responses.
type ConflictPolicy struct {
	// Enabled turns conflict retries on.
	Enabled bool
	// Delay is the wait before each retry. Zero means the default of one second.
	Delay time.Duration
	// MaxRetries bounds the number of retries. Zero means the default of three.
	MaxRetries int
}

// DefaultConflictPolicy returns an enabled policy with the default delay and
// retry limit.
func DefaultConflictPolicy() *ConflictPolicy {
	return &ConflictPolicy{
		Enabled:    true,
		Delay:      constants.DefaultConflictRetryDelay,
		MaxRetries: constants.DefaultConflictMaxRetries,
	}
}

// Normalized returns a copy of the policy with defaults filled in. A nil
// policy yields a disabled one.
func (p *ConflictPolicy) Normalized() ConflictPolicy {
	if p == nil {
		return ConflictPolicy{}
	}

	policy := *p
	if policy.Delay <= 0 {
		policy.Delay = constants.DefaultConflictRetryDelay
	}

	if policy.MaxRetries <= 0 {
		policy.MaxRetries = constants.DefaultConflictMaxRetries
	}

	return policy
}

// RefreshTokenStore persists rotated refresh tokens between processes.
type RefreshTokenStore interface {
	LoadRefreshToken(ctx context.Context, key string) (string, error)
	SaveRefreshToken(ctx context.Context, key, refreshToken string) error
}

// Config represents client configuration for building a PartnerCenter or
// Graph client.
//
// # Authentication
//
// Authentication is resolved once, when the client is built:
//  1. BearerToken: the token is attached to every request and never renewed.
//     A 401 is returned to the caller.
//  2. ClientCredentials: the client_credentials grant is used against
//     AuthorityHost/TenantDomain.
//  3. RefreshTokenCredentials: the refresh_token grant is used. Rotated
//     refresh tokens are reported through OnRefreshTokenRotated and saved to
//     RefreshTokenStore when one is configured.
//
// # Timeouts and retries
//
// Timeout bounds each HTTP exchange, including token requests. Conflict
// enables 409 retries. RetryMax/RetryWaitMin/RetryWaitMax enable transport
// retries for 429 and 5xx responses; they are off by default so that these
// failures surface unchanged.
type Config struct {
	// TenantDomain is the partner's primary domain or tenant ID.
	TenantDomain string
	// Authentication is the credential variant. Required.
	Authentication Authentication

	// Timeout for each HTTP exchange. Zero uses a 30 second default.
	Timeout time.Duration
	// Conflict enables 409 retries when non-nil and Enabled.
	Conflict *ConflictPolicy
	// OnRefreshTokenRotated is invoked once per rotated refresh token.
	OnRefreshTokenRotated func(refreshToken string)
	// RefreshTokenStore optionally loads and saves refresh tokens.
	RefreshTokenStore RefreshTokenStore
	// RefreshTokenKey names the entry in RefreshTokenStore. Defaults to
	// "<tenant>/<client id>".
	RefreshTokenKey string

	// OAuthVersion selects the token endpoint. Defaults to OAuthV2.
	OAuthVersion OAuthVersion
	// Resource is sent with token requests when set (legacy v1 endpoints).
	Resource string
	// Scopes overrides the service's default scope.
	Scopes []string
	// AuthorityHost overrides https://login.microsoftonline.com.
	AuthorityHost string
	// TokenURL overrides the token endpoint entirely.
	TokenURL string
	// BaseURL overrides the service root.
	BaseURL string

	// Logger receives structured log output. Nil disables logging.
	Logger Logger
	// Debug logs every request and response at debug level.
	Debug bool
	// UserAgent is sent with every API request when set.
	UserAgent string

	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Interceptors run around every API request.
	Interceptors *InterceptorChain
	// HTTPClient replaces the underlying http.Client.
	HTTPClient *http.Client
}
