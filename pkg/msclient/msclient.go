package msclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/partnercenter-client/internal/auth"
	"github.com/fivetwenty-io/partnercenter-client/internal/client"
	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"golang.org/x/oauth2"
)

// serviceDefaults are the per-service values normalize falls back to.
type serviceDefaults struct {
	baseURL string
	scope   string
}

var (
	partnerCenterDefaults = serviceDefaults{
		baseURL: constants.PartnerCenterBaseURL,
		scope:   constants.PartnerCenterScope,
	}
	graphDefaults = serviceDefaults{
		baseURL: constants.GraphBaseURL,
		scope:   constants.GraphScope,
	}
)

// NewPartnerCenter creates a Microsoft Partner Center client.
func NewPartnerCenter(ctx context.Context, config *msapi.Config) (msapi.PartnerCenter, error) {
	normalized, err := normalize(config, partnerCenterDefaults)
	if err != nil {
		return nil, err
	}

	pc, err := client.NewPartnerCenter(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create Partner Center client: %w", err)
	}

	return pc, nil
}

// NewGraph creates a Microsoft Graph client.
func NewGraph(ctx context.Context, config *msapi.Config) (msapi.Graph, error) {
	normalized, err := normalize(config, graphDefaults)
	if err != nil {
		return nil, err
	}

	graph, err := client.NewGraph(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create Graph client: %w", err)
	}

	return graph, nil
}

// NewPartnerCenterWithClientCredentials creates a Partner Center client using
// the client_credentials grant.
func NewPartnerCenterWithClientCredentials(ctx context.Context, tenant, clientID, clientSecret string) (msapi.PartnerCenter, error) {
	return NewPartnerCenter(ctx, &msapi.Config{
		TenantDomain: tenant,
		Authentication: msapi.ClientCredentials{
			ClientID:     clientID,
			ClientSecret: clientSecret,
		},
	})
}

// NewPartnerCenterWithRefreshToken creates a Partner Center client using the
// refresh_token grant.
func NewPartnerCenterWithRefreshToken(
	ctx context.Context,
	tenant, clientID, clientSecret, refreshToken string,
) (msapi.PartnerCenter, error) {
	return NewPartnerCenter(ctx, &msapi.Config{
		TenantDomain: tenant,
		Authentication: msapi.RefreshTokenCredentials{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RefreshToken: refreshToken,
		},
	})
}

// NewGraphWithClientCredentials creates a Graph client using the
// client_credentials grant.
func NewGraphWithClientCredentials(ctx context.Context, tenant, clientID, clientSecret string) (msapi.Graph, error) {
	return NewGraph(ctx, &msapi.Config{
		TenantDomain: tenant,
		Authentication: msapi.ClientCredentials{
			ClientID:     clientID,
			ClientSecret: clientSecret,
		},
	})
}

// NewGraphWithToken creates a Graph client that sends a pre-obtained access
// token.
func NewGraphWithToken(ctx context.Context, token string) (msapi.Graph, error) {
	return NewGraph(ctx, &msapi.Config{
		Authentication: msapi.BearerToken{Token: token},
	})
}

// TokenSource returns an oauth2.TokenSource backed by the client's token
// manager, for use with other OAuth2-aware libraries.
func TokenSource(ctx context.Context, c interface{}) (oauth2.TokenSource, bool) {
	holder, ok := c.(interface{ TokenManager() auth.TokenManager })
	if !ok {
		return nil, false
	}

	return auth.NewTokenSource(ctx, holder.TokenManager()), true
}

// TokenURL returns the token endpoint for a tenant.
func TokenURL(authorityHost, tenant string, version msapi.OAuthVersion) (string, error) {
	if authorityHost == "" {
		authorityHost = constants.DefaultAuthorityHost
	}

	base := strings.TrimSuffix(authorityHost, "/") + "/" + tenant

	switch version {
	case msapi.OAuthV2, "":
		return base + "/oauth2/v2.0/token", nil
	case msapi.OAuthV1:
		return base + "/oauth2/token", nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnsupportedOAuth, version)
	}
}

// normalize validates config and returns a copy with defaults applied.
func normalize(config *msapi.Config, defaults serviceDefaults) (*msapi.Config, error) {
	if config == nil {
		return nil, msapi.ErrConfigRequired
	}

	normalized := *config

	clientID, err := validateAuthentication(normalized.Authentication)
	if err != nil {
		return nil, err
	}

	if normalized.BaseURL == "" {
		normalized.BaseURL = defaults.baseURL
	}

	if clientID == "" {
		return &normalized, nil
	}

	if normalized.TenantDomain == "" {
		return nil, constants.ErrTenantRequired
	}

	if normalized.TokenURL == "" {
		normalized.TokenURL, err = TokenURL(normalized.AuthorityHost, normalized.TenantDomain, normalized.OAuthVersion)
		if err != nil {
			return nil, err
		}
	}

	if len(normalized.Scopes) == 0 && normalized.OAuthVersion != msapi.OAuthV1 {
		normalized.Scopes = []string{defaults.scope}
	}

	if normalized.RefreshTokenKey == "" {
		normalized.RefreshTokenKey = normalized.TenantDomain + "/" + clientID
	}

	return &normalized, nil
}

// validateAuthentication checks the credential variant and returns its client
// ID, which is empty for bearer tokens.
func validateAuthentication(authentication msapi.Authentication) (string, error) {
	switch credentials := authentication.(type) {
	case nil:
		return "", constants.ErrAuthenticationRequired
	case msapi.BearerToken:
		return "", validateBearer(credentials.Token)
	case *msapi.BearerToken:
		return "", validateBearer(credentials.Token)
	case msapi.ClientCredentials:
		return credentials.ClientID, validateClient(credentials.ClientID, credentials.ClientSecret)
	case *msapi.ClientCredentials:
		return credentials.ClientID, validateClient(credentials.ClientID, credentials.ClientSecret)
	case msapi.RefreshTokenCredentials:
		return credentials.ClientID, validateClient(credentials.ClientID, credentials.ClientSecret)
	case *msapi.RefreshTokenCredentials:
		return credentials.ClientID, validateClient(credentials.ClientID, credentials.ClientSecret)
	default:
		return "", fmt.Errorf("%w: %T", constants.ErrUnsupportedAuth, credentials)
	}
}

func validateBearer(token string) error {
	if token == "" {
		return constants.ErrBearerTokenRequired
	}

	return nil
}

func validateClient(clientID, clientSecret string) error {
	if clientID == "" {
		return constants.ErrClientIDRequired
	}

	if clientSecret == "" {
		return constants.ErrClientSecretRequired
	}

	return nil
}
