package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"

	"github.com/fivetwenty-io/partnercenter-client/internal/auth"
	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// service holds what the Partner Center and Graph clients share: one token
// manager and one pipeline.
type service struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
}

// newService builds the token manager and pipeline for an already
// normalized config.
func newService(ctx context.Context, config *msapi.Config, chain *msapi.InterceptorChain) (*service, error) {
	tokenManager, err := createTokenManager(ctx, config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config.BaseURL, tokenManager, createHTTPClientOptions(config, chain)...)

	return &service{
		httpClient:   httpClient,
		tokenManager: tokenManager,
	}, nil
}

// RefreshToken returns the refresh token currently held, authenticating first
// when needed. Client-credential and bearer clients return "".
func (s *service) RefreshToken(ctx context.Context) (string, error) {
	provider, ok := s.tokenManager.(auth.RefreshTokenProvider)
	if !ok {
		return "", nil
	}

	refreshToken, err := provider.InitializedRefreshToken(ctx)
	if err != nil {
		return "", fmt.Errorf("initializing refresh token: %w", err)
	}

	return refreshToken, nil
}

// TokenManager exposes the token manager, e.g. for an oauth2.TokenSource.
func (s *service) TokenManager() auth.TokenManager {
	return s.tokenManager
}

// createTokenManager resolves the credential variant once.
func createTokenManager(ctx context.Context, config *msapi.Config) (auth.TokenManager, error) {
	switch credentials := config.Authentication.(type) {
	case msapi.BearerToken:
		return createStaticTokenManager(credentials.Token)
	case *msapi.BearerToken:
		return createStaticTokenManager(credentials.Token)
	case msapi.ClientCredentials:
		return createOAuth2TokenManager(ctx, config, credentials.ClientID, credentials.ClientSecret, "")
	case *msapi.ClientCredentials:
		return createOAuth2TokenManager(ctx, config, credentials.ClientID, credentials.ClientSecret, "")
	case msapi.RefreshTokenCredentials:
		return createOAuth2TokenManager(ctx, config, credentials.ClientID, credentials.ClientSecret, credentials.RefreshToken)
	case *msapi.RefreshTokenCredentials:
		return createOAuth2TokenManager(ctx, config, credentials.ClientID, credentials.ClientSecret, credentials.RefreshToken)
	case nil:
		return nil, constants.ErrAuthenticationRequired
	default:
		return nil, fmt.Errorf("%w: %T", constants.ErrUnsupportedAuth, credentials)
	}
}

func createStaticTokenManager(token string) (auth.TokenManager, error) {
	if token == "" {
		return nil, constants.ErrBearerTokenRequired
	}

	return auth.NewStaticTokenManager(token), nil
}

// createOAuth2TokenManager creates an OAuth2 token manager, persisting the
// refresh token when the config carries a store.
func createOAuth2TokenManager(
	ctx context.Context,
	config *msapi.Config,
	clientID, clientSecret, refreshToken string,
) (auth.TokenManager, error) {
	oauthConfig := &auth.OAuth2Config{
		TokenURL:              config.TokenURL,
		ClientID:              clientID,
		ClientSecret:          clientSecret,
		RefreshToken:          refreshToken,
		Scopes:                config.Scopes,
		Resource:              config.Resource,
		HTTPClient:            tokenHTTPClient(config),
		OnRefreshTokenRotated: config.OnRefreshTokenRotated,
	}

	if config.RefreshTokenStore == nil {
		return auth.NewOAuth2TokenManager(oauthConfig), nil
	}

	manager, err := auth.NewPersistedTokenManager(ctx, oauthConfig, config.RefreshTokenStore, config.RefreshTokenKey, config.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating token manager: %w", err)
	}

	return manager, nil
}

func tokenHTTPClient(config *msapi.Config) *nethttp.Client {
	if config.HTTPClient != nil {
		return config.HTTPClient
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	return &nethttp.Client{Timeout: timeout}
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *msapi.Config, chain *msapi.InterceptorChain) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.RetryMax > 0 {
		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	httpOpts = append(httpOpts, http.WithConflictPolicy(config.Conflict.Normalized()))

	if chain != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(chain))
	}

	return httpOpts
}

// chainWith returns a chain that runs first, then the caller's chain.
func chainWith(user *msapi.InterceptorChain, first ...msapi.RequestInterceptor) *msapi.InterceptorChain {
	if user == nil && len(first) == 0 {
		return nil
	}

	chain := msapi.NewInterceptorChain()
	for _, interceptor := range first {
		chain.AddRequestInterceptor(interceptor)
	}

	if user != nil {
		chain.AddRequestInterceptor(user.ExecuteRequestInterceptors)
		chain.AddResponseInterceptor(user.ExecuteResponseInterceptors)
	}

	return chain
}

// decodeResponse unmarshals a response body into T.
func decodeResponse[T any](resp *http.Response, what string) (*T, error) {
	var result T

	err := json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", what, err)
	}

	return &result, nil
}

// decodeItems unmarshals a Partner Center collection.
func decodeItems[T any](resp *http.Response, what string) ([]T, error) {
	list, err := decodeResponse[msapi.ItemList[T]](resp, what)
	if err != nil {
		return nil, err
	}

	return list.Items, nil
}

// decodeValue unmarshals a Graph collection.
func decodeValue[T any](resp *http.Response, what string) ([]T, error) {
	list, err := decodeResponse[msapi.ODataList[T]](resp, what)
	if err != nil {
		return nil, err
	}

	return list.Value, nil
}
