package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"golang.org/x/sync/singleflight"
)

// OAuth2Config configures an OAuth2TokenManager.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	// RefreshToken switches the manager to the refresh_token grant.
	RefreshToken string
	// AccessToken seeds the cache, e.g. with a token saved by the CLI.
	AccessToken string
	Scopes      []string
	// Resource is sent with every token request when non-empty.
	Resource   string
	HTTPClient *http.Client

	// OnRefreshTokenRotated is called, outside any lock, each time the token
	// endpoint hands back a refresh token.
	OnRefreshTokenRotated func(refreshToken string)
	// DecodeExpiry replaces DecodeJWTExpiry.
	DecodeExpiry ExpiryDecoder
}

// tokenErrorResponse is the error body of the token endpoint.
type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// OAuth2TokenManager obtains and caches access tokens from an Entra ID token
// endpoint with the client_credentials or refresh_token grant.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	httpClient *http.Client
	store      *TokenStore
	decode     ExpiryDecoder
	group      singleflight.Group

	mutex         sync.Mutex
	refreshToken  string
	authenticated bool
}

// NewOAuth2TokenManager creates a new OAuth2 token manager.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	if config == nil {
		config = &OAuth2Config{}
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}

	decode := config.DecodeExpiry
	if decode == nil {
		decode = DecodeJWTExpiry
	}

	manager := &OAuth2TokenManager{
		config:       config,
		httpClient:   httpClient,
		store:        NewTokenStore(),
		decode:       decode,
		refreshToken: config.RefreshToken,
	}

	if config.AccessToken != "" {
		manager.SetToken(config.AccessToken)
	}

	return manager
}

// GetToken returns a valid access token for the configured resource.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	return m.GetAccessToken(ctx, m.config.Resource)
}

// GetAccessToken returns the cached access token, authenticating first when
// none is held or the held one is stale.
func (m *OAuth2TokenManager) GetAccessToken(ctx context.Context, resource string) (string, error) {
	token := m.store.Get()
	if token != nil && !IsStale(token.AccessToken, m.decode, time.Now()) {
		return token.AccessToken, nil
	}

	token, err := m.Authenticate(ctx, resource)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// RefreshToken forces a new token exchange.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	_, err := m.Authenticate(ctx, m.config.Resource)

	return err
}

// InitializedRefreshToken returns the current refresh token. It is empty,
// without any network call, when the manager was built without one.
// Otherwise the manager authenticates once if it has not done so yet, so
// that a rotated refresh token is returned.
func (m *OAuth2TokenManager) InitializedRefreshToken(ctx context.Context) (string, error) {
	if m.config.RefreshToken == "" {
		return "", nil
	}

	m.mutex.Lock()
	authenticated := m.authenticated
	m.mutex.Unlock()

	if !authenticated {
		_, err := m.Authenticate(ctx, m.config.Resource)
		if err != nil {
			return "", err
		}
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.refreshToken, nil
}

// SetToken replaces the cached access token.
func (m *OAuth2TokenManager) SetToken(accessToken string) {
	token := &Token{
		AccessToken: accessToken,
		TokenType:   constants.TokenTypeBearer,
	}

	expiresAt, err := m.decode(accessToken)
	if err == nil {
		token.ExpiresAt = expiresAt
	}

	m.store.Set(token)
}

// CurrentToken returns the cached token, or nil before the first exchange.
func (m *OAuth2TokenManager) CurrentToken() *Token {
	return m.store.Get()
}

// Authenticate exchanges credentials for a new access token and caches it.
// Concurrent calls for the same resource share one request. The exchange is
// detached from the caller that started it, so a caller giving up returns its
// own context error without failing the others.
func (m *OAuth2TokenManager) Authenticate(ctx context.Context, resource string) (*Token, error) {
	flight := m.group.DoChan(resource, func() (interface{}, error) {
		exchangeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.exchangeTimeout())
		defer cancel()

		return m.authenticate(exchangeCtx, resource)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-flight:
		if result.Err != nil {
			return nil, result.Err
		}

		token, _ := result.Val.(*Token)

		return token, nil
	}
}

// exchangeTimeout bounds a detached token exchange.
func (m *OAuth2TokenManager) exchangeTimeout() time.Duration {
	if m.httpClient.Timeout > 0 {
		return m.httpClient.Timeout
	}

	return constants.DefaultHTTPTimeout
}

func (m *OAuth2TokenManager) authenticate(ctx context.Context, resource string) (*Token, error) {
	m.mutex.Lock()
	refreshToken := m.refreshToken
	m.mutex.Unlock()

	if m.config.ClientID == "" {
		return nil, &msapi.AuthenticationError{Err: constants.ErrNoValidCredentials}
	}

	data := url.Values{}
	data.Set("client_id", m.config.ClientID)
	data.Set("client_secret", m.config.ClientSecret)
	data.Set("scope", strings.Join(m.config.Scopes, " "))

	if refreshToken != "" {
		data.Set("grant_type", constants.GrantTypeRefreshToken)
		data.Set("refresh_token", refreshToken)
	} else {
		data.Set("grant_type", constants.GrantTypeClientCredentials)
	}

	if resource != "" {
		data.Set("resource", resource)
	}

	token, err := m.requestToken(ctx, data)
	if err != nil {
		return nil, err
	}

	token.ExpiresAt = m.expiresAt(token)
	m.store.Set(token)

	m.mutex.Lock()
	m.authenticated = true

	rotated := token.RefreshToken != ""
	if rotated {
		m.refreshToken = token.RefreshToken
	}
	m.mutex.Unlock()

	if rotated && m.config.OnRefreshTokenRotated != nil {
		m.config.OnRefreshTokenRotated(token.RefreshToken)
	}

	return token, nil
}

// requestToken makes the token request.
func (m *OAuth2TokenManager) requestToken(ctx context.Context, data url.Values) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, &msapi.AuthenticationError{Err: fmt.Errorf("creating token request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, &msapi.AuthenticationError{Err: fmt.Errorf("executing token request: %w", err)}
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &msapi.AuthenticationError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("reading token response: %w", err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		authErr := &msapi.AuthenticationError{StatusCode: resp.StatusCode}

		var errResp tokenErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			authErr.Code = errResp.Error
			authErr.Description = errResp.ErrorDescription
		} else {
			authErr.Description = strings.TrimSpace(string(body))
		}

		return nil, authErr
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return nil, &msapi.AuthenticationError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decoding token response: %w", err),
		}
	}

	if token.AccessToken == "" {
		return nil, &msapi.AuthenticationError{StatusCode: resp.StatusCode, Err: constants.ErrMissingAccessToken}
	}

	if token.TokenType == "" {
		token.TokenType = constants.TokenTypeBearer
	}

	return &token, nil
}

func (m *OAuth2TokenManager) expiresAt(token *Token) time.Time {
	expiresAt, err := m.decode(token.AccessToken)
	if err == nil {
		return expiresAt
	}

	if token.ExpiresIn > 0 {
		return time.Now().Add(token.ExpiresIn.Duration())
	}

	return time.Time{}
}
