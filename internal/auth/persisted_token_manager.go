package auth

import (
	"context"
	"fmt"
	"os"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// PersistedTokenManager wraps OAuth2TokenManager and keeps the refresh token
// in a RefreshTokenStore across processes.
type PersistedTokenManager struct {
	oauth2Manager *OAuth2TokenManager
	store         msapi.RefreshTokenStore
	key           string
	logger        msapi.Logger
}

// NewPersistedTokenManager creates a persisting token manager. When config
// carries no refresh token, one is loaded from store under key. Every rotated
// refresh token is saved back before config.OnRefreshTokenRotated runs.
func NewPersistedTokenManager(
	ctx context.Context,
	config *OAuth2Config,
	store msapi.RefreshTokenStore,
	key string,
	logger msapi.Logger,
) (*PersistedTokenManager, error) {
	cfg := *config

	if cfg.RefreshToken == "" && store != nil {
		refreshToken, err := store.LoadRefreshToken(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("loading refresh token: %w", err)
		}

		cfg.RefreshToken = refreshToken
	}

	manager := &PersistedTokenManager{
		store:  store,
		key:    key,
		logger: logger,
	}

	onRotated := cfg.OnRefreshTokenRotated
	cfg.OnRefreshTokenRotated = func(refreshToken string) {
		manager.persist(refreshToken)

		if onRotated != nil {
			onRotated(refreshToken)
		}
	}

	manager.oauth2Manager = NewOAuth2TokenManager(&cfg)

	return manager, nil
}

// GetToken returns a valid access token, refreshing if necessary.
func (m *PersistedTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.oauth2Manager.GetToken(ctx)
}

// RefreshToken forces a token refresh.
func (m *PersistedTokenManager) RefreshToken(ctx context.Context) error {
	return m.oauth2Manager.RefreshToken(ctx)
}

// InitializedRefreshToken returns the current refresh token.
func (m *PersistedTokenManager) InitializedRefreshToken(ctx context.Context) (string, error) {
	return m.oauth2Manager.InitializedRefreshToken(ctx)
}

// SetToken manually sets the access token.
func (m *PersistedTokenManager) SetToken(accessToken string) {
	m.oauth2Manager.SetToken(accessToken)
}

// CurrentToken returns the cached token.
func (m *PersistedTokenManager) CurrentToken() *Token {
	return m.oauth2Manager.CurrentToken()
}

// persist saves the refresh token. A failure is reported but does not fail
// the request that rotated the token.
func (m *PersistedTokenManager) persist(refreshToken string) {
	if m.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShortHTTPTimeout)
	defer cancel()

	err := m.store.SaveRefreshToken(ctx, m.key, refreshToken)
	if err == nil {
		return
	}

	if m.logger != nil {
		m.logger.Warn("Failed to persist refreshed token", map[string]interface{}{
			"key":   m.key,
			"error": err.Error(),
		})

		return
	}

	_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist refreshed token: %v\n", err)
}
