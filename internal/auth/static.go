package auth

import (
	"context"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
)

// StaticTokenManager serves a pre-obtained bearer token that cannot be renewed.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a manager for a fixed access token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the static token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	if m.token == "" {
		return "", constants.ErrBearerTokenRequired
	}

	return m.token, nil
}

// RefreshToken always fails with ErrStaticTokenCannotRefresh.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return constants.ErrStaticTokenCannotRefresh
}

// InitializedRefreshToken returns an empty string; a static token has no
// refresh token.
func (m *StaticTokenManager) InitializedRefreshToken(ctx context.Context) (string, error) {
	return "", nil
}
