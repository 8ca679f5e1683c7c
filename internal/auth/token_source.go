package auth

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"golang.org/x/oauth2"
)

type currentTokenHolder interface {
	CurrentToken() *Token
}

type tokenSource struct {
	ctx     context.Context //nolint:containedctx // oauth2.TokenSource has no context parameter
	manager TokenManager
}

// NewTokenSource exposes a TokenManager as an oauth2.TokenSource, so it can
// back an oauth2.Transport or be inspected by callers that speak oauth2.
func NewTokenSource(ctx context.Context, manager TokenManager) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, manager: manager}
}

// TokenSource returns an oauth2.TokenSource backed by the manager.
func (m *OAuth2TokenManager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return NewTokenSource(ctx, m)
}

// Token implements oauth2.TokenSource.
func (s *tokenSource) Token() (*oauth2.Token, error) {
	accessToken, err := s.manager.GetToken(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("getting access token: %w", err)
	}

	token := &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   constants.TokenTypeBearer,
	}

	holder, ok := s.manager.(currentTokenHolder)
	if !ok {
		return token, nil
	}

	current := holder.CurrentToken()
	if current != nil && current.AccessToken == accessToken {
		token.Expiry = current.ExpiresAt
		token.RefreshToken = current.RefreshToken
	}

	return token, nil
}
