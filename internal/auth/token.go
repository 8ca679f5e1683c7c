package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TokenManager provides bearer tokens to the HTTP pipeline.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
}

// RefreshTokenProvider exposes the refresh token a manager currently holds.
type RefreshTokenProvider interface {
	InitializedRefreshToken(ctx context.Context) (string, error)
}

// ExpiresIn is the token lifetime in seconds. The v1 token endpoint encodes it
// as a string, the v2 endpoint as a number; both are accepted.
type ExpiresIn int64

// UnmarshalJSON implements json.Unmarshaler.
func (e *ExpiresIn) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*e = 0

		return nil
	}

	raw = strings.Trim(raw, `"`)
	if raw == "" {
		*e = 0

		return nil
	}

	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid expires_in %q: %w", raw, err)
	}

	*e = ExpiresIn(seconds)

	return nil
}

// MarshalJSON writes ExpiresIn as a number.
func (e ExpiresIn) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(e))
}

// Duration returns the lifetime as a time.Duration.
func (e ExpiresIn) Duration() time.Duration {
	return time.Duration(e) * time.Second
}

// Token is a token endpoint response.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    ExpiresIn `json:"expires_in,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	Resource     string    `json:"resource,omitempty"`
	// ExpiresAt is filled in by the manager from the exp claim, falling back
	// to ExpiresIn when the token cannot be decoded.
	ExpiresAt time.Time `json:"-"`
}

// TokenStore holds the current token.
type TokenStore struct {
	mutex sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token or nil.
func (s *TokenStore) Get() *Token {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = nil
}
