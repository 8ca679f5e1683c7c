package auth

import (
	"fmt"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/golang-jwt/jwt/v5"
)

// ExpiryDecoder extracts the expiry instant from an access token.
type ExpiryDecoder func(accessToken string) (time.Time, error)

// DecodeJWTExpiry reads the exp claim of a JWT access token. The signature is
// not verified; the token is only inspected to decide when to renew it.
func DecodeJWTExpiry(accessToken string) (time.Time, error) {
	claims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(accessToken, claims)
	if err != nil {
		return time.Time{}, fmt.Errorf("decoding access token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("reading exp claim: %w", err)
	}

	if exp == nil {
		return time.Time{}, constants.ErrNoExpirationClaim
	}

	return exp.Time, nil
}

// IsStale reports whether accessToken must be renewed: it is empty, cannot be
// decoded, or its expiry is at or before now.
func IsStale(accessToken string, decode ExpiryDecoder, now time.Time) bool {
	if accessToken == "" {
		return true
	}

	if decode == nil {
		decode = DecodeJWTExpiry
	}

	expiresAt, err := decode(accessToken)
	if err != nil {
		return true
	}

	return !expiresAt.After(now)
}
