package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// RetryGuard tracks the recovery attempts of one logical request.
type RetryGuard struct {
	reAuthed  bool
	conflicts int
}

// NewRetryGuard returns a cleared guard.
func NewRetryGuard() *RetryGuard {
	return &RetryGuard{}
}

// ReAuthed reports whether the request has already been re-authenticated.
func (g *RetryGuard) ReAuthed() bool {
	return g.reAuthed
}

// Conflicts returns the number of conflict retries made so far.
func (g *RetryGuard) Conflicts() int {
	return g.conflicts
}

// Reset clears the guard.
func (g *RetryGuard) Reset() {
	g.reAuthed = false
	g.conflicts = 0
}

// Recoverer decides whether a failed request is resubmitted. A 401 is
// recovered once per request by renewing the token; a 409 is retried after a
// fixed delay while the conflict policy allows it.
type Recoverer struct {
	tokenManager TokenManager
	policy       msapi.ConflictPolicy
	logger       msapi.Logger
}

// NewRecoverer creates a Recoverer. tokenManager may be nil, in which case a
// 401 is never recovered.
func NewRecoverer(tokenManager TokenManager, policy msapi.ConflictPolicy, logger msapi.Logger) *Recoverer {
	return &Recoverer{
		tokenManager: tokenManager,
		policy:       policy,
		logger:       logger,
	}
}

// HandleAuthenticationError returns nil when the request should be sent
// again, with header already carrying any new Authorization value. Otherwise
// the guard is reset and the error to surface is returned: cause itself, the
// re-authentication error, or the context error if the wait was cancelled.
func (r *Recoverer) HandleAuthenticationError(ctx context.Context, guard *RetryGuard, cause error, header http.Header) error {
	status := msapi.StatusCode(cause)

	switch {
	case status == http.StatusUnauthorized && !guard.reAuthed && r.tokenManager != nil:
		return r.reauthenticate(ctx, guard, cause, header)
	case status == http.StatusConflict && r.policy.Enabled && guard.conflicts < r.policy.MaxRetries:
		return r.waitForConflict(ctx, guard)
	default:
		guard.Reset()

		return cause
	}
}

func (r *Recoverer) reauthenticate(ctx context.Context, guard *RetryGuard, cause error, header http.Header) error {
	guard.reAuthed = true

	err := r.tokenManager.RefreshToken(ctx)
	if err != nil {
		guard.Reset()

		if errors.Is(err, constants.ErrStaticTokenCannotRefresh) {
			return cause
		}

		return err
	}

	token, err := r.renewedToken(ctx)
	if err != nil {
		guard.Reset()

		return err
	}

	header.Set("Authorization", constants.TokenTypeBearer+" "+token)

	if r.logger != nil {
		r.logger.Info("Re-authenticated after 401 response", nil)
	}

	return nil
}

// renewedToken returns the access token the refresh just cached. GetToken is
// only consulted for managers that do not expose their cache, since it would
// exchange again for a token whose expiry cannot be decoded.
func (r *Recoverer) renewedToken(ctx context.Context) (string, error) {
	cached, ok := r.tokenManager.(interface{ CurrentToken() *Token })
	if ok {
		if token := cached.CurrentToken(); token != nil && token.AccessToken != "" {
			return token.AccessToken, nil
		}
	}

	return r.tokenManager.GetToken(ctx)
}

func (r *Recoverer) waitForConflict(ctx context.Context, guard *RetryGuard) error {
	guard.conflicts++

	if r.logger != nil {
		r.logger.Warn("Retrying after 409 conflict", map[string]interface{}{
			"attempt":     guard.conflicts,
			"max_retries": r.policy.MaxRetries,
			"delay":       r.policy.Delay.String(),
		})
	}

	timer := time.NewTimer(r.policy.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		guard.Reset()

		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
