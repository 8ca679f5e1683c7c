package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger msapi.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug logs every request and response at debug level.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig enables transport retries for 429 and 5xx responses.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax

		if waitMin > 0 {
			c.retryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.retryWaitMax = waitMax
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each HTTP exchange.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithConflictPolicy enables retries after 409 Conflict.
func WithConflictPolicy(policy msapi.ConflictPolicy) Option {
	return func(c *Client) {
		c.conflict = policy
	}
}

// WithInterceptors sets the interceptor chain.
func WithInterceptors(chain *msapi.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithHTTPClient replaces the underlying http.Client. Its timeout is used
// as-is.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.baseClient = httpClient
	}
}

// leveledLogger adapts msapi.Logger to retryablehttp.LeveledLogger. Per-attempt
// debug chatter is dropped; retries are reported by Client.logRetry.
type leveledLogger struct {
	logger msapi.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fields(keysAndValues))
}

func (l *leveledLogger) Debug(string, ...interface{}) {}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fields(keysAndValues))
}

func fields(keysAndValues []interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		result[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return result
}
