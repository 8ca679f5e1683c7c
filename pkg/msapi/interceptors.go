package msapi

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/google/uuid"
)

// Request represents an HTTP request that can be intercepted.
type Request struct {
	Method   string
	Path     string
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// Response represents an HTTP response that can be intercepted.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called once per call, before the first attempt is sent.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after every attempt, including retries.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	mutex                sync.RWMutex
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	c.mutex.RLock()
	interceptors := c.requestInterceptors
	c.mutex.RUnlock()

	for _, interceptor := range interceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	c.mutex.RLock()
	interceptors := c.responseInterceptors
	c.mutex.RUnlock()

	for _, interceptor := range interceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// Common Interceptors

// LoggingInterceptor logs requests.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses. It runs once per attempt, so a
// 401 or 409 that the client may still recover from is logged at warn level;
// other failures are logged as errors.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		}

		switch {
		case resp.Error != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusConflict):
			fields["error"] = resp.Error.Error()
			logger.Warn("API Response Retryable", fields)
		case resp.Error != nil:
			fields["error"] = resp.Error.Error()
			logger.Error("API Response Error", fields)
		default:
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// HeaderInterceptor adds custom headers to requests.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// CorrelationInterceptor tags every call with a fresh MS-RequestId and a
// fixed MS-CorrelationId, which Partner Center support uses to trace calls.
// An empty correlationID generates one for the lifetime of the interceptor.
// Headers already present on the request are left alone.
func CorrelationInterceptor(correlationID string) RequestInterceptor {
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		if req.Headers.Get(constants.HeaderRequestID) == "" {
			req.Headers.Set(constants.HeaderRequestID, uuid.NewString())
		}

		if req.Headers.Get(constants.HeaderCorrelationID) == "" {
			req.Headers.Set(constants.HeaderCorrelationID, correlationID)
		}

		return nil
	}
}
