package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/internal/auth"
	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/hashicorp/go-retryablehttp"
)

const defaultUserAgent = "partnercenter-client/1.0"

// Client is the request pipeline shared by all resource clients. Each call
// gets a bearer token, is dispatched, and on failure is handed to an
// auth.Recoverer that may re-authenticate once or wait out a conflict.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	recoverer    *auth.Recoverer
	interceptors *msapi.InterceptorChain
	logger       msapi.Logger
	debug        bool
	userAgent    string

	timeout      time.Duration
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	conflict     msapi.ConflictPolicy
	baseClient   *http.Client
}

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an API response. Body is returned as received.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// NewClient creates a new pipeline rooted at baseURL. tokenManager may be nil
// for unauthenticated calls.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		userAgent:    defaultUserAgent,
		timeout:      constants.DefaultHTTPTimeout,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = client.retryMax
	retryClient.RetryWaitMin = client.retryWaitMin
	retryClient.RetryWaitMax = client.retryWaitMax
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if client.baseClient != nil {
		retryClient.HTTPClient = client.baseClient
	} else {
		retryClient.HTTPClient.Timeout = client.timeout
	}

	if client.logger != nil {
		retryClient.Logger = &leveledLogger{logger: client.logger}
		retryClient.RequestLogHook = client.logRetry
	}

	client.httpClient = retryClient
	client.recoverer = auth.NewRecoverer(tokenManager, client.conflict, client.logger)

	return client
}

// Do executes a request. Failures carry a *msapi.ResponseError for 4xx and 5xx
// statuses; the response is returned alongside the error whenever one was
// received.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	var body []byte

	if req.Body != nil {
		var err error

		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	headers := make(http.Header)
	headers.Set("Accept", "application/json")

	if body != nil {
		headers.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		headers.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	intercepted := &msapi.Request{
		Method:   req.Method,
		Path:     req.Path,
		Headers:  headers,
		Body:     body,
		Metadata: make(map[string]interface{}),
	}

	if c.interceptors != nil {
		err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
		if err != nil {
			return nil, err
		}
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting auth token: %w", err)
		}

		intercepted.Headers.Set("Authorization", constants.TokenTypeBearer+" "+token)
	}

	fullURL := c.buildURL(req.Path, req.Query)
	guard := auth.NewRetryGuard()

	for {
		resp, err := c.dispatch(ctx, fullURL, intercepted)
		if err == nil {
			return resp, nil
		}

		recoverErr := c.recoverer.HandleAuthenticationError(ctx, guard, err, intercepted.Headers)
		if recoverErr != nil {
			return resp, recoverErr
		}
	}
}

// dispatch sends one attempt and runs the response interceptors on it.
func (c *Client) dispatch(ctx context.Context, fullURL string, intercepted *msapi.Request) (*Response, error) {
	var rawBody interface{}
	if intercepted.Body != nil {
		rawBody = intercepted.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, intercepted.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = intercepted.Headers.Clone()

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": intercepted.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"size":   len(respBody),
		})
	}

	var respErr error
	if resp.StatusCode >= http.StatusBadRequest {
		respErr = msapi.ParseResponseError(resp.StatusCode, respBody)
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &msapi.Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
			Error:      respErr,
		})
		if err != nil && respErr == nil {
			return resp, err
		}
	}

	return resp, respErr
}

func (c *Client) buildURL(path string, query url.Values) string {
	fullURL := c.baseURL + "/" + strings.TrimPrefix(path, "/")

	if len(query) > 0 {
		separator := "?"
		if strings.Contains(fullURL, "?") {
			separator = "&"
		}

		// OData expects %20 rather than + between filter terms.
		fullURL += separator + strings.ReplaceAll(query.Encode(), "+", "%20")
	}

	return fullURL
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// GetRaw performs a GET request for a binary document.
func (c *Client) GetRaw(ctx context.Context, path string, accept string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:  http.MethodGet,
		Path:    path,
		Headers: map[string]string{"Accept": accept},
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPatch,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

func (c *Client) logRetry(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if attempt == 0 {
		return
	}

	c.logger.Warn("Retrying request", map[string]interface{}{
		"method":  req.Method,
		"url":     req.URL.Redacted(),
		"attempt": attempt,
	})
}
