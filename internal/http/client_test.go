package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/internal/auth"
	mshttp "github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTokenUnavailable = errors.New("token unavailable")

// MockTokenManager for testing.
type MockTokenManager struct {
	mutex     sync.Mutex
	token     string
	err       error
	refreshes int
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.token, m.err
}

func (m *MockTokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.refreshes++
	m.token = "renewed-token"

	return nil
}

func (m *MockTokenManager) Refreshes() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.refreshes
}

// MockLogger for testing.
type MockLogger struct {
	mutex sync.Mutex
	logs  []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/customers", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"totalCount": 1, "items": []map[string]string{{"id": "c1"}}})
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "test-token"}
		client := mshttp.NewClient(server.URL+"/v1/", tokenManager)

		resp, err := client.Do(context.Background(), &mshttp.Request{Method: "GET", Path: "customers"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result msapi.ItemList[msapi.Customer]

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalCount)
		assert.Equal(t, "c1", result.Items[0].ID)
	})

	t.Run("request with OData query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1.0/users", request.URL.Path)
			assert.Equal(t, "id,userPrincipalName", request.URL.Query().Get("$select"))
			assert.NotContains(t, request.URL.RawQuery, "+")
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := mshttp.NewClient(server.URL+"/v1.0", nil)

		resp, err := client.Get(context.Background(), "/users", url.Values{"$select": []string{"id,userPrincipalName"}, "$filter": []string{"a eq 'b'"}})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "contoso.com", body["domain"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := mshttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &mshttp.Request{
			Method: "POST",
			Path:   "/customers",
			Body:   map[string]string{"domain": "contoso.com"},
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("partner center error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"code":600,"description":"Customer not found","errorName":"CustomerNotFound"}`))
		}))
		defer server.Close()

		client := mshttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/customers/invalid", nil)
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		assert.True(t, msapi.IsNotFound(err))

		errResp := &msapi.ResponseError{}
		require.True(t, errors.As(err, &errResp))
		assert.Equal(t, "600", errResp.Code)
		assert.Equal(t, "Customer not found", errResp.Message)
		assert.Equal(t, "CustomerNotFound", errResp.ErrorName)
	})

	t.Run("graph error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusForbidden)
			_, _ = writer.Write([]byte(`{"error":{"code":"Authorization_RequestDenied","message":"Insufficient privileges"}}`))
		}))
		defer server.Close()

		client := mshttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "/domains", nil)
		require.Error(t, err)
		assert.True(t, msapi.IsForbidden(err))
		assert.Contains(t, err.Error(), "Authorization_RequestDenied: Insufficient privileges")
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			assert.Equal(t, "application/pdf", request.Header.Get("Accept"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := mshttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &mshttp.Request{
			Method: "GET",
			Path:   "/invoices/D01/documents/statement",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
				"Accept":          "application/pdf",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("binary body is returned unchanged", func(t *testing.T) {
		t.Parallel()

		pdf := []byte("%PDF-1.4\x00\x01binary")
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Content-Type", "application/pdf")
			_, _ = writer.Write(pdf)
		}))
		defer server.Close()

		client := mshttp.NewClient(server.URL, nil)

		resp, err := client.GetRaw(context.Background(), "/invoices/D01/documents/statement", "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, pdf, resp.Body)
	})

	t.Run("token failure stops the request", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
		}))
		defer server.Close()

		client := mshttp.NewClient(server.URL, &MockTokenManager{err: errTokenUnavailable})

		_, err := client.Get(context.Background(), "/customers", nil)
		require.ErrorIs(t, err, errTokenUnavailable)
		assert.Equal(t, int32(0), attempts.Load())
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := mshttp.NewClient(server.URL, nil, mshttp.WithLogger(logger), mshttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/customers", nil)
		require.NoError(t, err)

		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*mshttp.Client, context.Context) (*mshttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *mshttp.Client, ctx context.Context) (*mshttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *mshttp.Client, ctx context.Context) (*mshttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *mshttp.Client, ctx context.Context) (*mshttp.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *mshttp.Client, ctx context.Context) (*mshttp.Response, error) {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *mshttp.Client, ctx context.Context) (*mshttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := mshttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Recovery(t *testing.T) {
	t.Parallel()

	t.Run("401 re-authenticates once and succeeds", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) == 1 {
				assert.Equal(t, "Bearer stale-token", request.Header.Get("Authorization"))
				writer.WriteHeader(http.StatusUnauthorized)

				return
			}

			assert.Equal(t, "Bearer renewed-token", request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "stale-token"}
		client := mshttp.NewClient(server.URL, tokenManager)

		resp, err := client.Get(context.Background(), "/customers", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(2), attempts.Load())
		assert.Equal(t, 1, tokenManager.Refreshes())
	})

	t.Run("second 401 is returned", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "stale-token"}
		client := mshttp.NewClient(server.URL, tokenManager)

		resp, err := client.Get(context.Background(), "/customers", nil)
		require.Error(t, err)
		assert.True(t, msapi.IsUnauthorized(err))
		assert.Equal(t, 401, resp.StatusCode)
		assert.Equal(t, int32(2), attempts.Load())
		assert.Equal(t, 1, tokenManager.Refreshes())
	})

	t.Run("conflict retries are bounded", func(t *testing.T) {
		t.Parallel()

		var (
			attempts      atomic.Int32
			requestCalls  atomic.Int32
			responseCalls atomic.Int32
		)

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)

			body, _ := io.ReadAll(request.Body)
			assert.JSONEq(t, `{"quantity":5}`, string(body))

			writer.WriteHeader(http.StatusConflict)
		}))
		defer server.Close()

		chain := msapi.NewInterceptorChain()
		chain.AddRequestInterceptor(func(ctx context.Context, req *msapi.Request) error {
			requestCalls.Add(1)

			return nil
		})
		chain.AddResponseInterceptor(func(ctx context.Context, req *msapi.Request, resp *msapi.Response) error {
			responseCalls.Add(1)
			assert.Error(t, resp.Error)

			return nil
		})

		client := mshttp.NewClient(server.URL, nil,
			mshttp.WithConflictPolicy(msapi.ConflictPolicy{Enabled: true, MaxRetries: 2, Delay: 10 * time.Millisecond}),
			mshttp.WithInterceptors(chain),
		)

		start := time.Now()
		_, err := client.Patch(context.Background(), "/subscriptions/s1", map[string]int{"quantity": 5})
		require.Error(t, err)
		assert.True(t, msapi.IsConflict(err))
		assert.Equal(t, int32(3), attempts.Load())
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
		assert.Equal(t, int32(1), requestCalls.Load())
		assert.Equal(t, int32(3), responseCalls.Load())
	})

	t.Run("conflict without policy is not retried", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusConflict)
		}))
		defer server.Close()

		client := mshttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "/customers", nil)
		require.ErrorIs(t, err, msapi.ErrConflict)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("conflict then success", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		requestIDs := make(chan string, 2)
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestIDs <- request.Header.Get("MS-RequestId")

			if attempts.Add(1) == 1 {
				writer.WriteHeader(http.StatusConflict)

				return
			}

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		chain := msapi.NewInterceptorChain()
		chain.AddRequestInterceptor(msapi.CorrelationInterceptor("correlation"))

		client := mshttp.NewClient(server.URL, nil,
			mshttp.WithConflictPolicy(msapi.ConflictPolicy{Enabled: true, Delay: time.Millisecond}),
			mshttp.WithInterceptors(chain),
		)

		resp, err := client.Get(context.Background(), "/customers", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		first, second := <-requestIDs, <-requestIDs
		assert.NotEmpty(t, first)
		assert.Equal(t, first, second)
	})

	t.Run("401 after a conflict retry is not re-authenticated again", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		statuses := []int{http.StatusUnauthorized, http.StatusConflict, http.StatusUnauthorized, http.StatusOK}
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(statuses[attempts.Add(1)-1])
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "stale-token"}
		client := mshttp.NewClient(server.URL, tokenManager,
			mshttp.WithConflictPolicy(msapi.ConflictPolicy{Enabled: true, Delay: time.Millisecond}),
		)

		resp, err := client.Get(context.Background(), "/customers", nil)
		require.Error(t, err)
		assert.True(t, msapi.IsUnauthorized(err))
		assert.Equal(t, 401, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
		assert.Equal(t, 1, tokenManager.Refreshes())
	})

	t.Run("401 recovery sends the token it just obtained", func(t *testing.T) {
		t.Parallel()

		var (
			tokenCalls  atomic.Int32
			apiAttempts atomic.Int32
		)

		tokenServer := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			call := tokenCalls.Add(1)

			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"access_token": fmt.Sprintf("opaque-%d", call),
				"expires_in":   3600,
			})
		}))
		defer tokenServer.Close()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if apiAttempts.Add(1) == 1 {
				assert.Equal(t, "Bearer opaque-1", request.Header.Get("Authorization"))
				writer.WriteHeader(http.StatusUnauthorized)

				return
			}

			assert.Equal(t, "Bearer opaque-2", request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		tokenManager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL: tokenServer.URL,
			ClientID: "client-id",
		})
		client := mshttp.NewClient(server.URL, tokenManager)

		resp, err := client.Get(context.Background(), "/customers", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(2), apiAttempts.Load())
		assert.Equal(t, int32(2), tokenCalls.Load())
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()

	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := mshttp.NewClient(server.URL, nil, mshttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("retries on rate limiting", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) < 2 {
				writer.WriteHeader(http.StatusTooManyRequests)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := mshttp.NewClient(server.URL, nil, mshttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(2), attempts.Load())
	})

	t.Run("server errors surface without retry config", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := mshttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/test", nil)
		require.ErrorIs(t, err, msapi.ErrServerError)
		assert.Equal(t, 503, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := mshttp.NewClient(server.URL, nil, mshttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})
}
