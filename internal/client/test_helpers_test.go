package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/fivetwenty-io/partnercenter-client/internal/http"
)

// Test static errors.
var (
	ErrTestSomeError = errors.New("some error")
)

// newTestHTTPClient starts a server for handler and returns an
// unauthenticated pipeline pointed at it.
func newTestHTTPClient(t *testing.T, handler http.HandlerFunc) *internalhttp.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return internalhttp.NewClient(server.URL, nil)
}

// writeJSON writes body as a JSON response.
func writeJSON(t *testing.T, writer http.ResponseWriter, statusCode int, body interface{}) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)

	if body != nil {
		assert.NoError(t, json.NewEncoder(writer).Encode(body))
	}
}

// readJSON decodes the request body into a generic map.
func readJSON(t *testing.T, request *http.Request) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(request.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	return body
}

// items wraps values in a Partner Center collection envelope.
func items(values ...interface{}) map[string]interface{} {
	return map[string]interface{}{
		"totalCount": len(values),
		"items":      values,
	}
}

// odata wraps values in a Graph collection envelope.
func odata(values ...interface{}) map[string]interface{} {
	return map[string]interface{}{
		"@odata.context": "https://graph.microsoft.com/v1.0/$metadata",
		"value":          values,
	}
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	ErrMessage   string
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*internalhttp.Client) func(context.Context, string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			httpClient := newTestHTTPClient(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodGet, request.Method)
				writeJSON(t, writer, testCase.StatusCode, testCase.Response)
			})

			result, err := getFunc(httpClient)(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
			}
		})
	}
}
