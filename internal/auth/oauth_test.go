package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	return signed
}

func writeToken(t *testing.T, writer http.ResponseWriter, body map[string]interface{}) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(writer).Encode(body)
	assert.NoError(t, err)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestOAuth2TokenManager_GetToken(t *testing.T) {
	t.Parallel()

	t.Run("returns seeded valid token", func(t *testing.T) {
		t.Parallel()

		seeded := signedToken(t, "seeded", time.Now().Add(time.Hour))
		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:    "http://127.0.0.1:0/token",
			ClientID:    "client-id",
			AccessToken: seeded,
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, seeded, token)
	})

	t.Run("authenticates once while the token is unexpired", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		fresh := signedToken(t, "fresh", time.Now().Add(time.Hour))
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls.Add(1)
			writeToken(t, writer, map[string]interface{}{"access_token": fresh, "expires_in": 3600})
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/tenant/oauth2/v2.0/token",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
		})

		for iteration := 0; iteration < 3; iteration++ {
			token, err := manager.GetAccessToken(context.Background(), "")
			require.NoError(t, err)
			assert.Equal(t, fresh, token)
		}

		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("expired token authenticates exactly once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		fresh := signedToken(t, "fresh", time.Now().Add(time.Hour))
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls.Add(1)
			writeToken(t, writer, map[string]interface{}{"access_token": fresh, "expires_in": 3600})
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			AccessToken:  signedToken(t, "expired", time.Now().Add(-time.Minute)),
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fresh, token)
		assert.Equal(t, int32(1), calls.Load())

		token, err = manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fresh, token)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("opaque tokens are renewed on every call", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls.Add(1)
			writeToken(t, writer, map[string]interface{}{"access_token": "opaque", "expires_in": "3600"})
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL: server.URL,
			ClientID: "client-id",
		})

		_, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		_, err = manager.GetToken(context.Background())
		require.NoError(t, err)

		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("handles token request error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
			writeToken(t, writer, map[string]interface{}{
				"error":             "invalid_client",
				"error_description": "Client authentication failed",
			})
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL,
			ClientID:     "bad-client",
			ClientSecret: "bad-secret",
		})

		token, err := manager.GetToken(context.Background())
		require.Error(t, err)
		assert.Empty(t, token)
		assert.Contains(t, err.Error(), "invalid_client")
		assert.Contains(t, err.Error(), "Client authentication failed")
		require.ErrorIs(t, err, msapi.ErrAuthenticationFailed)

		authErr := &msapi.AuthenticationError{}
		require.True(t, errors.As(err, &authErr))
		assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
		assert.Equal(t, "invalid_client", authErr.Code)
	})

	t.Run("response without access token", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writeToken(t, writer, map[string]interface{}{"token_type": "Bearer"})
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{TokenURL: server.URL, ClientID: "client-id"})

		_, err := manager.GetToken(context.Background())
		require.Error(t, err)
		require.ErrorIs(t, err, msapi.ErrAuthenticationFailed)
		assert.Contains(t, err.Error(), "did not contain an access token")
	})

	t.Run("no credentials available", func(t *testing.T) {
		t.Parallel()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL: "http://example.com/oauth2/v2.0/token",
		})

		token, err := manager.GetToken(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no valid credentials available")
		assert.Empty(t, token)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestOAuth2TokenManager_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("client credentials grant form", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "/contoso.onmicrosoft.com/oauth2/v2.0/token", request.URL.Path)
			assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))

			err := request.ParseForm()
			assert.NoError(t, err)
			assert.Equal(t, "client_credentials", request.PostForm.Get("grant_type"))
			assert.Equal(t, "client-id", request.PostForm.Get("client_id"))
			assert.Equal(t, "client-secret", request.PostForm.Get("client_secret"))
			assert.Equal(t, "https://graph.microsoft.com/.default", request.PostForm.Get("scope"))
			assert.False(t, request.PostForm.Has("refresh_token"))
			assert.False(t, request.PostForm.Has("resource"))

			writeToken(t, writer, map[string]interface{}{"access_token": "client-token", "expires_in": 3599})
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/contoso.onmicrosoft.com/oauth2/v2.0/token",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			Scopes:       []string{"https://graph.microsoft.com/.default"},
		})

		token, err := manager.Authenticate(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "client-token", token.AccessToken)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.WithinDuration(t, time.Now().Add(3599*time.Second), token.ExpiresAt, 5*time.Second)
	})

	t.Run("resource is sent when set", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			err := request.ParseForm()
			assert.NoError(t, err)
			assert.Equal(t, "https://api.partnercenter.microsoft.com", request.PostForm.Get("resource"))

			writeToken(t, writer, map[string]interface{}{"access_token": "resource-token", "expires_in": "3600"})
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{TokenURL: server.URL, ClientID: "client-id"})

		token, err := manager.Authenticate(context.Background(), "https://api.partnercenter.microsoft.com")
		require.NoError(t, err)
		assert.Equal(t, "resource-token", token.AccessToken)
		assert.Equal(t, ExpiresIn(3600), token.ExpiresIn)
	})

	t.Run("refresh grant rotates the refresh token", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			count := calls.Add(1)

			err := request.ParseForm()
			assert.NoError(t, err)
			assert.Equal(t, "refresh_token", request.PostForm.Get("grant_type"))

			if count == 1 {
				assert.Equal(t, "R1", request.PostForm.Get("refresh_token"))
			} else {
				assert.Equal(t, "R2", request.PostForm.Get("refresh_token"))
			}

			writeToken(t, writer, map[string]interface{}{
				"access_token":  signedToken(t, "user", time.Now().Add(time.Hour)),
				"refresh_token": "R2",
				"expires_in":    3600,
			})
		}))
		defer server.Close()

		var (
			mutex   sync.Mutex
			rotated []string
		)

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RefreshToken: "R1",
			OnRefreshTokenRotated: func(refreshToken string) {
				mutex.Lock()
				defer mutex.Unlock()

				rotated = append(rotated, refreshToken)
			},
		})

		refreshToken, err := manager.InitializedRefreshToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "R2", refreshToken)
		assert.Equal(t, []string{"R2"}, rotated)
		assert.Equal(t, int32(1), calls.Load())

		refreshToken, err = manager.InitializedRefreshToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "R2", refreshToken)
		assert.Equal(t, int32(1), calls.Load())

		err = manager.RefreshToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("concurrent callers share one request", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		release := make(chan struct{})
		fresh := signedToken(t, "shared", time.Now().Add(time.Hour))
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls.Add(1)
			<-release
			writeToken(t, writer, map[string]interface{}{"access_token": fresh, "expires_in": 3600})
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{TokenURL: server.URL, ClientID: "client-id"})

		var waitGroup sync.WaitGroup

		results := make([]string, 8)
		for i := range results {
			waitGroup.Add(1)

			go func(index int) {
				defer waitGroup.Done()

				token, err := manager.GetToken(context.Background())
				assert.NoError(t, err)

				results[index] = token
			}(i)
		}

		time.Sleep(100 * time.Millisecond)
		close(release)
		waitGroup.Wait()

		assert.Equal(t, int32(1), calls.Load())

		for _, token := range results {
			assert.Equal(t, fresh, token)
		}
	})

	t.Run("caller deadline does not fail other callers", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		fresh := signedToken(t, "detached", time.Now().Add(time.Hour))
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			calls.Add(1)
			time.Sleep(200 * time.Millisecond)
			writeToken(t, writer, map[string]interface{}{"access_token": fresh, "expires_in": 3600})
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{TokenURL: server.URL, ClientID: "client-id"})

		shortCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		shortErr := make(chan error, 1)

		go func() {
			_, err := manager.GetToken(shortCtx)
			shortErr <- err
		}()

		time.Sleep(10 * time.Millisecond)

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fresh, token)
		require.ErrorIs(t, <-shortErr, context.DeadlineExceeded)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestOAuth2TokenManager_InitializedRefreshToken(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
		writer.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	manager := NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     server.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})

	refreshToken, err := manager.InitializedRefreshToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, refreshToken)
	assert.Equal(t, int32(0), calls.Load())
}

func TestOAuth2TokenManager_StringExpiresInScenario(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)

		err := request.ParseForm()
		assert.NoError(t, err)
		assert.Equal(t, "a", request.PostForm.Get("client_id"))
		assert.Equal(t, "b", request.PostForm.Get("client_secret"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"access_token":"T1","expires_in":"3600"}`))
	}))
	defer server.Close()

	manager := NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     server.URL,
		ClientID:     "a",
		ClientSecret: "b",
		DecodeExpiry: func(string) (time.Time, error) {
			return time.Now().Add(time.Hour), nil
		},
	})

	first, err := manager.GetToken(context.Background())
	require.NoError(t, err)

	second, err := manager.GetToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "T1", first)
	assert.Equal(t, "T1", second)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOAuth2TokenManager_SetToken(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	manual := signedToken(t, "manual", expiresAt)

	manager := NewOAuth2TokenManager(&OAuth2Config{})
	manager.SetToken(manual)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, manual, token)

	storedToken := manager.store.Get()
	assert.Equal(t, "Bearer", storedToken.TokenType)
	assert.Equal(t, expiresAt.Unix(), storedToken.ExpiresAt.Unix())
}

func TestOAuth2TokenManager_RefreshToken(t *testing.T) {
	t.Parallel()

	refreshed := signedToken(t, "refreshed", time.Now().Add(time.Hour))
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeToken(t, writer, map[string]interface{}{"access_token": refreshed, "expires_in": 3600})
	}))
	defer server.Close()

	manager := NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     server.URL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AccessToken:  signedToken(t, "current", time.Now().Add(time.Hour)),
	})

	err := manager.RefreshToken(context.Background())
	require.NoError(t, err)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, refreshed, token)
}

func TestOAuth2TokenManager_TokenSource(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	seeded := signedToken(t, "seeded", expiresAt)

	manager := NewOAuth2TokenManager(&OAuth2Config{ClientID: "client-id", AccessToken: seeded})

	token, err := manager.TokenSource(context.Background()).Token()
	require.NoError(t, err)
	assert.Equal(t, seeded, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, expiresAt.Unix(), token.Expiry.Unix())
	assert.True(t, token.Valid())
}
