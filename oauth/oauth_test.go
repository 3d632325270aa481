package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func tokenServer(t *testing.T, requests *atomic.Int64, response tokenResponse) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		assert.Equal(t, "client-1", r.Form.Get("client_id"))
		assert.Equal(t, "hunter2", r.Form.Get("client_secret"))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAuthorizationHeader(t *testing.T) {
	var requests atomic.Int64
	server := tokenServer(t, &requests, tokenResponse{
		AccessToken: "token-abc", TokenType: "Bearer", ExpiresIn: 3600,
	})

	manager := NewTokenManager(server.URL, "client-1", "hunter2")
	header, err := manager.AuthorizationHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", header)
}

func TestTokenIsCachedWhileFresh(t *testing.T) {
	var requests atomic.Int64
	server := tokenServer(t, &requests, tokenResponse{
		AccessToken: "token-abc", TokenType: "Bearer", ExpiresIn: 3600,
	})

	manager := NewTokenManager(server.URL, "client-1", "hunter2")
	for i := 0; i < 5; i++ {
		_, err := manager.AuthorizationHeader(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), requests.Load())
}

func TestTokenRefreshesWithinSafetyBuffer(t *testing.T) {
	var requests atomic.Int64
	server := tokenServer(t, &requests, tokenResponse{
		AccessToken: "token-abc", TokenType: "Bearer", ExpiresIn: 3600,
	})

	manager := NewTokenManager(server.URL, "client-1", "hunter2")
	_, err := manager.AuthorizationHeader(context.Background())
	require.NoError(t, err)

	// Move the clock to just inside the safety buffer; the cached token
	// must no longer be considered fresh.
	manager.now = func() time.Time { return time.Now().Add(3600 * time.Second) }
	_, err = manager.AuthorizationHeader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), requests.Load())
}

func TestTokenEndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	manager := NewTokenManager(server.URL, "client-1", "hunter2")
	_, err := manager.AuthorizationHeader(context.Background())
	assert.ErrorIs(t, err, ErrAuthorization)
}

func TestPassthrough(t *testing.T) {
	header, err := Passthrough{}.AuthorizationHeader(context.Background())
	require.NoError(t, err)
	assert.Empty(t, header)
}
