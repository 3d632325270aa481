// Package oauth authenticates outgoing UFTP messages against an OAuth2
// token endpoint using the client-credentials grant.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ErrAuthorization is wrapped by every failure to obtain a token.
var ErrAuthorization = errors.New("oauth: authorization failed")

// Authenticator supplies the Authorization header value for outgoing
// requests. An empty value means the request goes out unauthenticated.
type Authenticator interface {
	AuthorizationHeader(ctx context.Context) (string, error)
}

// Passthrough is the Authenticator used when no OAuth configuration is
// provided. It adds no authentication.
type Passthrough struct{}

// AuthorizationHeader implements Authenticator.
func (Passthrough) AuthorizationHeader(context.Context) (string, error) { return "", nil }

const (
	// expirationSafetyBuffer is how long before actual expiry a cached
	// token is already considered expired.
	expirationSafetyBuffer = 60 * time.Second

	// requestTimeout bounds each token request.
	requestTimeout = 30 * time.Second
)

// TokenManager obtains and caches client-credentials tokens. A cached
// token is reused until it comes within the safety buffer of its
// expiry; at most one refresh is in flight at a time.
type TokenManager struct {
	config     clientcredentials.Config
	httpClient *http.Client
	now        func() time.Time

	mu    sync.Mutex
	token *oauth2.Token
}

// TokenManagerOption configures a TokenManager.
type TokenManagerOption func(*TokenManager)

// WithHTTPClient substitutes the HTTP client used for token requests.
func WithHTTPClient(client *http.Client) TokenManagerOption {
	return func(m *TokenManager) { m.httpClient = client }
}

// NewTokenManager returns a TokenManager for the given token endpoint
// and client credentials.
func NewTokenManager(tokenURL, clientID, clientSecret string, opts ...TokenManagerOption) *TokenManager {
	m := &TokenManager{
		config: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AuthorizationHeader implements Authenticator, refreshing the cached
// token when needed.
func (m *TokenManager) AuthorizationHeader(ctx context.Context) (string, error) {
	token, err := m.currentToken(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s", token.Type(), token.AccessToken), nil
}

func (m *TokenManager) currentToken(ctx context.Context) (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != nil && m.fresh(m.token) {
		return m.token, nil
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	if m.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	}

	token, err := m.config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not obtain access token from %s: %v", ErrAuthorization, m.config.TokenURL, err)
	}
	m.token = token
	return token, nil
}

// fresh reports whether the token remains usable beyond the safety
// buffer. Tokens without an expiry never go stale.
func (m *TokenManager) fresh(token *oauth2.Token) bool {
	if token.Expiry.IsZero() {
		return true
	}
	return token.Expiry.After(m.now().Add(expirationSafetyBuffer))
}
