package utils

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenStore holds the bearer token issued by the backend's auth service.
// Auth itself is an external collaborator; we only keep the token and check
// its expiry so booking attempts can fail fast with an auth error instead of
// a generic network error.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewTokenStore returns a store, optionally pre-seeded with a token.
func NewTokenStore(token string) *TokenStore {
	return &TokenStore{token: token}
}

// Set replaces the stored token. An empty string clears it.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Get returns the stored token, or "" when unauthenticated.
func (s *TokenStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is present and not expired. The
// token is backend-signed, so the signature is not verified here; only the
// exp claim is read.
func (s *TokenStore) Authenticated() bool {
	tokenString := s.Get()
	if tokenString == "" {
		return false
	}
	claims := jwt.MapClaims{}
	parser := new(jwt.Parser)
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		// Opaque (non-JWT) tokens are accepted as-is; the backend decides.
		return true
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return true
	}
	return time.Now().Unix() < int64(exp)
}
