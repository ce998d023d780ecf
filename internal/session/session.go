// Package session holds the current-user state shared by the cart, order and
// wishlist services. One Session instance is created at application start and
// injected into everything that needs ambient access to the signed-in user.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ebuy-client/internal/domain"
)

type Session struct {
	mu     sync.RWMutex
	token  string
	user   domain.User
	signed bool
	expiry time.Time
}

func New() *Session {
	return &Session{}
}

// SignIn stores the bearer token and user identity. The token's exp claim,
// when readable, drives Authenticated after expiry; signature verification
// stays with the server.
func (s *Session) SignIn(token string, user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	s.signed = true
	s.expiry = tokenExpiry(token)
}

func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = domain.User{}
	s.signed = false
	s.expiry = time.Time{}
}

// Authenticated reports whether a signed-in, unexpired user exists.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.signed {
		return false
	}
	if !s.expiry.IsZero() && time.Now().After(s.expiry) {
		return false
	}
	return true
}

// Token returns the bearer token, or the empty string when signed out or
// expired. The gateway uses it for the Authorization header.
func (s *Session) Token() string {
	if !s.Authenticated() {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in user identity.
func (s *Session) User() (domain.User, bool) {
	if !s.Authenticated() {
		return domain.User{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, true
}

func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
