// Package wishlist toggles the per-product like flag. The toggle requires a
// signed-in user and short-circuits before any network call when there is
// none; successful toggles replace the cached {liked, likes_count} pair with
// the server's answer instead of incrementing locally, so the displayed count
// never drifts from the server's.
package wishlist

import (
	"context"
	"sync"

	"ebuy-client/internal/domain"
)

type Gateway interface {
	GetWishlist(ctx context.Context, productID string) (*domain.WishlistState, error)
	ToggleWishlist(ctx context.Context, productID string) (*domain.WishlistState, error)
}

// Authenticator reports whether a signed-in user exists. A *session.Session
// satisfies it.
type Authenticator interface {
	Authenticated() bool
}

type Service struct {
	gw   Gateway
	auth Authenticator

	mu     sync.RWMutex
	states map[string]domain.WishlistState
}

func New(gw Gateway, auth Authenticator) *Service {
	return &Service{gw: gw, auth: auth, states: make(map[string]domain.WishlistState)}
}

// State returns the cached pair for the product, fetching it on first use.
func (s *Service) State(ctx context.Context, productID string) (domain.WishlistState, error) {
	s.mu.RLock()
	state, ok := s.states[productID]
	s.mu.RUnlock()
	if ok {
		return state, nil
	}
	fetched, err := s.gw.GetWishlist(ctx, productID)
	if err != nil {
		return domain.WishlistState{}, err
	}
	s.store(productID, *fetched)
	return *fetched, nil
}

// Toggle flips the flag for the signed-in user. Without one it fails with
// ErrAuthRequired before any request is sent. On failure the previous pair
// stays cached.
func (s *Service) Toggle(ctx context.Context, productID string) (domain.WishlistState, error) {
	if s.auth == nil || !s.auth.Authenticated() {
		return domain.WishlistState{}, domain.ErrAuthRequired
	}
	state, err := s.gw.ToggleWishlist(ctx, productID)
	if err != nil {
		return domain.WishlistState{}, err
	}
	s.store(productID, *state)
	return *state, nil
}

func (s *Service) store(productID string, state domain.WishlistState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[productID] = state
}
