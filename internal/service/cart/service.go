// Package cart is the server-synchronized cart store used by the storefront.
// The server owns the cart: every mutation ships the server's full response
// into the cached snapshot wholesale, and the client never computes totals
// on its own, because pricing and stock rules live server-side.
package cart

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"ebuy-client/internal/domain"
)

type Gateway interface {
	GetCart(ctx context.Context) (*domain.Cart, error)
	AddItem(ctx context.Context, productID string, quantity int) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, itemID string) (*domain.Cart, error)
	ClearCart(ctx context.Context) (*domain.Cart, error)
}

type Service struct {
	gw  Gateway
	log *log.Logger

	// opMu serializes mutations so overlapping quantity edits cannot race;
	// mu guards the snapshot fields for readers.
	opMu    sync.Mutex
	mu      sync.RWMutex
	cached  *domain.Cart
	pending bool
}

func New(gw Gateway, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{gw: gw, log: logger}
}

// Snapshot returns the last cart seen from the server. ok is false before the
// first fetch.
func (s *Service) Snapshot() (domain.Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil {
		return domain.Cart{}, false
	}
	return *s.cached, true
}

// Pending reports an in-flight mutation; UIs disable cart controls while it
// is true.
func (s *Service) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}

// Refresh fetches the authoritative cart.
func (s *Service) Refresh(ctx context.Context) (*domain.Cart, error) {
	cart, err := s.gw.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	s.replace(cart)
	return cart, nil
}

// AddItem adds quantity units of the product. The server enforces stock
// ceilings; its rejection message reaches the caller verbatim.
func (s *Service) AddItem(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	if productID == "" {
		return nil, domain.Validationf("product id required")
	}
	if quantity < 1 {
		return nil, domain.Validationf("quantity must be at least 1")
	}
	return s.mutate(ctx, func(ctx context.Context) (*domain.Cart, error) {
		return s.gw.AddItem(ctx, productID, quantity)
	})
}

// UpdateQuantity replaces a line's quantity. Quantities below 1 are rejected;
// removal only happens through RemoveItem.
func (s *Service) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*domain.Cart, error) {
	if itemID == "" {
		return nil, domain.Validationf("item id required")
	}
	if quantity < 1 {
		return nil, domain.Validationf("quantity must be at least 1")
	}
	return s.mutate(ctx, func(ctx context.Context) (*domain.Cart, error) {
		return s.gw.UpdateItemQuantity(ctx, itemID, quantity)
	})
}

// RemoveItem removes a line. Removing an already-absent item counts as
// success: the server's not-found turns into a plain refetch.
func (s *Service) RemoveItem(ctx context.Context, itemID string) (*domain.Cart, error) {
	if itemID == "" {
		return nil, domain.Validationf("item id required")
	}
	return s.mutate(ctx, func(ctx context.Context) (*domain.Cart, error) {
		cart, err := s.gw.RemoveItem(ctx, itemID)
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Printf("remove item %s: already absent", itemID)
			return s.gw.GetCart(ctx)
		}
		return cart, err
	})
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) (*domain.Cart, error) {
	return s.mutate(ctx, func(ctx context.Context) (*domain.Cart, error) {
		return s.gw.ClearCart(ctx)
	})
}

func (s *Service) mutate(ctx context.Context, call func(context.Context) (*domain.Cart, error)) (*domain.Cart, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.setPending(true)
	defer s.setPending(false)

	cart, err := call(ctx)
	if err != nil {
		// The snapshot stays as-is; the caller surfaces the error and the
		// user re-triggers the action.
		return nil, err
	}
	s.replace(cart)
	return cart, nil
}

func (s *Service) replace(cart *domain.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = cart
}

func (s *Service) setPending(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = v
}
