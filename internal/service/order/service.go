// Package order drives order placement for shoppers and sub-order status
// transitions for merchants. Transitions are pre-checked against the cached
// status so a console with stale buttons fails fast, but the server stays the
// final arbiter and its verdict replaces the cache.
package order

import (
	"context"
	"io"
	"log"
	"strings"
	"sync"

	"ebuy-client/internal/domain"
	"ebuy-client/internal/gateway"
)

type Gateway interface {
	CreateOrder(ctx context.Context, in gateway.CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListMerchantSubOrders(ctx context.Context) ([]domain.SubOrder, error)
	AcceptSubOrder(ctx context.Context, subOrderID string) (*domain.SubOrder, error)
	RejectSubOrder(ctx context.Context, subOrderID string) (*domain.SubOrder, error)
	ShipSubOrder(ctx context.Context, subOrderID string, in gateway.ShipmentInput) (*domain.SubOrder, error)
	DeliverSubOrder(ctx context.Context, subOrderID string) (*domain.SubOrder, error)
}

type Service struct {
	gw  Gateway
	log *log.Logger

	mu        sync.RWMutex
	subOrders map[string]domain.SubOrder
}

func New(gw Gateway, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{gw: gw, log: logger, subOrders: make(map[string]domain.SubOrder)}
}

// PlaceOrder creates an order from the current cart. The server splits it
// into one sub-order per merchant and empties the cart.
func (s *Service) PlaceOrder(ctx context.Context, address domain.Address, paymentMethod string) (*domain.Order, error) {
	if strings.TrimSpace(address.FullAddress) == "" {
		return nil, domain.Validationf("shipping address required")
	}
	if strings.TrimSpace(address.City) == "" || strings.TrimSpace(address.Country) == "" {
		return nil, domain.Validationf("shipping city and country required")
	}
	return s.gw.CreateOrder(ctx, gateway.CreateOrderInput{
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
	})
}

func (s *Service) Orders(ctx context.Context) ([]domain.Order, error) {
	return s.gw.ListOrders(ctx)
}

func (s *Service) Order(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.gw.GetOrder(ctx, orderID)
}

// RefreshSubOrders reloads the merchant's sub-orders and rebuilds the status
// cache the transition pre-checks consult.
func (s *Service) RefreshSubOrders(ctx context.Context) ([]domain.SubOrder, error) {
	subs, err := s.gw.ListMerchantSubOrders(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.subOrders = make(map[string]domain.SubOrder, len(subs))
	for _, sub := range subs {
		s.subOrders[sub.ID] = sub
	}
	s.mu.Unlock()
	return subs, nil
}

// SubOrder returns the cached sub-order.
func (s *Service) SubOrder(subOrderID string) (domain.SubOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subOrders[subOrderID]
	return sub, ok
}

// Actions lists the merchant actions currently offered for the sub-order.
// Terminal statuses yield none.
func (s *Service) Actions(subOrderID string) []domain.Action {
	sub, ok := s.SubOrder(subOrderID)
	if !ok {
		return nil
	}
	return domain.AvailableActions(sub.Status)
}

// Accept moves a pending sub-order to processing.
func (s *Service) Accept(ctx context.Context, subOrderID string) (*domain.SubOrder, error) {
	if err := s.precheck(subOrderID, domain.ActionAccept); err != nil {
		return nil, err
	}
	return s.apply(subOrderID, func() (*domain.SubOrder, error) {
		return s.gw.AcceptSubOrder(ctx, subOrderID)
	})
}

// Reject cancels a pending or processing sub-order.
func (s *Service) Reject(ctx context.Context, subOrderID string) (*domain.SubOrder, error) {
	if err := s.precheck(subOrderID, domain.ActionReject); err != nil {
		return nil, err
	}
	return s.apply(subOrderID, func() (*domain.SubOrder, error) {
		return s.gw.RejectSubOrder(ctx, subOrderID)
	})
}

// Ship moves a processing sub-order to shipped, recording tracking details.
func (s *Service) Ship(ctx context.Context, subOrderID string, in gateway.ShipmentInput) (*domain.SubOrder, error) {
	if err := s.precheck(subOrderID, domain.ActionShip); err != nil {
		return nil, err
	}
	return s.apply(subOrderID, func() (*domain.SubOrder, error) {
		return s.gw.ShipSubOrder(ctx, subOrderID, in)
	})
}

// Deliver moves a shipped sub-order to delivered.
func (s *Service) Deliver(ctx context.Context, subOrderID string) (*domain.SubOrder, error) {
	if err := s.precheck(subOrderID, domain.ActionDeliver); err != nil {
		return nil, err
	}
	return s.apply(subOrderID, func() (*domain.SubOrder, error) {
		return s.gw.DeliverSubOrder(ctx, subOrderID)
	})
}

// precheck rejects transitions that are illegal from the cached status
// without issuing a request. Unknown sub-orders pass through; the server
// decides for them.
func (s *Service) precheck(subOrderID string, action domain.Action) error {
	sub, ok := s.SubOrder(subOrderID)
	if !ok {
		return nil
	}
	if _, err := domain.Transition(sub.Status, action); err != nil {
		return err
	}
	return nil
}

// apply runs the transition call and folds the server's answer into the
// cache. On failure the cached status stays unchanged.
func (s *Service) apply(subOrderID string, call func() (*domain.SubOrder, error)) (*domain.SubOrder, error) {
	sub, err := call()
	if err != nil {
		s.log.Printf("sub-order %s transition rejected: %v", subOrderID, err)
		return nil, err
	}
	s.mu.Lock()
	s.subOrders[sub.ID] = *sub
	s.mu.Unlock()
	return sub, nil
}
