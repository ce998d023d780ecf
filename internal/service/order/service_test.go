package order

import (
	"context"
	"errors"
	"testing"

	"ebuy-client/internal/domain"
	"ebuy-client/internal/gateway"
)

type stubGateway struct {
	subs []domain.SubOrder

	acceptCalls  int
	rejectCalls  int
	shipCalls    int
	deliverCalls int

	next *domain.SubOrder
	err  error

	lastShipment gateway.ShipmentInput
}

func (s *stubGateway) CreateOrder(ctx context.Context, in gateway.CreateOrderInput) (*domain.Order, error) {
	return &domain.Order{ID: "ord-1", ShippingAddress: in.ShippingAddress}, nil
}

func (s *stubGateway) ListOrders(ctx context.Context) ([]domain.Order, error) { return nil, nil }

func (s *stubGateway) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

func (s *stubGateway) ListMerchantSubOrders(ctx context.Context) ([]domain.SubOrder, error) {
	return s.subs, nil
}

func (s *stubGateway) AcceptSubOrder(ctx context.Context, subOrderID string) (*domain.SubOrder, error) {
	s.acceptCalls++
	return s.next, s.err
}

func (s *stubGateway) RejectSubOrder(ctx context.Context, subOrderID string) (*domain.SubOrder, error) {
	s.rejectCalls++
	return s.next, s.err
}

func (s *stubGateway) ShipSubOrder(ctx context.Context, subOrderID string, in gateway.ShipmentInput) (*domain.SubOrder, error) {
	s.shipCalls++
	s.lastShipment = in
	return s.next, s.err
}

func (s *stubGateway) DeliverSubOrder(ctx context.Context, subOrderID string) (*domain.SubOrder, error) {
	s.deliverCalls++
	return s.next, s.err
}

func seeded(status domain.Status) (*Service, *stubGateway) {
	gw := &stubGateway{subs: []domain.SubOrder{{ID: "sub-1", Status: status}}}
	svc := New(gw, nil)
	if _, err := svc.RefreshSubOrders(context.Background()); err != nil {
		panic(err)
	}
	return svc, gw
}

func TestAcceptThenShipThenDeliver(t *testing.T) {
	svc, gw := seeded(domain.StatusPending)

	gw.next = &domain.SubOrder{ID: "sub-1", Status: domain.StatusProcessing}
	sub, err := svc.Accept(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if sub.Status != domain.StatusProcessing {
		t.Fatalf("expected processing, got %s", sub.Status)
	}

	gw.next = &domain.SubOrder{ID: "sub-1", Status: domain.StatusShipped, TrackingNumber: "TRK-1"}
	sub, err = svc.Ship(context.Background(), "sub-1", gateway.ShipmentInput{TrackingNumber: "TRK-1", Carrier: "UPS"})
	if err != nil {
		t.Fatalf("Ship: %v", err)
	}
	if sub.Status != domain.StatusShipped {
		t.Fatalf("expected shipped, got %s", sub.Status)
	}
	if gw.lastShipment.Carrier != "UPS" {
		t.Fatalf("shipment details not forwarded: %+v", gw.lastShipment)
	}

	gw.next = &domain.SubOrder{ID: "sub-1", Status: domain.StatusDelivered}
	sub, err = svc.Deliver(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if sub.Status != domain.StatusDelivered {
		t.Fatalf("expected delivered, got %s", sub.Status)
	}
}

func TestIllegalTransitionFailsFastWithoutRequest(t *testing.T) {
	svc, gw := seeded(domain.StatusShipped)

	var terr *domain.TransitionError
	if _, err := svc.Accept(context.Background(), "sub-1"); !errors.As(err, &terr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), "sub-1"); !errors.As(err, &terr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if gw.acceptCalls != 0 || gw.rejectCalls != 0 {
		t.Fatalf("illegal transitions must not reach the gateway: accept=%d reject=%d", gw.acceptCalls, gw.rejectCalls)
	}

	sub, _ := svc.SubOrder("sub-1")
	if sub.Status != domain.StatusShipped {
		t.Fatalf("cached status changed on failure: %s", sub.Status)
	}
}

func TestServerRejectionLeavesCacheUnchanged(t *testing.T) {
	svc, gw := seeded(domain.StatusPending)
	gw.err = &domain.TransitionError{Current: domain.StatusCancelled, Action: domain.ActionAccept}

	if _, err := svc.Accept(context.Background(), "sub-1"); err == nil {
		t.Fatal("expected server rejection to surface")
	}
	sub, _ := svc.SubOrder("sub-1")
	if sub.Status != domain.StatusPending {
		t.Fatalf("cache must keep the last known status, got %s", sub.Status)
	}
}

func TestUnknownSubOrderPassesThrough(t *testing.T) {
	svc, gw := seeded(domain.StatusPending)
	gw.next = &domain.SubOrder{ID: "sub-9", Status: domain.StatusProcessing}

	if _, err := svc.Accept(context.Background(), "sub-9"); err != nil {
		t.Fatalf("unknown sub-order must defer to the server: %v", err)
	}
	if gw.acceptCalls != 1 {
		t.Fatalf("expected one gateway call, got %d", gw.acceptCalls)
	}
	if sub, ok := svc.SubOrder("sub-9"); !ok || sub.Status != domain.StatusProcessing {
		t.Fatalf("server verdict not folded into the cache: %+v ok=%v", sub, ok)
	}
}

func TestActionsFollowStatus(t *testing.T) {
	svc, _ := seeded(domain.StatusProcessing)
	got := svc.Actions("sub-1")
	want := []domain.Action{domain.ActionShip, domain.ActionReject}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if svc.Actions("sub-unknown") != nil {
		t.Fatal("unknown sub-orders offer no actions")
	}
}

func TestPlaceOrderValidatesAddress(t *testing.T) {
	svc := New(&stubGateway{}, nil)

	if _, err := svc.PlaceOrder(context.Background(), domain.Address{}, "card"); err == nil {
		t.Fatal("expected rejection of empty address")
	}
	addr := domain.Address{FullAddress: "1 Main St", City: "Springfield", Country: "US"}
	order, err := svc.PlaceOrder(context.Background(), addr, "card")
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if order.ShippingAddress.City != "Springfield" {
		t.Fatalf("address not forwarded: %+v", order.ShippingAddress)
	}
}
