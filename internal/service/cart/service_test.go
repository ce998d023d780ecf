package cart

import (
	"context"
	"errors"
	"testing"

	"ebuy-client/internal/domain"
)

type stubGateway struct {
	getCalls    int
	addCalls    int
	updateCalls int
	removeCalls int
	clearCalls  int

	cart *domain.Cart
	err  error

	removeErr error
}

func (s *stubGateway) GetCart(ctx context.Context) (*domain.Cart, error) {
	s.getCalls++
	return s.cart, s.err
}

func (s *stubGateway) AddItem(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	s.addCalls++
	return s.cart, s.err
}

func (s *stubGateway) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) (*domain.Cart, error) {
	s.updateCalls++
	return s.cart, s.err
}

func (s *stubGateway) RemoveItem(ctx context.Context, itemID string) (*domain.Cart, error) {
	s.removeCalls++
	if s.removeErr != nil {
		return nil, s.removeErr
	}
	return s.cart, s.err
}

func (s *stubGateway) ClearCart(ctx context.Context) (*domain.Cart, error) {
	s.clearCalls++
	return s.cart, s.err
}

func cartWith(lines ...domain.CartLine) *domain.Cart {
	return &domain.Cart{ID: "cart-1", Lines: lines}
}

func TestAddItemRejectsBadInputWithoutGatewayCall(t *testing.T) {
	gw := &stubGateway{}
	svc := New(gw, nil)

	if _, err := svc.AddItem(context.Background(), "", 1); err == nil {
		t.Fatal("expected validation error for empty product id")
	}
	if _, err := svc.AddItem(context.Background(), "p-1", 0); err == nil {
		t.Fatal("expected validation error for zero quantity")
	}
	var verr *domain.ValidationError
	_, err := svc.AddItem(context.Background(), "p-1", -2)
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if gw.addCalls != 0 {
		t.Fatalf("gateway called %d times for invalid input", gw.addCalls)
	}
}

func TestAddItemReplacesSnapshotWholesale(t *testing.T) {
	gw := &stubGateway{cart: cartWith(domain.CartLine{ID: "l-1", ProductID: "p-1", UnitPriceCents: 1000, Quantity: 2})}
	svc := New(gw, nil)

	got, err := svc.AddItem(context.Background(), "p-1", 2)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got.TotalCents() != 2000 {
		t.Fatalf("expected server total 2000, got %d", got.TotalCents())
	}

	snap, ok := svc.Snapshot()
	if !ok {
		t.Fatal("expected a cached snapshot after a mutation")
	}
	if len(snap.Lines) != 1 || snap.Lines[0].Quantity != 2 {
		t.Fatalf("snapshot does not match server response: %+v", snap.Lines)
	}
}

func TestFailedMutationKeepsSnapshot(t *testing.T) {
	gw := &stubGateway{cart: cartWith(domain.CartLine{ID: "l-1", ProductID: "p-1", UnitPriceCents: 500, Quantity: 1})}
	svc := New(gw, nil)
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	gw.err = domain.Validationf("only 1 of Widget left in stock")
	if _, err := svc.UpdateQuantity(context.Background(), "l-1", 9); err == nil {
		t.Fatal("expected stock rejection")
	}

	snap, ok := svc.Snapshot()
	if !ok || snap.Lines[0].Quantity != 1 {
		t.Fatalf("snapshot changed after failed mutation: %+v", snap)
	}
	if svc.Pending() {
		t.Fatal("pending must clear after a failed mutation")
	}
}

func TestRemoveItemAbsentCountsAsSuccess(t *testing.T) {
	gw := &stubGateway{
		cart:      cartWith(),
		removeErr: domain.ErrNotFound,
	}
	svc := New(gw, nil)

	got, err := svc.RemoveItem(context.Background(), "l-gone")
	if err != nil {
		t.Fatalf("expected not-found removal to succeed, got %v", err)
	}
	if !got.Empty() {
		t.Fatalf("expected refetched empty cart, got %+v", got)
	}
	if gw.removeCalls != 1 || gw.getCalls != 1 {
		t.Fatalf("expected remove then refetch, got remove=%d get=%d", gw.removeCalls, gw.getCalls)
	}
}

func TestUpdateQuantityNeverRemoves(t *testing.T) {
	gw := &stubGateway{}
	svc := New(gw, nil)

	if _, err := svc.UpdateQuantity(context.Background(), "l-1", 0); err == nil {
		t.Fatal("expected rejection of quantity 0")
	}
	if gw.updateCalls != 0 || gw.removeCalls != 0 {
		t.Fatal("quantity 0 must not reach the gateway")
	}
}

func TestSnapshotBeforeFirstFetch(t *testing.T) {
	svc := New(&stubGateway{}, nil)
	if _, ok := svc.Snapshot(); ok {
		t.Fatal("expected no snapshot before the first fetch")
	}
}
