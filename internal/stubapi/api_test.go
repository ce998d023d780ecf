package stubapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ebuy-client/internal/domain"
)

func newTestHandler(t *testing.T) (http.Handler, *Store) {
	t.Helper()
	store := NewStore()
	store.AddUser(domain.User{ID: "user-shopper", Email: "shopper@example.com", Name: "Shopper"}, "pw")
	store.AddUser(domain.User{ID: "user-gadgets", Email: "gadgets@example.com", Name: "Gadgets", MerchantID: "merch-gadgets"}, "pw")
	store.AddUser(domain.User{ID: "user-threads", Email: "threads@example.com", Name: "Threads", MerchantID: "merch-threads"}, "pw")
	store.AddProduct(domain.Product{ID: "prod-headphones", MerchantID: "merch-gadgets", Name: "Headphones", Stock: 3, OriginalPriceCents: 12999, SalePriceCents: 9999, OnSale: true, LikesCount: 3, Active: true})
	store.AddProduct(domain.Product{ID: "prod-tee", MerchantID: "merch-threads", Name: "Tee", Stock: 25, OriginalPriceCents: 1999, Active: true})
	store.AddProduct(domain.Product{ID: "prod-hoodie", MerchantID: "merch-threads", Name: "Hoodie", Stock: 0, OriginalPriceCents: 5499, Active: true})

	logger := log.New(io.Discard, "", 0)
	return Handler(logger, store, Options{JWTSecret: "test-secret", TokenTTL: time.Hour}), store
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := doRaw(t, h, method, path, token, body)
	if len(raw) == 0 {
		return status, nil
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode %s %s response: %v (%s)", method, path, err, raw)
	}
	return status, decoded
}

func doList(t *testing.T, h http.Handler, method, path, token string) (int, []map[string]any) {
	t.Helper()
	status, raw := doRaw(t, h, method, path, token, nil)
	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode %s %s response: %v (%s)", method, path, err, raw)
	}
	return status, decoded
}

func doRaw(t *testing.T, h http.Handler, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

func login(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	status, resp := doJSON(t, h, http.MethodPost, "/auth/login/", "", map[string]string{"email": email, "password": "pw"})
	if status != http.StatusOK {
		t.Fatalf("login %s: status %d (%v)", email, status, resp)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("login %s: no token in %v", email, resp)
	}
	return token
}

func TestLogin(t *testing.T) {
	h, _ := newTestHandler(t)

	status, resp := doJSON(t, h, http.MethodPost, "/auth/login/", "", map[string]string{"email": "shopper@example.com", "password": "wrong"})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d (%v)", status, resp)
	}

	status, resp = doJSON(t, h, http.MethodPost, "/auth/login/", "", map[string]string{"email": "shopper@example.com", "password": "pw"})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, resp)
	}
	user, _ := resp["user"].(map[string]any)
	if user["email"] != "shopper@example.com" {
		t.Fatalf("unexpected user payload %v", user)
	}
}

func TestAuthRequired(t *testing.T) {
	h, _ := newTestHandler(t)

	status, _ := doJSON(t, h, http.MethodGet, "/cart/", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}

	status, _ = doJSON(t, h, http.MethodGet, "/cart/", "garbage-token", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", status)
	}
}

func TestMerchantEndpointsRejectShoppers(t *testing.T) {
	h, _ := newTestHandler(t)
	token := login(t, h, "shopper@example.com")

	status, resp := doJSON(t, h, http.MethodGet, "/merchant/sub-orders/", token, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for a shopper, got %d (%v)", status, resp)
	}
}

func TestCartFlow(t *testing.T) {
	h, _ := newTestHandler(t)
	token := login(t, h, "shopper@example.com")

	status, cart := doJSON(t, h, http.MethodPost, "/cart/add_item/", token, map[string]any{"product_id": "prod-headphones", "quantity": 2})
	if status != http.StatusCreated {
		t.Fatalf("add: expected 201, got %d (%v)", status, cart)
	}
	if cart["cart_total"] != "199.98" || cart["total_quantity"] != float64(2) {
		t.Fatalf("unexpected totals: %v", cart)
	}

	// Same product again folds into the existing line.
	status, cart = doJSON(t, h, http.MethodPost, "/cart/add_item/", token, map[string]any{"product_id": "prod-headphones", "quantity": 1})
	if status != http.StatusCreated {
		t.Fatalf("add again: expected 201, got %d (%v)", status, cart)
	}
	items := cart["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected a single line, got %d", len(items))
	}

	// Stock is 3; a fourth unit must be rejected with the stock message.
	status, resp := doJSON(t, h, http.MethodPost, "/cart/add_item/", token, map[string]any{"product_id": "prod-headphones", "quantity": 1})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 over stock, got %d (%v)", status, resp)
	}
	if resp["error"] != "only 3 of Headphones left in stock" {
		t.Fatalf("unexpected error message %v", resp["error"])
	}

	status, resp = doJSON(t, h, http.MethodPost, "/cart/add_item/", token, map[string]any{"product_id": "prod-hoodie"})
	if status != http.StatusBadRequest || resp["error"] != "Hoodie is out of stock" {
		t.Fatalf("expected out-of-stock rejection, got %d (%v)", status, resp)
	}

	itemID := items[0].(map[string]any)["id"].(string)
	status, cart = doJSON(t, h, http.MethodPatch, "/cart/update_item/"+itemID+"/", token, map[string]any{"quantity": 1})
	if status != http.StatusOK || cart["total_quantity"] != float64(1) {
		t.Fatalf("update: got %d (%v)", status, cart)
	}

	status, resp = doJSON(t, h, http.MethodPatch, "/cart/update_item/"+itemID+"/", token, map[string]any{"quantity": 0})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for quantity 0, got %d (%v)", status, resp)
	}

	status, cart = doJSON(t, h, http.MethodDelete, "/cart/remove_item/"+itemID+"/", token, nil)
	if status != http.StatusOK || len(cart["items"].([]any)) != 0 {
		t.Fatalf("remove: got %d (%v)", status, cart)
	}

	status, _ = doJSON(t, h, http.MethodDelete, "/cart/remove_item/"+itemID+"/", token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 removing an absent line, got %d", status)
	}
}

func TestOrderLifecycle(t *testing.T) {
	h, _ := newTestHandler(t)
	shopper := login(t, h, "shopper@example.com")
	gadgets := login(t, h, "gadgets@example.com")
	threads := login(t, h, "threads@example.com")

	doJSON(t, h, http.MethodPost, "/cart/add_item/", shopper, map[string]any{"product_id": "prod-headphones", "quantity": 1})
	doJSON(t, h, http.MethodPost, "/cart/add_item/", shopper, map[string]any{"product_id": "prod-tee", "quantity": 2})

	status, order := doJSON(t, h, http.MethodPost, "/orders/", shopper, map[string]any{
		"shipping_address": map[string]string{"full_address": "1 Main St", "city": "Springfield", "country": "US"},
		"payment_method":   "card",
	})
	if status != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d (%v)", status, order)
	}
	subs := order["sub_orders"].([]any)
	if len(subs) != 2 {
		t.Fatalf("expected one sub-order per merchant, got %d", len(subs))
	}
	if order["total_amount"] != "139.97" {
		t.Fatalf("unexpected order total %v", order["total_amount"])
	}

	// Placing the order empties the cart.
	status, cart := doJSON(t, h, http.MethodGet, "/cart/", shopper, nil)
	if status != http.StatusOK || len(cart["items"].([]any)) != 0 {
		t.Fatalf("cart not emptied: %d (%v)", status, cart)
	}

	// Unpaid orders stay invisible to merchants.
	status, list := doList(t, h, http.MethodGet, "/merchant/sub-orders/", gadgets)
	if status != http.StatusOK || len(list) != 0 {
		t.Fatalf("unpaid order leaked to merchant: %d (%v)", status, list)
	}

	orderID := order["id"].(string)
	status, paid := doJSON(t, h, http.MethodPost, "/orders/"+orderID+"/pay/", shopper, nil)
	if status != http.StatusOK {
		t.Fatalf("pay: got %d (%v)", status, paid)
	}
	payment := paid["payment"].(map[string]any)
	if payment["payment_status"] != "paid" {
		t.Fatalf("unexpected payment %v", payment)
	}

	// Each merchant now sees exactly their own sub-order.
	status, list = doList(t, h, http.MethodGet, "/merchant/sub-orders/", gadgets)
	if status != http.StatusOK || len(list) != 1 {
		t.Fatalf("gadgets sub-orders: %d (%v)", status, list)
	}
	gadgetsSub := list[0]["id"].(string)
	if list[0]["subtotal"] != "99.99" {
		t.Fatalf("unexpected subtotal %v", list[0]["subtotal"])
	}

	_, list = doList(t, h, http.MethodGet, "/merchant/sub-orders/", threads)
	if len(list) != 1 {
		t.Fatalf("threads sub-orders: %v", list)
	}
	threadsSub := list[0]["id"].(string)

	// Ship before accept is illegal.
	status, resp := doJSON(t, h, http.MethodPost, "/merchant/sub-orders/"+gadgetsSub+"/ship/", gadgets, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 shipping a pending sub-order, got %d (%v)", status, resp)
	}

	status, sub := doJSON(t, h, http.MethodPost, "/merchant/sub-orders/"+gadgetsSub+"/accept/", gadgets, nil)
	if status != http.StatusOK || sub["status"] != "processing" {
		t.Fatalf("accept: %d (%v)", status, sub)
	}

	status, sub = doJSON(t, h, http.MethodPost, "/merchant/sub-orders/"+gadgetsSub+"/ship/", gadgets, map[string]any{
		"tracking_number": "TRK-1", "carrier": "UPS", "estimated_delivery": "2026-09-04",
	})
	if status != http.StatusOK || sub["status"] != "shipped" {
		t.Fatalf("ship: %d (%v)", status, sub)
	}
	if sub["tracking_number"] != "TRK-1" || sub["estimated_delivery"] != "2026-09-04" {
		t.Fatalf("tracking details missing: %v", sub)
	}

	status, sub = doJSON(t, h, http.MethodPost, "/merchant/sub-orders/"+gadgetsSub+"/deliver/", gadgets, nil)
	if status != http.StatusOK || sub["status"] != "delivered" {
		t.Fatalf("deliver: %d (%v)", status, sub)
	}

	// Delivered is terminal.
	status, _ = doJSON(t, h, http.MethodPost, "/merchant/sub-orders/"+gadgetsSub+"/reject/", gadgets, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 rejecting a delivered sub-order, got %d", status)
	}

	// A merchant cannot transition another merchant's sub-order.
	status, _ = doJSON(t, h, http.MethodPost, "/merchant/sub-orders/"+threadsSub+"/accept/", gadgets, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for a foreign sub-order, got %d", status)
	}

	status, _ = doJSON(t, h, http.MethodPost, "/merchant/sub-orders/"+threadsSub+"/reject/", threads, nil)
	if status != http.StatusOK {
		t.Fatalf("reject: got %d", status)
	}
}

func TestOrdersScopedToUser(t *testing.T) {
	h, _ := newTestHandler(t)
	shopper := login(t, h, "shopper@example.com")
	other := login(t, h, "gadgets@example.com")

	doJSON(t, h, http.MethodPost, "/cart/add_item/", shopper, map[string]any{"product_id": "prod-tee", "quantity": 1})
	_, order := doJSON(t, h, http.MethodPost, "/orders/", shopper, map[string]any{
		"shipping_address": map[string]string{"full_address": "1 Main St", "city": "Springfield", "country": "US"},
	})
	orderID := order["id"].(string)

	status, _ := doJSON(t, h, http.MethodGet, fmt.Sprintf("/orders/%s/", orderID), other, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's order, got %d", status)
	}

	status, list := doList(t, h, http.MethodGet, "/orders/", shopper)
	if status != http.StatusOK || len(list) != 1 {
		t.Fatalf("expected the shopper's single order, got %d (%v)", status, list)
	}
}

func TestEmptyCartCannotOrder(t *testing.T) {
	h, _ := newTestHandler(t)
	token := login(t, h, "shopper@example.com")

	status, resp := doJSON(t, h, http.MethodPost, "/orders/", token, map[string]any{
		"shipping_address": map[string]string{"full_address": "1 Main St", "city": "Springfield", "country": "US"},
	})
	if status != http.StatusBadRequest || resp["error"] != "cart is empty" {
		t.Fatalf("expected empty-cart rejection, got %d (%v)", status, resp)
	}
}

func TestWishlistToggle(t *testing.T) {
	h, _ := newTestHandler(t)
	token := login(t, h, "shopper@example.com")

	status, state := doJSON(t, h, http.MethodGet, "/products/prod-headphones/wishlist/", token, nil)
	if status != http.StatusOK || state["liked"] != false || state["likes_count"] != float64(3) {
		t.Fatalf("initial state: %d (%v)", status, state)
	}

	status, state = doJSON(t, h, http.MethodPost, "/products/prod-headphones/wishlist/", token, nil)
	if status != http.StatusOK || state["liked"] != true || state["likes_count"] != float64(4) {
		t.Fatalf("toggle on: %d (%v)", status, state)
	}

	status, state = doJSON(t, h, http.MethodPost, "/products/prod-headphones/wishlist/", token, nil)
	if status != http.StatusOK || state["liked"] != false || state["likes_count"] != float64(3) {
		t.Fatalf("toggle off: %d (%v)", status, state)
	}

	status, _ = doJSON(t, h, http.MethodPost, "/products/prod-missing/wishlist/", token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for a missing product, got %d", status)
	}
}

func TestProductsArePublic(t *testing.T) {
	h, _ := newTestHandler(t)

	status, list := doList(t, h, http.MethodGet, "/products/", "")
	if status != http.StatusOK || len(list) != 3 {
		t.Fatalf("list products: %d (%v)", status, list)
	}
	if list[0]["sale_price"] != "99.99" || list[0]["original_price"] != "129.99" {
		t.Fatalf("unexpected pricing payload %v", list[0])
	}

	status, product := doJSON(t, h, http.MethodGet, "/products/prod-tee/", "", nil)
	if status != http.StatusOK || product["name"] != "Tee" {
		t.Fatalf("get product: %d (%v)", status, product)
	}
}
