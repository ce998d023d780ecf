package gateway

import (
	"context"
	"net/http"
	"time"

	"ebuy-client/internal/domain"
)

type CreateOrderInput struct {
	ShippingAddress domain.Address
	PaymentMethod   string
}

type createOrderRequest struct {
	ShippingAddress AddressPayload `json:"shipping_address"`
	PaymentMethod   string         `json:"payment_method,omitempty"`
}

func (c *Client) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	return c.orderCall(ctx, http.MethodPost, "/orders/", createOrderRequest{
		ShippingAddress: AddressPayloadFrom(in.ShippingAddress),
		PaymentMethod:   in.PaymentMethod,
	})
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var payloads []OrderPayload
	if err := c.do(ctx, http.MethodGet, "/orders/", nil, &payloads); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(payloads))
	for _, p := range payloads {
		order, err := p.Order()
		if err != nil {
			return nil, &domain.NetworkError{Op: "GET /orders/", Err: err}
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return c.orderCall(ctx, http.MethodGet, "/orders/"+orderID+"/", nil)
}

// MarkOrderPaid drives the stub API's payment marker; the production payment
// flow is external to this client.
func (c *Client) MarkOrderPaid(ctx context.Context, orderID string) (*domain.Order, error) {
	return c.orderCall(ctx, http.MethodPost, "/orders/"+orderID+"/pay/", nil)
}

// ListMerchantSubOrders returns the signed-in merchant's sub-orders from paid
// orders only.
func (c *Client) ListMerchantSubOrders(ctx context.Context) ([]domain.SubOrder, error) {
	var payloads []SubOrderPayload
	if err := c.do(ctx, http.MethodGet, "/merchant/sub-orders/", nil, &payloads); err != nil {
		return nil, err
	}
	subs := make([]domain.SubOrder, 0, len(payloads))
	for _, p := range payloads {
		sub, err := p.SubOrder()
		if err != nil {
			return nil, &domain.NetworkError{Op: "GET /merchant/sub-orders/", Err: err}
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func (c *Client) AcceptSubOrder(ctx context.Context, subOrderID string) (*domain.SubOrder, error) {
	return c.subOrderCall(ctx, subOrderID, "accept", nil)
}

func (c *Client) RejectSubOrder(ctx context.Context, subOrderID string) (*domain.SubOrder, error) {
	return c.subOrderCall(ctx, subOrderID, "reject", nil)
}

type ShipmentInput struct {
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery *time.Time
}

type shipRequest struct {
	TrackingNumber    string `json:"tracking_number,omitempty"`
	Carrier           string `json:"carrier,omitempty"`
	EstimatedDelivery string `json:"estimated_delivery,omitempty"`
}

func (c *Client) ShipSubOrder(ctx context.Context, subOrderID string, in ShipmentInput) (*domain.SubOrder, error) {
	body := shipRequest{
		TrackingNumber: in.TrackingNumber,
		Carrier:        in.Carrier,
	}
	if in.EstimatedDelivery != nil {
		body.EstimatedDelivery = in.EstimatedDelivery.Format(dateOnly)
	}
	return c.subOrderCall(ctx, subOrderID, "ship", body)
}

func (c *Client) DeliverSubOrder(ctx context.Context, subOrderID string) (*domain.SubOrder, error) {
	return c.subOrderCall(ctx, subOrderID, "deliver", nil)
}

func (c *Client) orderCall(ctx context.Context, method, path string, body interface{}) (*domain.Order, error) {
	var payload OrderPayload
	if err := c.do(ctx, method, path, body, &payload); err != nil {
		return nil, err
	}
	order, err := payload.Order()
	if err != nil {
		return nil, &domain.NetworkError{Op: method + " " + path, Err: err}
	}
	return &order, nil
}

func (c *Client) subOrderCall(ctx context.Context, subOrderID, action string, body interface{}) (*domain.SubOrder, error) {
	path := "/merchant/sub-orders/" + subOrderID + "/" + action + "/"
	var payload SubOrderPayload
	if err := c.do(ctx, http.MethodPost, path, body, &payload); err != nil {
		return nil, err
	}
	sub, err := payload.SubOrder()
	if err != nil {
		return nil, &domain.NetworkError{Op: "POST " + path, Err: err}
	}
	return &sub, nil
}
