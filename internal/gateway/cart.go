package gateway

import (
	"context"
	"net/http"

	"ebuy-client/internal/domain"
)

// Every cart mutation returns the server's full cart snapshot; callers
// replace their cached copy with it wholesale.

func (c *Client) GetCart(ctx context.Context) (*domain.Cart, error) {
	return c.cartCall(ctx, http.MethodGet, "/cart/", nil)
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (c *Client) AddItem(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	return c.cartCall(ctx, http.MethodPost, "/cart/add_item/", addItemRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (c *Client) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) (*domain.Cart, error) {
	return c.cartCall(ctx, http.MethodPatch, "/cart/update_item/"+itemID+"/", updateItemRequest{
		Quantity: quantity,
	})
}

func (c *Client) RemoveItem(ctx context.Context, itemID string) (*domain.Cart, error) {
	return c.cartCall(ctx, http.MethodDelete, "/cart/remove_item/"+itemID+"/", nil)
}

func (c *Client) ClearCart(ctx context.Context) (*domain.Cart, error) {
	return c.cartCall(ctx, http.MethodDelete, "/cart/clear/", nil)
}

func (c *Client) cartCall(ctx context.Context, method, path string, body interface{}) (*domain.Cart, error) {
	var payload CartPayload
	if err := c.do(ctx, method, path, body, &payload); err != nil {
		return nil, err
	}
	cart, err := payload.Cart()
	if err != nil {
		return nil, &domain.NetworkError{Op: method + " " + path, Err: err}
	}
	return &cart, nil
}
