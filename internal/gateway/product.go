package gateway

import (
	"context"
	"net/http"

	"ebuy-client/internal/domain"
)

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var payloads []ProductPayload
	if err := c.do(ctx, http.MethodGet, "/products/", nil, &payloads); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(payloads))
	for _, p := range payloads {
		product, err := p.Product()
		if err != nil {
			return nil, &domain.NetworkError{Op: "GET /products/", Err: err}
		}
		products = append(products, product)
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	path := "/products/" + productID + "/"
	var payload ProductPayload
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	product, err := payload.Product()
	if err != nil {
		return nil, &domain.NetworkError{Op: "GET " + path, Err: err}
	}
	return &product, nil
}

func (c *Client) GetWishlist(ctx context.Context, productID string) (*domain.WishlistState, error) {
	return c.wishlistCall(ctx, http.MethodGet, productID)
}

// ToggleWishlist flips the signed-in user's flag for the product and returns
// the server's new {liked, likes_count} pair.
func (c *Client) ToggleWishlist(ctx context.Context, productID string) (*domain.WishlistState, error) {
	return c.wishlistCall(ctx, http.MethodPost, productID)
}

func (c *Client) wishlistCall(ctx context.Context, method, productID string) (*domain.WishlistState, error) {
	var payload WishlistPayload
	if err := c.do(ctx, method, "/products/"+productID+"/wishlist/", nil, &payload); err != nil {
		return nil, err
	}
	state := payload.State()
	return &state, nil
}
