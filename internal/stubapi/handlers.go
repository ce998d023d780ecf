package stubapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ebuy-client/internal/domain"
	"ebuy-client/internal/gateway"
)

// Responses are rendered through the gateway's wire payloads so the stub
// speaks exactly the dialect the client decodes.

func writeError(c *gin.Context, err error) {
	var validation *domain.ValidationError
	var transition *domain.TransitionError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
	case errors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": transition.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type loginBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(store *Store, tokens *tokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body loginBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}
		user, ok := store.Authenticate(body.Email, body.Password)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		token, err := tokens.Issue(user)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  gateway.UserPayloadFrom(user),
		})
	}
}

func listProductsHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := store.Products()
		payloads := make([]gateway.ProductPayload, 0, len(products))
		for _, p := range products {
			payloads = append(payloads, gateway.ProductPayloadFrom(p))
		}
		c.JSON(http.StatusOK, payloads)
	}
}

func getProductHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := store.Product(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gateway.ProductPayloadFrom(product))
	}
}

func wishlistStateHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := store.WishlistState(currentUser(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"liked": state.Liked, "likes_count": state.LikesCount})
	}
}

func toggleWishlistHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := store.ToggleWishlist(currentUser(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"liked": state.Liked, "likes_count": state.LikesCount})
	}
}

func getCartHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gateway.CartPayloadFrom(store.Cart(currentUser(c).ID)))
	}
}

type addItemBody struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func addCartItemHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body addItemBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id required"})
			return
		}
		if body.Quantity == 0 {
			body.Quantity = 1
		}
		cart, err := store.AddCartItem(currentUser(c).ID, body.ProductID, body.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gateway.CartPayloadFrom(cart))
	}
}

type updateItemBody struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body updateItemBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		cart, err := store.UpdateCartItem(currentUser(c).ID, c.Param("itemID"), body.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gateway.CartPayloadFrom(cart))
	}
}

func removeCartItemHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := store.RemoveCartItem(currentUser(c).ID, c.Param("itemID"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gateway.CartPayloadFrom(cart))
	}
}

func clearCartHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gateway.CartPayloadFrom(store.ClearCart(currentUser(c).ID)))
	}
}

type createOrderBody struct {
	ShippingAddress gateway.AddressPayload `json:"shipping_address" binding:"required"`
	PaymentMethod   string                 `json:"payment_method"`
}

func createOrderHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body createOrderBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "shipping_address required"})
			return
		}
		order, err := store.PlaceOrder(currentUser(c).ID, body.ShippingAddress.Address(), body.PaymentMethod)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gateway.OrderPayloadFrom(order))
	}
}

func listOrdersHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders := store.OrdersFor(currentUser(c).ID)
		payloads := make([]gateway.OrderPayload, 0, len(orders))
		for _, o := range orders {
			payloads = append(payloads, gateway.OrderPayloadFrom(o))
		}
		c.JSON(http.StatusOK, payloads)
	}
}

func getOrderHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := store.OrderFor(currentUser(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gateway.OrderPayloadFrom(order))
	}
}

func payOrderHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := store.MarkPaid(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gateway.OrderPayloadFrom(order))
	}
}

func listSubOrdersHandler(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		subs := store.MerchantSubOrders(currentUser(c).MerchantID)
		payloads := make([]gateway.SubOrderPayload, 0, len(subs))
		for _, sub := range subs {
			payloads = append(payloads, gateway.SubOrderPayloadFrom(sub))
		}
		c.JSON(http.StatusOK, payloads)
	}
}

type shipBody struct {
	TrackingNumber    string `json:"tracking_number"`
	Carrier           string `json:"carrier"`
	EstimatedDelivery string `json:"estimated_delivery"`
}

func transitionHandler(store *Store, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipment shipmentDetails
		if action == "ship" {
			var body shipBody
			// The shipment body is optional; tracking details may be
			// attached later through the console.
			if err := c.ShouldBindJSON(&body); err == nil {
				shipment.trackingNumber = body.TrackingNumber
				shipment.carrier = body.Carrier
				if body.EstimatedDelivery != "" {
					eta, err := time.Parse("2006-01-02", body.EstimatedDelivery)
					if err != nil {
						c.JSON(http.StatusBadRequest, gin.H{"error": "estimated_delivery must be YYYY-MM-DD"})
						return
					}
					shipment.estimatedDelivery = &eta
				}
			}
		}
		sub, err := store.TransitionSubOrder(currentUser(c).MerchantID, c.Param("id"), domain.Action(action), shipment)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gateway.SubOrderPayloadFrom(sub))
	}
}
