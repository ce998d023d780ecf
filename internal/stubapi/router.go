package stubapi

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// buildRouter wires the stub's routes. The paths and payloads mirror the
// production API contract the gateway package consumes.
func buildRouter(logger *log.Logger, store *Store, tokens *tokenManager, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/auth/login/", loginHandler(store, tokens))

	router.GET("/products/", listProductsHandler(store))
	router.GET("/products/:id/", getProductHandler(store))

	authed := router.Group("/", authRequired(tokens))
	{
		authed.GET("/products/:id/wishlist/", wishlistStateHandler(store))
		authed.POST("/products/:id/wishlist/", toggleWishlistHandler(store))

		authed.GET("/cart/", getCartHandler(store))
		authed.POST("/cart/add_item/", addCartItemHandler(store))
		authed.PATCH("/cart/update_item/:itemID/", updateCartItemHandler(store))
		authed.DELETE("/cart/remove_item/:itemID/", removeCartItemHandler(store))
		authed.DELETE("/cart/clear/", clearCartHandler(store))

		authed.POST("/orders/", createOrderHandler(store))
		authed.GET("/orders/", listOrdersHandler(store))
		authed.GET("/orders/:id/", getOrderHandler(store))
		authed.POST("/orders/:id/pay/", payOrderHandler(store))
	}

	merchant := router.Group("/merchant", authRequired(tokens), merchantRequired())
	{
		merchant.GET("/sub-orders/", listSubOrdersHandler(store))
		merchant.POST("/sub-orders/:id/accept/", transitionHandler(store, "accept"))
		merchant.POST("/sub-orders/:id/reject/", transitionHandler(store, "reject"))
		merchant.POST("/sub-orders/:id/ship/", transitionHandler(store, "ship"))
		merchant.POST("/sub-orders/:id/deliver/", transitionHandler(store, "deliver"))
	}

	return router
}
