// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/your-org/mattress-storefront/internal/interfaces/http/handlers"
)

// Handlers groups everything mounted under /api/v1
type Handlers struct {
	Product  *handlers.ProductHandler
	Category *handlers.CategoryHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
}

// SetupRoutes mounts every API route on rg
func SetupRoutes(rg *gin.RouterGroup, h Handlers) {
	SetupProductRoutes(rg, h.Product)
	SetupCategoryRoutes(rg, h.Category)
	SetupCartRoutes(rg, h.Cart)
	SetupCheckoutRoutes(rg, h.Checkout)
}

// SetupProductRoutes sets up product related routes
func SetupProductRoutes(rg *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/featured", productHandler.GetFeaturedProducts)
		products.GET("/new-arrivals", productHandler.GetNewArrivals)
		products.GET("/best-sellers", productHandler.GetBestSellers)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/related", productHandler.GetRelatedProducts)
	}
}

// SetupCategoryRoutes sets up category routes
func SetupCategoryRoutes(rg *gin.RouterGroup, categoryHandler *handlers.CategoryHandler) {
	categories := rg.Group("/categories")
	{
		categories.GET("", categoryHandler.GetCategories)
		categories.GET("/:slug", categoryHandler.GetCategoryBySlug)
	}
}

// SetupCartRoutes sets up cart routes. Carts are keyed by the session cookie.
func SetupCartRoutes(rg *gin.RouterGroup, cartHandler *handlers.CartHandler) {
	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.GET("/count", cartHandler.GetCartItemCount)
		cart.GET("/events", cartHandler.StreamCartEvents)
		cart.POST("/validate", cartHandler.ValidateCart)
		cart.POST("/refresh", cartHandler.RefreshCart)

		items := cart.Group("/items")
		{
			items.POST("", cartHandler.AddToCart)
			items.PUT("/:product_id/:size", cartHandler.UpdateCartItem)
			items.DELETE("/:product_id/:size", cartHandler.RemoveFromCart)
		}
	}
}

// SetupCheckoutRoutes sets up checkout routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, checkoutHandler *handlers.CheckoutHandler) {
	checkout := rg.Group("/checkout")
	{
		checkout.GET("/summary", checkoutHandler.GetCheckoutSummary)
		checkout.POST("/steps/:step", checkoutHandler.ValidateStep)
		checkout.POST("/orders", checkoutHandler.PlaceOrder)
	}
}
