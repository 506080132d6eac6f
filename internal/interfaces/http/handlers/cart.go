// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/mattress-storefront/internal/config"
	"github.com/your-org/mattress-storefront/internal/domain/cart"
	"github.com/your-org/mattress-storefront/internal/domain/product"
)

// heartbeatInterval keeps idle event streams open through proxies
const heartbeatInterval = 20 * time.Second

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
	logger      *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, cfg *config.Config, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		config:      cfg,
		logger:      logger,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	cartResponse, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartResponse,
	})
}

// GetCartItemCount handles GET /cart/count
func (h *CartHandler) GetCartItemCount(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	count, err := h.cartService.GetCartItemCount(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item count retrieved successfully",
		"data":    gin.H{"count": count},
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cartResponse, err := h.cartService.AddToCart(c.Request.Context(), sessionID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartResponse,
	})
}

// UpdateCartItem handles PUT /cart/items/:product_id/:size
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	size, err := product.ParseSize(c.Param("size"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var req cart.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cartResponse, err := h.cartService.UpdateCartItem(c.Request.Context(), sessionID, c.Param("product_id"), size, *req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    cartResponse,
	})
}

// RemoveFromCart handles DELETE /cart/items/:product_id/:size
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	size, err := product.ParseSize(c.Param("size"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	cartResponse, err := h.cartService.RemoveFromCart(c.Request.Context(), sessionID, c.Param("product_id"), size)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartResponse,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	if err := h.cartService.ClearCart(c.Request.Context(), sessionID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// ValidateCart handles POST /cart/validate
func (h *CartHandler) ValidateCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	issues, err := h.cartService.ValidateCart(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart validated",
		"data": gin.H{
			"valid":  len(issues) == 0,
			"issues": issues,
		},
	})
}

// RefreshCart handles POST /cart/refresh
func (h *CartHandler) RefreshCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	cartResponse, issues, err := h.cartService.RefreshCart(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart refreshed",
		"data":    cartResponse,
		"issues":  issues,
	})
}

// StreamCartEvents handles GET /cart/events. It sends a "snapshot" of the
// current cart, then one "cart" event per change until the client goes away.
func (h *CartHandler) StreamCartEvents(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)
	ctx := c.Request.Context()

	store, err := h.cartService.Store(ctx, sessionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// Latest state wins: a slow client skips intermediate events.
	events := make(chan cart.Event, 1)
	listener := func(event cart.Event) {
		for {
			select {
			case events <- event:
				return
			default:
			}
			select {
			case <-events:
			default:
			}
		}
	}
	unsubscribe := store.Subscribe(listener)
	defer func() { unsubscribe() }()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	// Event streams outlive the server write timeout.
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.WithError(err).Debug("Cannot lift write deadline for cart event stream")
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("cart", gin.H{"kind": "snapshot", "cart": cart.BuildResponse(sessionID, store.State())})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event := <-events:
			c.SSEvent("cart", gin.H{
				"kind": event.Kind,
				"cart": cart.BuildResponse(sessionID, event.State),
			})
			return true
		case <-heartbeat.C:
			// An evicted session is restored into a new store; follow it.
			current, err := h.cartService.Store(ctx, sessionID)
			if err == nil && current != store {
				unsubscribe()
				store = current
				unsubscribe = store.Subscribe(listener)
				c.SSEvent("cart", gin.H{"kind": "snapshot", "cart": cart.BuildResponse(sessionID, store.State())})
				return true
			}
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}
