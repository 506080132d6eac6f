// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/mattress-storefront/internal/domain/product"
)

// maxListLimit caps ?limit= on the short product lists
const maxListLimit = 24

// ProductHandler handles product endpoints
type ProductHandler struct {
	catalog *product.Catalog
	logger  *logrus.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog *product.Catalog, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var filter product.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	products, err := h.catalog.List(filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
		"total":   len(products),
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, ok := h.catalog.GetByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data": gin.H{
			"product":         p,
			"sizes":           p.OfferedSizes(),
			"default_size":    product.DefaultSize,
			"firmness":        p.FirmnessLabel(),
			"effective_price": p.EffectiveBasePrice(),
		},
	})
}

// GetRelatedProducts handles GET /products/:id/related
func (h *ProductHandler) GetRelatedProducts(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.catalog.GetByID(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Related products retrieved successfully",
		"data":    h.catalog.GetRelated(id, limit),
	})
}

// GetFeaturedProducts handles GET /products/featured
func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Featured products retrieved successfully",
		"data":    h.catalog.GetFeatured(limit),
	})
}

// GetNewArrivals handles GET /products/new-arrivals
func (h *ProductHandler) GetNewArrivals(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "New arrivals retrieved successfully",
		"data":    h.catalog.GetNewArrivals(limit),
	})
}

// GetBestSellers handles GET /products/best-sellers
func (h *ProductHandler) GetBestSellers(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Best sellers retrieved successfully",
		"data":    h.catalog.GetBestSellers(limit),
	})
}

// parseLimit reads ?limit=. Absent means the catalog default (0).
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "limit must be a positive integer",
		})
		return 0, false
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit, true
}
