// internal/interfaces/http/handlers/category.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/mattress-storefront/internal/domain/product"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	catalog *product.Catalog
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(catalog *product.Catalog) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    h.catalog.CategoriesWithProductCount(),
	})
}

// GetCategoryBySlug handles GET /categories/:slug
func (h *CategoryHandler) GetCategoryBySlug(c *gin.Context) {
	category, ok := h.catalog.GetCategoryBySlug(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Category not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category retrieved successfully",
		"data": gin.H{
			"category": category,
			"products": h.catalog.GetByCategory(category.ID),
		},
	})
}
