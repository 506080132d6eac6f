// internal/domain/product/category_service.go
package product

import (
	"fmt"
	"strings"
)

// CategoryWithProductCount represents category with product count
type CategoryWithProductCount struct {
	Category
	ProductCount int `json:"product_count"`
}

// Categories returns all categories in display order
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// GetCategoryBySlug retrieves a single category by slug. A miss is not an error.
func (c *Catalog) GetCategoryBySlug(slug string) (Category, bool) {
	idx, ok := c.bySlug[slug]
	if !ok {
		return Category{}, false
	}
	return c.categories[idx], true
}

// CategoriesWithProductCount returns every category along with how many products it holds
func (c *Catalog) CategoriesWithProductCount() []CategoryWithProductCount {
	counts := make(map[string]int, len(c.categories))
	for _, p := range c.products {
		counts[p.Category]++
	}

	result := make([]CategoryWithProductCount, 0, len(c.categories))
	for _, category := range c.categories {
		result = append(result, CategoryWithProductCount{
			Category:     category,
			ProductCount: counts[category.ID],
		})
	}
	return result
}

func validateCategory(category Category) error {
	if category.ID == "" || category.Name == "" || category.Slug == "" {
		return fmt.Errorf("category id, name and slug are required")
	}
	if category.Slug != generateSlug(category.Slug) {
		return fmt.Errorf("category %q has a non URL-friendly slug %q", category.ID, category.Slug)
	}
	return nil
}

// generateSlug generates URL-friendly slug from name
func generateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")

	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
