// internal/domain/product/service.go
package product

import (
	"fmt"
	"sort"
)

// Default result caps when a caller passes limit <= 0
const (
	DefaultRelatedLimit     = 4
	DefaultFeaturedLimit    = 3
	DefaultNewArrivalsLimit = 4
	DefaultBestSellersLimit = 4
)

// Sort options for List
const (
	SortFeatured      = "featured"
	SortPriceLowHigh  = "price-low-high"
	SortPriceHighLow  = "price-high-low"
	SortRating        = "rating"
	SortNewest        = "newest"
	DefaultMaxPrice   = 200000 // $2,000
	defaultListSortBy = SortFeatured
)

// Catalog is a read-only, in-memory product data source. All lookups return
// copies; the catalog itself never changes after construction.
type Catalog struct {
	products   []Product
	byID       map[string]int
	categories []Category
	bySlug     map[string]int
}

// ListFilter represents product list query parameters
type ListFilter struct {
	Categories []string `form:"category"`
	Firmness   []string `form:"firmness"`
	MinPrice   int64    `form:"min_price"`
	MaxPrice   int64    `form:"max_price"` // 0 means DefaultMaxPrice
	InStock    bool     `form:"in_stock"`
	SortBy     string   `form:"sort_by"`
}

// NewCatalog validates products and categories and builds the lookup indexes
func NewCatalog(products []Product, categories []Category) (*Catalog, error) {
	c := &Catalog{
		products:   make([]Product, 0, len(products)),
		byID:       make(map[string]int, len(products)),
		categories: make([]Category, 0, len(categories)),
		bySlug:     make(map[string]int, len(categories)),
	}

	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidProduct, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p.Clone())
	}

	for _, category := range categories {
		if err := validateCategory(category); err != nil {
			return nil, err
		}
		if _, exists := c.bySlug[category.Slug]; exists {
			return nil, fmt.Errorf("duplicate category slug %q", category.Slug)
		}
		c.bySlug[category.Slug] = len(c.categories)
		c.categories = append(c.categories, category)
	}

	return c, nil
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// GetByID returns the product with the given id. A miss is not an error.
func (c *Catalog) GetByID(id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx].Clone(), true
}

// GetByCategory returns products in a category; "all" returns the whole catalog
func (c *Catalog) GetByCategory(category string) []Product {
	return c.collect(func(p Product) bool {
		return category == CategoryAll || p.Category == category
	}, 0)
}

// GetRelated returns up to limit products sharing the category of id, excluding id itself
func (c *Catalog) GetRelated(id string, limit int) []Product {
	current, ok := c.GetByID(id)
	if !ok {
		return []Product{}
	}
	return c.collect(func(p Product) bool {
		return p.ID != id && p.Category == current.Category
	}, limitOr(limit, DefaultRelatedLimit))
}

// GetFeatured returns bestsellers and new arrivals in catalog order
func (c *Catalog) GetFeatured(limit int) []Product {
	return c.collect(func(p Product) bool {
		return p.IsBestseller || p.IsNew
	}, limitOr(limit, DefaultFeaturedLimit))
}

// GetNewArrivals returns products flagged as new
func (c *Catalog) GetNewArrivals(limit int) []Product {
	return c.collect(func(p Product) bool {
		return p.IsNew
	}, limitOr(limit, DefaultNewArrivalsLimit))
}

// GetBestSellers returns bestsellers sorted by rating, highest first
func (c *Catalog) GetBestSellers(limit int) []Product {
	result := c.collect(func(p Product) bool {
		return p.IsBestseller
	}, 0)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Rating > result[j].Rating
	})
	return truncate(result, limitOr(limit, DefaultBestSellersLimit))
}

// List applies the storefront filters and sort order
func (c *Catalog) List(filter ListFilter) ([]Product, error) {
	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = defaultListSortBy
	}
	less, err := sortFunc(sortBy)
	if err != nil {
		return nil, err
	}

	maxPrice := filter.MaxPrice
	if maxPrice <= 0 {
		maxPrice = DefaultMaxPrice
	}
	categories := toSet(filter.Categories)
	firmness := toSet(filter.Firmness)

	result := c.collect(func(p Product) bool {
		if len(categories) > 0 && !categories[p.Category] {
			return false
		}
		if len(firmness) > 0 && !firmness[p.FirmnessLabel()] {
			return false
		}
		if filter.InStock && !p.InStock {
			return false
		}
		price := p.EffectiveBasePrice()
		return price >= filter.MinPrice && price <= maxPrice
	}, 0)

	if less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return less(result[i], result[j])
		})
	}
	return result, nil
}

func sortFunc(sortBy string) (func(a, b Product) bool, error) {
	switch sortBy {
	case SortFeatured:
		return nil, nil
	case SortPriceLowHigh:
		return func(a, b Product) bool { return a.EffectiveBasePrice() < b.EffectiveBasePrice() }, nil
	case SortPriceHighLow:
		return func(a, b Product) bool { return a.EffectiveBasePrice() > b.EffectiveBasePrice() }, nil
	case SortRating:
		return func(a, b Product) bool { return a.Rating > b.Rating }, nil
	case SortNewest:
		return func(a, b Product) bool { return a.IsNew && !b.IsNew }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, sortBy)
	}
}

func (c *Catalog) collect(match func(Product) bool, limit int) []Product {
	result := make([]Product, 0)
	for _, p := range c.products {
		if !match(p) {
			continue
		}
		result = append(result, p.Clone())
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

func limitOr(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}

func truncate(products []Product, limit int) []Product {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	return set
}
