// internal/infrastructure/database/postgres/catalog_repository.go
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/your-org/mattress-storefront/internal/domain/product"
)

// CatalogRepository reads the product catalog from Postgres
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Products returns every product with its offered sizes, in catalog order
func (r *CatalogRepository) Products(ctx context.Context) ([]product.Product, error) {
	var records []ProductRecord
	if err := r.db.WithContext(ctx).
		Preload("Sizes").
		Order("position ASC").
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	products := make([]product.Product, 0, len(records))
	for _, record := range records {
		products = append(products, record.toProduct())
	}
	return products, nil
}

// Categories returns every category in display order
func (r *CatalogRepository) Categories(ctx context.Context) ([]product.Category, error) {
	var records []CategoryRecord
	if err := r.db.WithContext(ctx).
		Order("position ASC").
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	categories := make([]product.Category, 0, len(records))
	for _, record := range records {
		categories = append(categories, record.toCategory())
	}
	return categories, nil
}

// LoadCatalog builds an immutable catalog snapshot from the database
func (r *CatalogRepository) LoadCatalog(ctx context.Context) (*product.Catalog, error) {
	products, err := r.Products(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := r.Categories(ctx)
	if err != nil {
		return nil, err
	}

	catalog, err := product.NewCatalog(products, categories)
	if err != nil {
		return nil, fmt.Errorf("database catalog is invalid: %w", err)
	}
	return catalog, nil
}
