// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/your-org/mattress-storefront/internal/domain/product"
)

// Migration handles catalog schema migrations and seeding
type Migration struct {
	db     *gorm.DB
	logger *logrus.Entry
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		logger: logger.WithField("component", "migration"),
	}
}

// RunAutoMigrations runs GORM auto-migrations for the catalog tables
func (m *Migration) RunAutoMigrations(ctx context.Context) error {
	m.logger.Info("Running database auto-migrations")

	models := []interface{}{
		&CategoryRecord{},
		&ProductRecord{},
		&ProductSizeRecord{},
	}

	for _, model := range models {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.WithContext(ctx).AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates indexes AutoMigrate does not express
func (m *Migration) CreateIndexes(ctx context.Context) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_position ON products(category, position)",
		"CREATE INDEX IF NOT EXISTS idx_products_in_stock ON products(in_stock)",
		"CREATE INDEX IF NOT EXISTS idx_product_sizes_product ON product_sizes(product_id)",
	}

	failed := 0
	for _, indexSQL := range indexes {
		if err := m.db.WithContext(ctx).Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warn("Failed to create index")
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d indexes failed", failed, len(indexes))
	}
	return nil
}

// SeedCatalog upserts categories and products. A product's size rows are
// replaced so sizes dropped from the seed stop being offered.
func (m *Migration) SeedCatalog(ctx context.Context, products []product.Product, categories []product.Category) error {
	m.logger.WithFields(logrus.Fields{
		"products":   len(products),
		"categories": len(categories),
	}).Info("Seeding catalog")

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, category := range categories {
			record := toCategoryRecord(category, i)
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"position", "name", "slug", "description", "image", "updated_at"}),
			}).Create(&record).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", category.ID, err)
			}
		}

		for i, p := range products {
			record := toProductRecord(p, i)
			sizes := record.Sizes
			record.Sizes = nil

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&record).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
			}

			if err := tx.Where("product_id = ?", p.ID).Delete(&ProductSizeRecord{}).Error; err != nil {
				return fmt.Errorf("failed to reset sizes of %s: %w", p.ID, err)
			}
			if len(sizes) > 0 {
				if err := tx.Create(&sizes).Error; err != nil {
					return fmt.Errorf("failed to seed sizes of %s: %w", p.ID, err)
				}
			}
		}
		return nil
	})
}

// DropAllTables removes the catalog tables
func (m *Migration) DropAllTables(ctx context.Context) error {
	m.logger.Warn("Dropping catalog tables")
	return m.db.WithContext(ctx).Migrator().DropTable(&ProductSizeRecord{}, &ProductRecord{}, &CategoryRecord{})
}
