// internal/infrastructure/database/postgres/models.go
package postgres

import (
	"time"

	"github.com/your-org/mattress-storefront/internal/domain/product"
)

// ProductRecord is a row of the products table
type ProductRecord struct {
	ID               string              `gorm:"primaryKey;size:64"`
	Position         int                 `gorm:"not null;default:0;index"`
	Name             string              `gorm:"size:255;not null"`
	Category         string              `gorm:"size:64;not null;index"`
	Type             string              `gorm:"size:64"`
	Price            int64               `gorm:"not null"`
	SalePrice        *int64              `gorm:""`
	Description      string              `gorm:"type:text"`
	ShortDescription string              `gorm:"size:500"`
	Features         []string            `gorm:"serializer:json"`
	Specifications   map[string]string   `gorm:"serializer:json"`
	Images           []string            `gorm:"serializer:json"`
	Rating           float64             `gorm:"not null;default:0"`
	ReviewCount      int                 `gorm:"not null;default:0"`
	InStock          bool                `gorm:"not null;default:true"`
	IsNew            bool                `gorm:"not null;default:false"`
	IsBestseller     bool                `gorm:"not null;default:false"`
	Firmness         int                 `gorm:"not null"`
	Materials        []string            `gorm:"serializer:json"`
	Warranty         string              `gorm:"size:100"`
	TrialPeriodDays  int                 `gorm:"not null;default:0"`
	Sizes            []ProductSizeRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name
func (ProductRecord) TableName() string {
	return "products"
}

// ProductSizeRecord is one offered size of a product. A size without a row is not offered.
type ProductSizeRecord struct {
	ProductID  string `gorm:"primaryKey;size:64"`
	Size       string `gorm:"primaryKey;size:16"`
	Adjustment int64  `gorm:"not null;default:0"`
}

// TableName specifies the table name
func (ProductSizeRecord) TableName() string {
	return "product_sizes"
}

// CategoryRecord is a row of the categories table
type CategoryRecord struct {
	ID          string `gorm:"primaryKey;size:64"`
	Position    int    `gorm:"not null;default:0"`
	Name        string `gorm:"size:255;not null"`
	Slug        string `gorm:"size:255;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name
func (CategoryRecord) TableName() string {
	return "categories"
}

func toProductRecord(p product.Product, position int) ProductRecord {
	record := ProductRecord{
		ID:               p.ID,
		Position:         position,
		Name:             p.Name,
		Category:         p.Category,
		Type:             p.Type,
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Features:         p.Features,
		Specifications:   p.Specifications,
		Images:           p.Images,
		Rating:           p.Rating,
		ReviewCount:      p.ReviewCount,
		InStock:          p.InStock,
		IsNew:            p.IsNew,
		IsBestseller:     p.IsBestseller,
		Firmness:         p.Firmness,
		Materials:        p.Materials,
		Warranty:         p.Warranty,
		TrialPeriodDays:  p.TrialPeriodDays,
	}
	for _, size := range p.OfferedSizes() {
		record.Sizes = append(record.Sizes, ProductSizeRecord{
			ProductID:  p.ID,
			Size:       string(size),
			Adjustment: p.SizeAdjustments[size],
		})
	}
	return record
}

func (r ProductRecord) toProduct() product.Product {
	p := product.Product{
		ID:               r.ID,
		Name:             r.Name,
		Category:         r.Category,
		Type:             r.Type,
		Price:            r.Price,
		SalePrice:        r.SalePrice,
		SizeAdjustments:  make(map[product.Size]int64, len(r.Sizes)),
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Features:         r.Features,
		Specifications:   r.Specifications,
		Images:           r.Images,
		Rating:           r.Rating,
		ReviewCount:      r.ReviewCount,
		InStock:          r.InStock,
		IsNew:            r.IsNew,
		IsBestseller:     r.IsBestseller,
		Firmness:         r.Firmness,
		Materials:        r.Materials,
		Warranty:         r.Warranty,
		TrialPeriodDays:  r.TrialPeriodDays,
	}
	for _, size := range r.Sizes {
		p.SizeAdjustments[product.Size(size.Size)] = size.Adjustment
	}
	return p
}

func toCategoryRecord(c product.Category, position int) CategoryRecord {
	return CategoryRecord{
		ID:          c.ID,
		Position:    position,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
	}
}

func (r CategoryRecord) toCategory() product.Category {
	return product.Category{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Image:       r.Image,
	}
}
