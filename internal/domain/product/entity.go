// internal/domain/product/entity.go
package product

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Size is a mattress size key
type Size string

// Mattress sizes in canonical display order
const (
	SizeTwin    Size = "twin"
	SizeTwinXL  Size = "twinXL"
	SizeFull    Size = "full"
	SizeQueen   Size = "queen"
	SizeKing    Size = "king"
	SizeCalKing Size = "calKing"
)

// DefaultSize is preselected on the product detail page
const DefaultSize = SizeQueen

// AllSizes lists every size key in canonical order
var AllSizes = []Size{SizeTwin, SizeTwinXL, SizeFull, SizeQueen, SizeKing, SizeCalKing}

var sizeLabels = map[Size]string{
	SizeTwin:    "Twin",
	SizeTwinXL:  "Twin XL",
	SizeFull:    "Full",
	SizeQueen:   "Queen",
	SizeKing:    "King",
	SizeCalKing: "Cal King",
}

// IsValid reports whether s is one of the six size keys
func (s Size) IsValid() bool {
	_, ok := sizeLabels[s]
	return ok
}

// Label returns the human readable size name
func (s Size) Label() string {
	if label, ok := sizeLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseSize accepts a size key or display label in any case ("Twin XL", "calking", "twin_xl")
func ParseSize(raw string) (Size, error) {
	normalized := normalizeSize(raw)
	for _, size := range AllSizes {
		if normalizeSize(string(size)) == normalized {
			return size, nil
		}
	}
	return "", fmt.Errorf("%w: unknown size %q", ErrInvalidSize, raw)
}

func normalizeSize(raw string) string {
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(replacer.Replace(strings.TrimSpace(raw)))
}

// Product is an immutable catalog record. Prices are in cents.
type Product struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Category         string            `json:"category"`
	Type             string            `json:"type"`
	Price            int64             `json:"price"` // Price in cents
	SalePrice        *int64            `json:"sale_price,omitempty"`
	SizeAdjustments  map[Size]int64    `json:"size_adjustments"` // absent key = size not offered
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description"`
	Features         []string          `json:"features,omitempty"`
	Specifications   map[string]string `json:"specifications,omitempty"`
	Images           []string          `json:"images,omitempty"`
	Rating           float64           `json:"rating"`
	ReviewCount      int               `json:"review_count"`
	InStock          bool              `json:"in_stock"`
	IsNew            bool              `json:"is_new,omitempty"`
	IsBestseller     bool              `json:"is_bestseller,omitempty"`
	Firmness         int               `json:"firmness"` // 1 (soft) .. 10 (firm)
	Materials        []string          `json:"materials,omitempty"`
	Warranty         string            `json:"warranty"`
	TrialPeriodDays  int               `json:"trial_period_days"`
}

// Category groups products on the storefront
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// CategoryAll selects every product in GetByCategory
const CategoryAll = "all"

// EffectiveBasePrice returns the sale price when set, otherwise the list price
func (p Product) EffectiveBasePrice() int64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// Offers reports whether the product can be bought in the given size
func (p Product) Offers(size Size) bool {
	_, ok := p.SizeAdjustments[size]
	return ok
}

// OfferedSizes returns the sizes this product is sold in, in canonical order
func (p Product) OfferedSizes() []Size {
	sizes := make([]Size, 0, len(p.SizeAdjustments))
	for _, size := range AllSizes {
		if p.Offers(size) {
			sizes = append(sizes, size)
		}
	}
	return sizes
}

// SizeAdjustment returns the surcharge for size. Unknown or unoffered sizes fail
// with *InvalidSizeError instead of pricing as zero.
func (p Product) SizeAdjustment(size Size) (int64, error) {
	if !size.IsValid() {
		return 0, &InvalidSizeError{ProductID: p.ID, Size: size, Reason: SizeReasonUnknown}
	}
	adjustment, ok := p.SizeAdjustments[size]
	if !ok {
		return 0, &InvalidSizeError{ProductID: p.ID, Size: size, Reason: SizeReasonNotOffered}
	}
	return adjustment, nil
}

// UnitPrice is the effective base price plus the size surcharge
func (p Product) UnitPrice(size Size) (int64, error) {
	adjustment, err := p.SizeAdjustment(size)
	if err != nil {
		return 0, err
	}
	return p.EffectiveBasePrice() + adjustment, nil
}

// DiscountPercent returns round((price - sale) / price * 100). ok is false
// when the product is not on sale.
func (p Product) DiscountPercent() (percent int, ok bool) {
	if p.SalePrice == nil || p.Price <= 0 {
		return 0, false
	}
	saved := decimal.NewFromInt(p.Price - *p.SalePrice)
	pct := saved.Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(p.Price)).Round(0)
	return int(pct.IntPart()), true
}

// FirmnessLabel buckets the 1-10 firmness scale into the storefront filter labels
func (p Product) FirmnessLabel() string {
	switch {
	case p.Firmness <= 3:
		return FirmnessSoft
	case p.Firmness <= 5:
		return FirmnessMedium
	case p.Firmness <= 7:
		return FirmnessMediumFirm
	default:
		return FirmnessFirm
	}
}

// Firmness filter labels
const (
	FirmnessSoft       = "Soft"
	FirmnessMedium     = "Medium"
	FirmnessMediumFirm = "Medium-Firm"
	FirmnessFirm       = "Firm"
)

// Validate checks the invariants a catalog record must hold
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: %s has negative price", ErrInvalidProduct, p.ID)
	}
	if p.SalePrice != nil && (*p.SalePrice < 0 || *p.SalePrice > p.Price) {
		return fmt.Errorf("%w: %s sale price must be between 0 and the list price", ErrInvalidProduct, p.ID)
	}
	if len(p.SizeAdjustments) == 0 {
		return fmt.Errorf("%w: %s offers no sizes", ErrInvalidProduct, p.ID)
	}
	for size, adjustment := range p.SizeAdjustments {
		if !size.IsValid() {
			return fmt.Errorf("%w: %s has unknown size %q", ErrInvalidProduct, p.ID, size)
		}
		if adjustment < 0 {
			return fmt.Errorf("%w: %s has negative %s adjustment", ErrInvalidProduct, p.ID, size)
		}
	}
	if p.Firmness < 1 || p.Firmness > 10 {
		return fmt.Errorf("%w: %s firmness must be 1-10", ErrInvalidProduct, p.ID)
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate catalog state
func (p Product) Clone() Product {
	clone := p
	if p.SalePrice != nil {
		sale := *p.SalePrice
		clone.SalePrice = &sale
	}
	if p.SizeAdjustments != nil {
		clone.SizeAdjustments = make(map[Size]int64, len(p.SizeAdjustments))
		for size, adjustment := range p.SizeAdjustments {
			clone.SizeAdjustments[size] = adjustment
		}
	}
	if p.Specifications != nil {
		clone.Specifications = make(map[string]string, len(p.Specifications))
		for key, value := range p.Specifications {
			clone.Specifications[key] = value
		}
	}
	clone.Features = append([]string(nil), p.Features...)
	clone.Images = append([]string(nil), p.Images...)
	clone.Materials = append([]string(nil), p.Materials...)
	return clone
}
