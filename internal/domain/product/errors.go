// internal/domain/product/errors.go
package product

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize matches every *InvalidSizeError via errors.Is
	ErrInvalidSize    = errors.New("invalid size")
	ErrInvalidProduct = errors.New("invalid product")
	ErrInvalidSort    = errors.New("invalid sort option")
)

// Reasons a size cannot be priced
const (
	SizeReasonUnknown    = "unknown size"
	SizeReasonNotOffered = "size not offered"
)

// InvalidSizeError names the product and size that could not be priced
type InvalidSizeError struct {
	ProductID string
	Size      Size
	Reason    string
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("invalid size %q for product %q: %s", e.Size, e.ProductID, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidSize) match
func (e *InvalidSizeError) Is(target error) bool {
	return target == ErrInvalidSize
}
