// internal/domain/cart/errors.go
package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidProduct  = errors.New("product is required")
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrQuantityLimit   = errors.New("quantity exceeds the per-line limit")
	ErrSessionRequired = errors.New("session ID required")
	// ErrCorruptState is wrapped by UnmarshalState for any unreadable record
	ErrCorruptState = errors.New("corrupted cart state")
)
