package checkout

import "errors"

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnpriceableCart = errors.New("cart contains items that can no longer be priced")
	ErrUnknownStep     = errors.New("unknown checkout step")
	ErrValidation      = errors.New("checkout validation failed")
)
