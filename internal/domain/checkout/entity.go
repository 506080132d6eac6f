// internal/domain/checkout/entity.go
package checkout

import (
	"fmt"
	"strings"

	"github.com/your-org/mattress-storefront/internal/domain/cart"
)

// Step is one page of the checkout form
type Step string

const (
	StepContact  Step = "contact"
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
)

// Steps lists the checkout steps in order
var Steps = []Step{StepContact, StepShipping, StepPayment}

// ParseStep validates a step name
func ParseStep(raw string) (Step, error) {
	for _, step := range Steps {
		if string(step) == raw {
			return step, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStep, raw)
}

// ContactInfo is the first checkout step
type ContactInfo struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Phone string `json:"phone" validate:"required,us_phone"`
}

// ShippingInfo is the second checkout step
type ShippingInfo struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Address   string `json:"address" validate:"required,max=255"`
	Apartment string `json:"apartment" validate:"omitempty,max=100"`
	City      string `json:"city" validate:"required,max=100"`
	State     string `json:"state" validate:"required,oneof=PA NJ DE NY MD"`
	ZipCode   string `json:"zip_code" validate:"required,us_zip"`
}

// PaymentInfo is the third checkout step. It is never stored.
type PaymentInfo struct {
	CardName   string `json:"card_name" validate:"required,max=100"`
	CardNumber string `json:"card_number" validate:"required,credit_card"`
	ExpiryDate string `json:"expiry_date" validate:"required,card_expiry"` // MM/YY
	CVV        string `json:"cvv" validate:"required,numeric,min=3,max=4"`
}

// PlaceOrderRequest carries all three steps
type PlaceOrderRequest struct {
	Contact  ContactInfo  `json:"contact"`
	Shipping ShippingInfo `json:"shipping"`
	Payment  PaymentInfo  `json:"payment"`
}

// PricingSummary represents the order pricing breakdown, in cents
type PricingSummary struct {
	Subtotal     int64  `json:"subtotal"`
	ShippingCost int64  `json:"shipping_cost"`
	FreeShipping bool   `json:"free_shipping"`
	TaxAmount    int64  `json:"tax_amount"`
	TaxRate      string `json:"tax_rate"`
	TotalAmount  int64  `json:"total_amount"`
	Currency     string `json:"currency"`
}

// Summary is the cart plus its pricing
type Summary struct {
	Cart    *cart.CartResponse `json:"cart"`
	Pricing PricingSummary     `json:"pricing"`
	Steps   []Step             `json:"steps"`
}

// FieldError describes one invalid form field
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every invalid field of a step
type ValidationError struct {
	Step   Step         `json:"step,omitempty"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, field := range e.Fields {
		names[i] = field.Field
	}
	if e.Step == "" {
		return fmt.Sprintf("invalid checkout fields: %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("invalid %s fields: %s", e.Step, strings.Join(names, ", "))
}

// Is lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
