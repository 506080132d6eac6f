// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/mattress-storefront/internal/domain/product"
)

// Status represents the order status
type Status string

const (
	StatusConfirmed Status = "confirmed"
)

// Order is the confirmation produced at checkout. Orders are not persisted.
type Order struct {
	OrderNumber string `json:"order_number"`
	Status      Status `json:"status"`
	Currency    string `json:"currency"`

	Items []Item `json:"items"`

	// Financial Information, in cents
	SubtotalAmount int64 `json:"subtotal_amount"`
	ShippingAmount int64 `json:"shipping_amount"`
	TaxAmount      int64 `json:"tax_amount"`
	TotalAmount    int64 `json:"total_amount"`

	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	ShippingAddress Address `json:"shipping_address"`
	Payment         Payment `json:"payment"`

	CreatedAt time.Time `json:"created_at"`
}

// Item is a priced cart line frozen into the order
type Item struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Size      product.Size `json:"size"`
	SizeLabel string       `json:"size_label"`
	Quantity  int          `json:"quantity"`
	UnitPrice int64        `json:"unit_price"` // Price per unit in cents
	LineTotal int64        `json:"line_total"` // Quantity * UnitPrice
}

// Address represents the shipping address
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Apartment string `json:"apartment,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
}

// Payment keeps only what may be shown on a receipt
type Payment struct {
	CardholderName string `json:"cardholder_name"`
	CardLast4      string `json:"card_last4"`
}

// GenerateOrderNumber returns ORD-YYYYMMDD-XXXXXXXX for the given time
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), strings.ToUpper(suffix))
}

// CustomerName returns the shipping first and last name
func (o *Order) CustomerName() string {
	return strings.TrimSpace(o.ShippingAddress.FirstName + " " + o.ShippingAddress.LastName)
}

// ItemCount is the total quantity across all items
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// Last4 returns the last four digits of a card number, ignoring separators
func Last4(cardNumber string) string {
	digits := make([]byte, 0, len(cardNumber))
	for i := 0; i < len(cardNumber); i++ {
		if c := cardNumber[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) <= 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}
