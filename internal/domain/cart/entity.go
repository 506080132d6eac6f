// internal/domain/cart/entity.go
package cart

import (
	"github.com/your-org/mattress-storefront/internal/domain/product"
)

// LineItem is one product/size row in a cart. Product is a snapshot taken when
// the line was added and may drift from the live catalog.
type LineItem struct {
	Product  product.Product `json:"product"`
	Size     product.Size    `json:"size"`
	Quantity int             `json:"quantity"`
}

// LineKey identifies a line; a cart never holds two lines with the same key
type LineKey struct {
	ProductID string       `json:"product_id"`
	Size      product.Size `json:"size"`
}

// Key returns the line identity
func (i LineItem) Key() LineKey {
	return LineKey{ProductID: i.Product.ID, Size: i.Size}
}

// State is the persisted cart content, in insertion order
type State struct {
	Items []LineItem `json:"items"`
}

// IsEmpty reports whether the cart has no lines
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// TotalItems is the sum of quantities across all lines
func (s State) TotalItems() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	items := make([]LineItem, len(s.Items))
	for i, item := range s.Items {
		items[i] = LineItem{
			Product:  item.Product.Clone(),
			Size:     item.Size,
			Quantity: item.Quantity,
		}
	}
	return State{Items: items}
}

// EventKind names the mutation that produced an Event
type EventKind string

// Cart events
const (
	EventItemAdded       EventKind = "item_added"
	EventItemRemoved     EventKind = "item_removed"
	EventQuantityUpdated EventKind = "quantity_updated"
	EventCleared         EventKind = "cleared"
	EventRefreshed       EventKind = "refreshed"
)

// Event is delivered to subscribers after every state change
type Event struct {
	Kind  EventKind `json:"kind"`
	State State     `json:"state"`
}

// Listener receives cart events. It must not modify the event state.
type Listener func(Event)

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents update cart item request. A quantity below 1 removes the line.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartResponse represents the cart as shown to the shopper
type CartResponse struct {
	SessionID string             `json:"session_id"`
	Items     []CartItemResponse `json:"items"`
	Totals    CartTotals         `json:"totals"`
	IsEmpty   bool               `json:"is_empty"`
}

// CartItemResponse is a priced line. UnitPrice and LineTotal are nil when the
// line cannot be priced; Error says why.
type CartItemResponse struct {
	Product   product.Product `json:"product"`
	Size      product.Size    `json:"size"`
	SizeLabel string          `json:"size_label"`
	Quantity  int             `json:"quantity"`
	UnitPrice *int64          `json:"unit_price"`
	LineTotal *int64          `json:"line_total"`
	Error     string          `json:"error,omitempty"`
}

// CartTotals represents calculated cart totals
type CartTotals struct {
	ItemCount     int    `json:"item_count"`     // Number of lines
	TotalQuantity int    `json:"total_quantity"` // Sum of all quantities
	SubTotal      *int64 `json:"sub_total"`      // nil when any line is unpriceable
	Priced        bool   `json:"priced"`
}

// Issue codes reported by ValidateCart
const (
	IssueProductUnavailable = "product_unavailable"
	IssueSizeUnavailable    = "size_unavailable"
	IssuePriceChanged       = "price_changed"
	IssueOutOfStock         = "out_of_stock"
)

// ValidationIssue describes a line that no longer matches the catalog
type ValidationIssue struct {
	ProductID string       `json:"product_id"`
	Size      product.Size `json:"size"`
	Code      string       `json:"code"`
	Message   string       `json:"message"`
}
