// internal/domain/cart/pricing.go
package cart

// UnitPrice is the effective base price of the line's product plus its size surcharge
func UnitPrice(item LineItem) (int64, error) {
	return item.Product.UnitPrice(item.Size)
}

// LineTotal is UnitPrice times quantity
func LineTotal(item LineItem) (int64, error) {
	unit, err := UnitPrice(item)
	if err != nil {
		return 0, err
	}
	return unit * int64(item.Quantity), nil
}

// CartTotal sums LineTotal over items. A line that cannot be priced fails the
// whole total rather than counting as zero.
func CartTotal(items []LineItem) (int64, error) {
	var total int64
	for _, item := range items {
		line, err := LineTotal(item)
		if err != nil {
			return 0, err
		}
		total += line
	}
	return total, nil
}

// BuildResponse prices every line of state for display
func BuildResponse(sessionID string, state State) *CartResponse {
	response := &CartResponse{
		SessionID: sessionID,
		Items:     make([]CartItemResponse, 0, len(state.Items)),
		IsEmpty:   state.IsEmpty(),
	}

	var subtotal int64
	priced := true
	for _, item := range state.Items {
		line := CartItemResponse{
			Product:   item.Product,
			Size:      item.Size,
			SizeLabel: item.Size.Label(),
			Quantity:  item.Quantity,
		}
		if unit, err := UnitPrice(item); err != nil {
			line.Error = err.Error()
			priced = false
		} else {
			total := unit * int64(item.Quantity)
			line.UnitPrice = &unit
			line.LineTotal = &total
			subtotal += total
		}
		response.Items = append(response.Items, line)
	}

	response.Totals = CartTotals{
		ItemCount:     len(state.Items),
		TotalQuantity: state.TotalItems(),
		Priced:        priced,
	}
	if priced {
		response.Totals.SubTotal = &subtotal
	}
	return response
}
