package domain

// ItemLine binds a product to a quantity inside one order. UnitPrice is the
// price the line bills at: the product's catalog price when the line is built
// in memory, or the stored price_at_order snapshot after a reload. The two
// can differ once the catalog price changes.
type ItemLine struct {
	Product   Product
	Quantity  int
	UnitPrice float64
}

// NewItemLine builds a line billed at the product's current price.
func NewItemLine(p Product, quantity int) *ItemLine {
	return &ItemLine{Product: p, Quantity: quantity, UnitPrice: p.Price}
}

// Total returns the line subtotal.
func (l *ItemLine) Total() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// AddQuantity increases the line quantity by amount.
func (l *ItemLine) AddQuantity(amount int) error {
	if amount < 0 {
		return &ValidationError{Message: "quantity to add cannot be negative"}
	}
	l.Quantity += amount
	return nil
}

// RemoveQuantity decreases the line quantity by amount. The result may not go
// negative; removing the whole line is the order's job, not a zeroed quantity.
func (l *ItemLine) RemoveQuantity(amount int) error {
	if amount < 0 {
		return &ValidationError{Message: "quantity to remove cannot be negative"}
	}
	if l.Quantity-amount < 0 {
		return &ValidationError{Message: "quantity cannot go negative"}
	}
	l.Quantity -= amount
	return nil
}
