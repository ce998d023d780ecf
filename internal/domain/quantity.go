package domain

// Quantity and stock predicates shared by every call site that renders or
// validates cart controls, so the rules live in one place instead of being
// repeated ad hoc in each UI handler.

// QuantityWithinStock reports whether quantity is a legal purchase amount
// for the given stock level.
func QuantityWithinStock(quantity, stock int) bool {
	return quantity >= 1 && quantity <= stock
}

// CanIncrement reports whether one more unit of the line's product may be
// requested. Increment controls are disabled at the stock ceiling.
func CanIncrement(l CartLine) bool {
	return l.Quantity < l.Stock
}

// CanDecrement reports whether the line quantity may be lowered without
// removing the line. Decrement controls are disabled at quantity 1; removal
// goes through the explicit remove operation.
func CanDecrement(l CartLine) bool {
	return l.Quantity > 1
}
