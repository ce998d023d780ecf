// Package democart is the purely local cart used by the merchant console's
// preview views. It never talks to the network and never errors: every
// operation is a total transformation of a Cart value. Price-dependent totals
// in the storefront cart come from the server instead (see service/cart).
package democart

import (
	"time"

	"ebuy-client/internal/domain"
)

// AddToCart increments the existing line for the product or appends a new
// one. Quantities below 1 are treated as 1. The line id is derived from the
// product id since no server assigns one in this variant.
func AddToCart(c domain.Cart, p domain.Product, quantity int) domain.Cart {
	if quantity < 1 {
		quantity = 1
	}
	lines := cloneLines(c.Lines)
	for i, l := range lines {
		if l.ProductID == p.ID {
			lines[i].Quantity = l.Quantity + quantity
			c.Lines = lines
			return c
		}
	}
	lines = append(lines, domain.CartLine{
		ID:             p.ID,
		ProductID:      p.ID,
		ProductName:    p.Name,
		ProductImage:   p.ImageURL,
		UnitPriceCents: p.EffectivePriceCents(),
		Stock:          p.Stock,
		Quantity:       quantity,
		AddedAt:        time.Now().UTC(),
	})
	c.Lines = lines
	return c
}

// RemoveFromCart drops the line for the product. Removing an absent product
// is a no-op.
func RemoveFromCart(c domain.Cart, productID string) domain.Cart {
	lines := make([]domain.CartLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		if l.ProductID != productID {
			lines = append(lines, l)
		}
	}
	c.Lines = lines
	return c
}

// UpdateQuantity replaces the line quantity. A quantity of zero or less
// behaves exactly like RemoveFromCart.
func UpdateQuantity(c domain.Cart, productID string, quantity int) domain.Cart {
	if quantity <= 0 {
		return RemoveFromCart(c, productID)
	}
	lines := cloneLines(c.Lines)
	for i, l := range lines {
		if l.ProductID == productID {
			lines[i].Quantity = quantity
		}
	}
	c.Lines = lines
	return c
}

// ClearCart resets the cart to empty.
func ClearCart(c domain.Cart) domain.Cart {
	c.Lines = nil
	return c
}

func cloneLines(lines []domain.CartLine) []domain.CartLine {
	if len(lines) == 0 {
		return nil
	}
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}
