package domain

import "time"

// CartLine is one product-and-quantity pairing within a cart. The product
// display fields are a snapshot taken when the line was created so the cart
// can render without a second product fetch.
type CartLine struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"productId"`
	ProductName    string    `json:"productName"`
	ProductImage   string    `json:"productImage,omitempty"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Stock          int       `json:"stock"`
	Quantity       int       `json:"quantity"`
	AddedAt        time.Time `json:"addedAt"`
}

// TotalCents is always derived, never stored independently.
func (l CartLine) TotalCents() int64 {
	return int64(l.Quantity) * l.UnitPriceCents
}

// Cart holds at most one line per distinct product.
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lineItems,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (c Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

func (c Cart) TotalCents() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.TotalCents()
	}
	return total
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c Cart) LineByProduct(productID string) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

func (c Cart) LineByID(id string) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return CartLine{}, false
}
