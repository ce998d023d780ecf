package domain

import "time"

type Product struct {
	ID                 string    `json:"id"`
	MerchantID         string    `json:"merchantId"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	ImageURL           string    `json:"imageUrl,omitempty"`
	Stock              int       `json:"stock"`
	OriginalPriceCents int64     `json:"originalPriceCents"`
	SalePriceCents     int64     `json:"salePriceCents,omitempty"`
	OnSale             bool      `json:"onSale"`
	LikesCount         int       `json:"likesCount"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"createdAt"`
}

// EffectivePriceCents is the price a buyer currently pays: the sale price
// while the product is on sale, the original price otherwise.
func (p Product) EffectivePriceCents() int64 {
	if p.OnSale && p.SalePriceCents > 0 {
		return p.SalePriceCents
	}
	return p.OriginalPriceCents
}

func (p Product) InStock() bool {
	return p.Stock > 0
}
