package stubapi

import "ebuy-client/internal/domain"

// Seed loads accounts and products for manual testing. Two merchants so
// order placement exercises the per-merchant split.
func Seed(store *Store) {
	store.AddUser(domain.User{
		ID:    "user-shopper",
		Email: "shopper@example.com",
		Name:  "Demo Shopper",
	}, "password123")
	store.AddUser(domain.User{
		ID:         "user-gadgets",
		Email:      "gadgets@example.com",
		Name:       "Gadget Works",
		MerchantID: "merch-gadgets",
	}, "password123")
	store.AddUser(domain.User{
		ID:         "user-threads",
		Email:      "threads@example.com",
		Name:       "Thread Count",
		MerchantID: "merch-threads",
	}, "password123")

	store.AddProduct(domain.Product{
		ID:                 "prod-headphones",
		MerchantID:         "merch-gadgets",
		Name:               "Wireless Headphones",
		Description:        "Over-ear, 30h battery",
		ImageURL:           "https://images.example.com/headphones.jpg",
		Stock:              12,
		OriginalPriceCents: 12999,
		SalePriceCents:     9999,
		OnSale:             true,
		LikesCount:         3,
		Active:             true,
	})
	store.AddProduct(domain.Product{
		ID:                 "prod-charger",
		MerchantID:         "merch-gadgets",
		Name:               "USB-C Charger",
		Description:        "65W dual port",
		ImageURL:           "https://images.example.com/charger.jpg",
		Stock:              40,
		OriginalPriceCents: 2599,
		Active:             true,
	})
	store.AddProduct(domain.Product{
		ID:                 "prod-tee",
		MerchantID:         "merch-threads",
		Name:               "Organic Cotton Tee",
		Description:        "Unisex, slate gray",
		ImageURL:           "https://images.example.com/tee.jpg",
		Stock:              25,
		OriginalPriceCents: 1999,
		SalePriceCents:     1000,
		OnSale:             true,
		LikesCount:         7,
		Active:             true,
	})
	store.AddProduct(domain.Product{
		ID:                 "prod-hoodie",
		MerchantID:         "merch-threads",
		Name:               "Fleece Hoodie",
		Description:        "Heavyweight, navy",
		ImageURL:           "https://images.example.com/hoodie.jpg",
		Stock:              0,
		OriginalPriceCents: 5499,
		Active:             true,
	})
}
