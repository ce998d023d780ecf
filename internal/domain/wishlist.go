package domain

// WishlistState is the per-user wishlist flag for a product together with the
// product's aggregate like count. The pair always comes from the server as a
// unit; clients replace it wholesale rather than incrementing locally.
type WishlistState struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}
