package domain

import "time"

// User is the signed-in account as reported by the API. MerchantID is empty
// for plain shoppers.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	MerchantID string    `json:"merchantId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u User) IsMerchant() bool {
	return u.MerchantID != ""
}
