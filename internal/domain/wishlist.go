package domain

import "time"

// WishlistItem links a customer to a saved product. Listing joins the live
// product so removed products drop out naturally.
type WishlistItem struct {
	ProductID string    `json:"productId"`
	Product   *Product  `json:"product,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}
