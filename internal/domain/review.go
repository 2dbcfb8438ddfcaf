package domain

import "time"

// Review is one customer's review of a product. At most one review exists per
// (customer, product); writing again replaces the previous one.
type Review struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
