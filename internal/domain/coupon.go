package domain

import "time"

// Coupon discount kinds.
const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

type Coupon struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	DiscountType  string     `json:"discountType"`
	DiscountValue int64      `json:"discountValue"`
	MinOrderCents int64      `json:"minOrderCents"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	UsageLimit    int        `json:"usageLimit"`
	UsageCount    int        `json:"usageCount"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// DiscountFor computes the discount in cents for the given subtotal. The
// result never exceeds the subtotal.
func (c Coupon) DiscountFor(subtotalCents int64) int64 {
	var discount int64
	switch c.DiscountType {
	case DiscountPercent:
		discount = subtotalCents * c.DiscountValue / 100
	case DiscountFixed:
		discount = c.DiscountValue
	}
	if discount > subtotalCents {
		discount = subtotalCents
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
