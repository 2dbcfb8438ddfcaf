package domain

import "time"

// Cart holds the consolidated line items for one customer. Totals are always
// derived from the items; the persisted copies exist for cheap listing only.
type Cart struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customerId"`
	Items      []CartItem `json:"items"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CartItem is one cart line. Price, offer price, image and the stock ceiling
// are snapshots of the product at the time the line was last touched.
type CartItem struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"productId"`
	Name            string    `json:"name"`
	PriceCents      int64     `json:"priceCents"`
	OfferPriceCents *int64    `json:"offerPriceCents,omitempty"`
	Quantity        int       `json:"quantity"`
	Size            string    `json:"size"`
	Image           string    `json:"image,omitempty"`
	StockCeiling    int       `json:"stock"`
	VariantID       *string   `json:"variantId,omitempty"`
	VariantName     string    `json:"variantName,omitempty"`
	VariantType     string    `json:"variantType,omitempty"`
	AddedAt         time.Time `json:"addedAt"`
}

// UnitPriceCents returns the effective unit price, preferring the offer price.
func (i CartItem) UnitPriceCents() int64 {
	if i.OfferPriceCents != nil {
		return *i.OfferPriceCents
	}
	return i.PriceCents
}

// SameKey reports whether two lines share the (productId, size, variantId)
// identity key. A nil variant on both sides counts as a match.
func (i CartItem) SameKey(other CartItem) bool {
	if i.ProductID != other.ProductID || i.Size != other.Size {
		return false
	}
	if i.VariantID == nil && other.VariantID == nil {
		return true
	}
	if i.VariantID == nil || other.VariantID == nil {
		return false
	}
	return *i.VariantID == *other.VariantID
}

// TotalCents sums effective price times quantity over all lines.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPriceCents() * int64(item.Quantity)
	}
	return total
}

// ItemCount sums quantities over all lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
