package domain

import "time"

// Order status lifecycle. Cancelled is terminal and only reachable from
// Pending or Processing.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// OrderItem is an immutable snapshot of a purchased line taken at checkout.
// It is never re-derived from the live product.
type OrderItem struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	PriceCents int64   `json:"priceCents"`
	Quantity   int     `json:"quantity"`
	Size       string  `json:"size"`
	VariantID  *string `json:"variantId,omitempty"`
}

type Order struct {
	ID            string      `json:"id"`
	Number        string      `json:"orderNumber"`
	CustomerID    string      `json:"customerId"`
	Items         []OrderItem `json:"items"`
	SubtotalCents int64       `json:"subtotalCents"`
	DiscountCents int64       `json:"discountCents"`
	TotalCents    int64       `json:"totalCents"`
	CouponCode    string      `json:"couponCode,omitempty"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	Address       ShippingAddress `json:"address"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type ShippingAddress struct {
	Name       string `json:"name"`
	StreetName string `json:"streetName"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// TrackingStep is one entry of the derived fulfilment timeline.
type TrackingStep struct {
	Status string `json:"status"`
	Done   bool   `json:"done"`
}

var trackingOrder = []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered}

// TrackingSteps derives the fulfilment timeline from the current status.
// Cancelled orders report the single cancelled step.
func (o Order) TrackingSteps() []TrackingStep {
	if o.Status == OrderCancelled {
		return []TrackingStep{{Status: OrderCancelled, Done: true}}
	}
	reached := 0
	for i, s := range trackingOrder {
		if s == o.Status {
			reached = i
			break
		}
	}
	steps := make([]TrackingStep, 0, len(trackingOrder))
	for i, s := range trackingOrder {
		steps = append(steps, TrackingStep{Status: s, Done: i <= reached})
	}
	return steps
}

// Cancellable reports whether the order may still be cancelled.
func (o Order) Cancellable() bool {
	return o.Status == OrderPending || o.Status == OrderProcessing
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	if s == OrderCancelled {
		return true
	}
	for _, known := range trackingOrder {
		if s == known {
			return true
		}
	}
	return false
}
