package order

import (
	"context"

	"storefront/internal/domain"
)

type CreateOrderInput struct {
	Number        string
	CustomerID    string
	Items         []domain.OrderItem
	SubtotalCents int64
	DiscountCents int64
	TotalCents    int64
	CouponCode    string
	Address       domain.ShippingAddress
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error
}
