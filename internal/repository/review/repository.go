package review

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// Upsert writes the customer's review of a product, replacing any
	// previous one.
	Upsert(ctx context.Context, r domain.Review) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Delete(ctx context.Context, productID, customerID string) error
}
