package wishlist

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// Add saves a product for the customer. Adding twice is a no-op.
	Add(ctx context.Context, customerID, productID string) error
	Remove(ctx context.Context, customerID, productID string) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.WishlistItem, error)
}
