package cart

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// GetByCustomer returns the customer's cart with its lines, or
	// domain.ErrNotFound when the customer has never added an item.
	GetByCustomer(ctx context.Context, customerID string) (*domain.Cart, error)
	// GetOrCreate returns the customer's cart, creating an empty one first
	// when absent.
	GetOrCreate(ctx context.Context, customerID string) (*domain.Cart, error)
	// ReplaceItems persists the consolidated line set wholesale and refreshes
	// the cached totals in the same transaction.
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error
	// Clear removes all lines but keeps the cart row.
	Clear(ctx context.Context, customerID string) error
}
