package cache

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

// CartCache fronts cart reads. Implementations are best effort: callers treat
// every error except ErrCacheMiss as a reason to log and fall through.
type CartCache interface {
	Get(ctx context.Context, customerID string) (*domain.Cart, error)
	Set(ctx context.Context, customerID string, cart *domain.Cart) error
	Delete(ctx context.Context, customerID string) error
}

var ErrCacheMiss = errors.New("cache miss")
