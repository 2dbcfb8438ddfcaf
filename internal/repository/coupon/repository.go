package coupon

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.Coupon) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context) ([]domain.Coupon, error)
	Update(ctx context.Context, c domain.Coupon) (*domain.Coupon, error)
	Delete(ctx context.Context, id string) error
	// IncrementUsage bumps usage_count, refusing once the limit is reached.
	IncrementUsage(ctx context.Context, id string) error
}
