package product

import (
	"context"

	"storefront/internal/domain"
)

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Category string
	Search   string
}

type CreateProductInput struct {
	Name            string
	Brand           string
	Description     string
	Category        string
	PriceCents      int64
	OfferPriceCents *int64
	Images          []string
	SizeStocks      []domain.SizeStock
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in CreateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// AdjustSizeStock applies a signed stock delta to one size row atomically,
	// flooring at zero, and recomputes the cached aggregate in the same
	// transaction. The updated product is returned.
	AdjustSizeStock(ctx context.Context, productID, size string, delta int) (*domain.Product, error)
}
