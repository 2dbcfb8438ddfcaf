package review

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	reviewrepo "storefront/internal/repository/review"
)

type Service struct {
	repo     reviewrepo.Repository
	products productGetter
}

type productGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo reviewrepo.Repository, products productGetter) *Service {
	return &Service{repo: repo, products: products}
}

// Write stores the customer's review of a product, replacing any earlier one.
func (s *Service) Write(ctx context.Context, customerID, productID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, domain.Review{
		ProductID:  productID,
		CustomerID: customerID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	})
}

func (s *Service) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *Service) Delete(ctx context.Context, productID, customerID string) error {
	return s.repo.Delete(ctx, productID, customerID)
}
