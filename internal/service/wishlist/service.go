package wishlist

import (
	"context"

	"storefront/internal/domain"
	wishlistrepo "storefront/internal/repository/wishlist"
)

type Service struct {
	repo     wishlistrepo.Repository
	products productGetter
}

type productGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo wishlistrepo.Repository, products productGetter) *Service {
	return &Service{repo: repo, products: products}
}

// Add saves a product for later. Saving an already-saved product is a no-op.
func (s *Service) Add(ctx context.Context, customerID, productID string) error {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.Add(ctx, customerID, productID)
}

func (s *Service) Remove(ctx context.Context, customerID, productID string) error {
	return s.repo.Remove(ctx, customerID, productID)
}

func (s *Service) List(ctx context.Context, customerID string) ([]domain.WishlistItem, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}
