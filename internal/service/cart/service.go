package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront/internal/cache"
	"storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Service owns the consolidated cart of each customer. All mutations go
// through the consolidation helpers and are persisted wholesale; the cache is
// invalidated after every write.
type Service struct {
	repo     cartRepo
	products productRepo
	cache    cache.CartCache
	logger   *log.Logger
	sfg      singleflight.Group
}

type cartRepo interface {
	GetByCustomer(ctx context.Context, customerID string) (*domain.Cart, error)
	GetOrCreate(ctx context.Context, customerID string) (*domain.Cart, error)
	ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error
	Clear(ctx context.Context, customerID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, products productRepo, cartCache cache.CartCache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, products: products, cache: cartCache, logger: logger}
}

// AddInput describes an add-to-cart request. The variant fields are optional
// and chosen client-side.
type AddInput struct {
	ProductID   string  `json:"productId"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity"`
	VariantID   *string `json:"variantId,omitempty"`
	VariantName string  `json:"variantName,omitempty"`
	VariantType string  `json:"variantType,omitempty"`
}

// Get returns the customer's cart, an empty one when none exists yet.
// Concurrent cache misses for the same customer are collapsed.
func (s *Service) Get(ctx context.Context, customerID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(customerID, func() (interface{}, error) {
		if s.cache != nil {
			cached, err := s.cache.Get(ctx, customerID)
			if err == nil {
				return cached, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				s.logger.Printf("cart cache get: %v", err)
			}
		}

		cart, err := s.repo.GetByCustomer(ctx, customerID)
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Cart{CustomerID: customerID}, nil
		}
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			if err := s.cache.Set(ctx, customerID, cart); err != nil {
				s.logger.Printf("cart cache set: %v", err)
			}
		}
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// AddItem snapshots the live product and merges it into the cart. The stock
// ceiling of the snapshot is the product's current stock for the requested
// size; the merged quantity is clamped to it.
func (s *Service) AddItem(ctx context.Context, customerID string, in AddInput) (*domain.Cart, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: productId required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Size) == "" {
		return nil, fmt.Errorf("%w: size required", domain.ErrValidation)
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	incoming, ok := snapshotLine(product, in.Size, in.Quantity, in.VariantID, in.VariantName, in.VariantType)
	if !ok {
		return nil, domain.ErrInvalidQuantity
	}

	cart, err := s.repo.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceItems(ctx, cart.ID, mergeItem(cart.Items, incoming)); err != nil {
		return nil, err
	}

	s.invalidate(customerID)
	return s.repo.GetByCustomer(ctx, customerID)
}

// UpdateQuantity sets the quantity of one line directly, without re-checking
// stock. Quantity zero or below removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, customerID, productID, size string, variantID *string, quantity int) (*domain.Cart, error) {
	cart, err := s.repo.GetByCustomer(ctx, customerID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := setQuantity(cart.Items, productID, size, variantID, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceItems(ctx, cart.ID, items); err != nil {
		return nil, err
	}

	s.invalidate(customerID)
	return s.repo.GetByCustomer(ctx, customerID)
}

// RemoveItem deletes one line. Removing a line that is not there leaves the
// cart untouched.
func (s *Service) RemoveItem(ctx context.Context, customerID, productID, size string, variantID *string) (*domain.Cart, error) {
	cart, err := s.repo.GetByCustomer(ctx, customerID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.Cart{CustomerID: customerID}, nil
	}
	if err != nil {
		return nil, err
	}

	items := removeItem(cart.Items, productID, size, variantID)
	if len(items) == len(cart.Items) {
		return cart, nil
	}
	if err := s.repo.ReplaceItems(ctx, cart.ID, items); err != nil {
		return nil, err
	}

	s.invalidate(customerID)
	return s.repo.GetByCustomer(ctx, customerID)
}

// MergeLine identifies one guest cart line. Only the identity key and the
// quantity cross the wire; the snapshot fields are re-read from the live
// product on merge, never taken from the client.
type MergeLine struct {
	ProductID string  `json:"productId"`
	Size      string  `json:"size"`
	VariantID *string `json:"variantId,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Merge folds a guest cart, kept client-side before login, into the
// customer's cart. Each guest line replays through the same snapshot and
// merge rule as a live add; lines without a positive quantity, and lines
// whose product has disappeared or is out of stock for the size, are
// dropped.
func (s *Service) Merge(ctx context.Context, customerID string, guestLines []MergeLine) (*domain.Cart, error) {
	cart, err := s.repo.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	items := cart.Items
	for _, line := range guestLines {
		if line.Quantity <= 0 || strings.TrimSpace(line.ProductID) == "" || strings.TrimSpace(line.Size) == "" {
			continue
		}
		product, err := s.products.GetByID(ctx, line.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		incoming, ok := snapshotLine(product, line.Size, line.Quantity, line.VariantID, "", "")
		if !ok {
			continue
		}
		items = mergeItem(items, incoming)
	}
	if err := s.repo.ReplaceItems(ctx, cart.ID, items); err != nil {
		return nil, err
	}

	s.invalidate(customerID)
	return s.repo.GetByCustomer(ctx, customerID)
}

// Clear empties the cart, keeping the cart row. Used after checkout.
func (s *Service) Clear(ctx context.Context, customerID string) error {
	if err := s.repo.Clear(ctx, customerID); err != nil {
		return err
	}
	s.invalidate(customerID)
	return nil
}

// snapshotLine freezes the live product into a cart line. It reports false
// when the product has no stock left for the size, in which case no line
// should be added.
func snapshotLine(product *domain.Product, size string, quantity int, variantID *string, variantName, variantType string) (domain.CartItem, bool) {
	ceiling := product.StockFor(size)
	if ceiling <= 0 {
		return domain.CartItem{}, false
	}
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	return domain.CartItem{
		ProductID:       product.ID,
		Name:            product.Name,
		PriceCents:      product.PriceCents,
		OfferPriceCents: product.OfferPriceCents,
		Quantity:        quantity,
		Size:            size,
		Image:           image,
		StockCeiling:    ceiling,
		VariantID:       variantID,
		VariantName:     variantName,
		VariantType:     variantType,
	}, true
}

func (s *Service) invalidate(customerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(context.Background(), customerID); err != nil {
		s.logger.Printf("cart cache invalidate: %v", err)
	}
}
