package stock

import (
	"context"
	"io"
	"log"

	"storefront/internal/domain"
)

// Service reconciles a product's size-indexed stock against placed and
// cancelled orders. The heavy lifting happens inside the repository, which
// applies the delta and recomputes the cached aggregate in one transaction,
// so two concurrent orders on the same size cannot lose a decrement.
type Service struct {
	products productRepo
	logger   *log.Logger
}

type productRepo interface {
	AdjustSizeStock(ctx context.Context, productID, size string, delta int) (*domain.Product, error)
}

func New(products productRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{products: products, logger: logger}
}

// Reduce decrements the stock of one (product, size) pair by quantity,
// flooring at zero. A quantity larger than the available stock empties the
// size silently; no backorder is signalled. An unknown size leaves the ledger
// untouched. Returns the product after the update.
func (s *Service) Reduce(ctx context.Context, productID, size string, quantity int) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := s.products.AdjustSizeStock(ctx, productID, size, -quantity)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("stock: reduced product=%s size=%s qty=%d remaining=%d", productID, size, quantity, product.StockFor(size))
	return product, nil
}

// Restore returns previously reserved stock to a size, used when an order is
// cancelled before fulfilment.
func (s *Service) Restore(ctx context.Context, productID, size string, quantity int) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	return s.products.AdjustSizeStock(ctx, productID, size, quantity)
}
