package domain

import "time"

// SizeStock is the per-size stock ledger entry on a product. The slice order
// is the declaration order and is preserved across updates.
type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Product is a catalog entry. StockCount caches the sum of SizeStocks and is
// recomputed in the same transaction as any size mutation.
type Product struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Brand           string      `json:"brand,omitempty"`
	Description     string      `json:"description,omitempty"`
	Category        string      `json:"category,omitempty"`
	PriceCents      int64       `json:"priceCents"`
	OfferPriceCents *int64      `json:"offerPriceCents,omitempty"`
	Images          []string    `json:"images,omitempty"`
	SizeStocks      []SizeStock `json:"sizeStocks"`
	StockCount      int         `json:"stock"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// StockFor returns the stock for one size, zero when the size is not declared.
func (p Product) StockFor(size string) int {
	for _, ss := range p.SizeStocks {
		if ss.Size == size {
			return ss.Stock
		}
	}
	return 0
}
