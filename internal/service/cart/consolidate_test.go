package cart

import (
	"testing"

	"storefront/internal/domain"
)

func item(productID, size string, qty, ceiling int, priceCents int64) domain.CartItem {
	return domain.CartItem{
		ProductID:    productID,
		Size:         size,
		Quantity:     qty,
		StockCeiling: ceiling,
		PriceCents:   priceCents,
	}
}

func strPtr(v string) *string {
	return &v
}

func TestMergeItemAppendsNewLine(t *testing.T) {
	items := mergeItem(nil, item("p1", "M", 2, 5, 10000))
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestMergeItemAddsQuantitiesOnSameKey(t *testing.T) {
	items := mergeItem(nil, item("p1", "M", 2, 5, 10000))
	items = mergeItem(items, item("p1", "M", 4, 5, 10000))
	if len(items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(items))
	}
	// 2+4 clamped to the ceiling of 5.
	if items[0].Quantity != 5 {
		t.Fatalf("expected clamped quantity 5, got %d", items[0].Quantity)
	}
}

func TestMergeItemCeilingLastWriteWins(t *testing.T) {
	items := mergeItem(nil, item("p1", "M", 2, 10, 10000))
	items = mergeItem(items, item("p1", "M", 1, 3, 10000))
	if items[0].Quantity != 3 {
		t.Fatalf("latest ceiling should clamp, got quantity %d", items[0].Quantity)
	}
	// A later, larger ceiling is not narrowed by the earlier small one.
	items = mergeItem(items, item("p1", "M", 4, 10, 10000))
	if items[0].Quantity != 7 {
		t.Fatalf("expected 3+4=7 under ceiling 10, got %d", items[0].Quantity)
	}
}

func TestMergeItemClampsInitialAdd(t *testing.T) {
	items := mergeItem(nil, item("p1", "M", 9, 5, 10000))
	if items[0].Quantity != 5 {
		t.Fatalf("expected initial add clamped to 5, got %d", items[0].Quantity)
	}
}

func TestMergeItemDistinguishesSizes(t *testing.T) {
	items := mergeItem(nil, item("p1", "M", 1, 5, 10000))
	items = mergeItem(items, item("p1", "L", 1, 5, 10000))
	if len(items) != 2 {
		t.Fatalf("different sizes must stay separate lines, got %d", len(items))
	}
}

func TestMergeItemDistinguishesVariants(t *testing.T) {
	red := item("p1", "M", 1, 5, 10000)
	red.VariantID = strPtr("red")
	blue := item("p1", "M", 1, 5, 10000)
	blue.VariantID = strPtr("blue")
	plain := item("p1", "M", 1, 5, 10000)

	items := mergeItem(nil, red)
	items = mergeItem(items, blue)
	items = mergeItem(items, plain)
	if len(items) != 3 {
		t.Fatalf("variant ids must split lines, got %d", len(items))
	}

	items = mergeItem(items, red)
	if len(items) != 3 {
		t.Fatalf("same variant must merge, got %d lines", len(items))
	}
}

func TestMergeItemRefreshesSnapshot(t *testing.T) {
	items := mergeItem(nil, item("p1", "M", 1, 5, 10000))
	updated := item("p1", "M", 1, 5, 12000)
	offer := int64(9000)
	updated.OfferPriceCents = &offer
	items = mergeItem(items, updated)
	if items[0].PriceCents != 12000 {
		t.Fatalf("expected refreshed price, got %d", items[0].PriceCents)
	}
	if items[0].OfferPriceCents == nil || *items[0].OfferPriceCents != 9000 {
		t.Fatalf("expected refreshed offer price, got %+v", items[0].OfferPriceCents)
	}
}

func TestSetQuantityNoClamp(t *testing.T) {
	items := mergeItem(nil, item("p1", "M", 2, 5, 10000))
	items, err := setQuantity(items, "p1", "M", nil, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Direct updates are not clamped against the stock ceiling.
	if items[0].Quantity != 50 {
		t.Fatalf("expected quantity 50, got %d", items[0].Quantity)
	}
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	items := mergeItem(nil, item("p1", "M", 2, 5, 10000))
	items, err := setQuantity(items, "p1", "M", nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(items))
	}
}

func TestSetQuantityMissingLine(t *testing.T) {
	items := mergeItem(nil, item("p1", "M", 2, 5, 10000))
	if _, err := setQuantity(items, "p1", "L", nil, 3); err != domain.ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	items := mergeItem(nil, item("p1", "M", 2, 5, 10000))
	out := removeItem(items, "p2", "M", nil)
	if len(out) != 1 {
		t.Fatalf("remove of absent key must not change cart, got %d lines", len(out))
	}
	cart := domain.Cart{Items: out}
	if cart.TotalCents() != 20000 {
		t.Fatalf("total changed by no-op remove: %d", cart.TotalCents())
	}
}

func TestTotalsExample(t *testing.T) {
	// Empty cart, add qty 2 at 100.00 with stock 5: total 200.00, count 2.
	items := mergeItem(nil, item("P1", "M", 2, 5, 10000))
	cart := domain.Cart{Items: items}
	if cart.TotalCents() != 20000 {
		t.Fatalf("expected total 20000, got %d", cart.TotalCents())
	}
	if cart.ItemCount() != 2 {
		t.Fatalf("expected count 2, got %d", cart.ItemCount())
	}

	// Add qty 4 on the same key: merged quantity clamps to 5, total 500.00.
	cart.Items = mergeItem(cart.Items, item("P1", "M", 4, 5, 10000))
	if cart.TotalCents() != 50000 {
		t.Fatalf("expected total 50000, got %d", cart.TotalCents())
	}
	if cart.ItemCount() != 5 {
		t.Fatalf("expected count 5, got %d", cart.ItemCount())
	}
}

func TestTotalPrefersOfferPrice(t *testing.T) {
	line := item("p1", "M", 3, 10, 10000)
	offer := int64(7500)
	line.OfferPriceCents = &offer
	cart := domain.Cart{Items: mergeItem(nil, line)}
	if cart.TotalCents() != 3*7500 {
		t.Fatalf("expected offer price in total, got %d", cart.TotalCents())
	}
}

func TestTotalInvariantUnderPermutations(t *testing.T) {
	// The same final item set must yield the same total regardless of how it
	// was reached.
	build := func(ops func(items []domain.CartItem) []domain.CartItem) int64 {
		items := ops(nil)
		return domain.Cart{Items: items}.TotalCents()
	}

	a := build(func(items []domain.CartItem) []domain.CartItem {
		items = mergeItem(items, item("p1", "M", 2, 10, 1000))
		items = mergeItem(items, item("p2", "S", 1, 10, 2500))
		items = mergeItem(items, item("p1", "M", 3, 10, 1000))
		return items
	})
	b := build(func(items []domain.CartItem) []domain.CartItem {
		items = mergeItem(items, item("p2", "S", 1, 10, 2500))
		items = mergeItem(items, item("p1", "M", 5, 10, 1000))
		return items
	})
	if a != b {
		t.Fatalf("totals diverged: %d vs %d", a, b)
	}
}
