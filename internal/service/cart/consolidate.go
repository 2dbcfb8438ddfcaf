package cart

import "storefront/internal/domain"

// The consolidation helpers keep the invariant of at most one line per
// (productId, size, variantId) identity key. They are pure: callers persist
// the returned slice wholesale.

// mergeItem folds incoming into items. On a key match quantities are added
// and the result is clamped to the incoming item's stock ceiling. The latest
// supplied ceiling wins, it is not min/max-accumulated with earlier ones. The
// snapshot fields (name, prices, image) are refreshed from incoming as well.
func mergeItem(items []domain.CartItem, incoming domain.CartItem) []domain.CartItem {
	for i := range items {
		if !items[i].SameKey(incoming) {
			continue
		}
		merged := incoming
		merged.ID = items[i].ID
		merged.AddedAt = items[i].AddedAt
		merged.Quantity = clamp(items[i].Quantity+incoming.Quantity, incoming.StockCeiling)
		items[i] = merged
		return items
	}
	incoming.Quantity = clamp(incoming.Quantity, incoming.StockCeiling)
	return append(items, incoming)
}

// setQuantity sets the quantity of the line matching the identity key without
// clamping. A quantity of zero or less removes the line instead.
func setQuantity(items []domain.CartItem, productID, size string, variantID *string, quantity int) ([]domain.CartItem, error) {
	if quantity <= 0 {
		return removeItem(items, productID, size, variantID), nil
	}
	key := domain.CartItem{ProductID: productID, Size: size, VariantID: variantID}
	for i := range items {
		if items[i].SameKey(key) {
			items[i].Quantity = quantity
			return items, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

// removeItem deletes the line matching the identity key. Removing an absent
// line is a no-op, not an error.
func removeItem(items []domain.CartItem, productID, size string, variantID *string) []domain.CartItem {
	key := domain.CartItem{ProductID: productID, Size: size, VariantID: variantID}
	for i := range items {
		if items[i].SameKey(key) {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

func clamp(quantity, ceiling int) int {
	if ceiling > 0 && quantity > ceiling {
		return ceiling
	}
	return quantity
}
