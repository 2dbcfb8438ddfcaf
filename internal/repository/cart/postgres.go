package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByCustomer(ctx context.Context, customerID string) (*domain.Cart, error) {
	const q = `
SELECT id::text, customer_id::text, total_cents, item_count, created_at, updated_at
FROM carts
WHERE customer_id = $1
`
	var cart domain.Cart
	var totalCents int64
	var itemCount int
	err := r.pool.QueryRow(ctx, q, customerID).Scan(
		&cart.ID,
		&cart.CustomerID,
		&totalCents,
		&itemCount,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := r.loadItems(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) GetOrCreate(ctx context.Context, customerID string) (*domain.Cart, error) {
	cart, err := r.GetByCustomer(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	const q = `
INSERT INTO carts (customer_id)
VALUES ($1)
ON CONFLICT (customer_id) DO UPDATE SET updated_at = now()
RETURNING id::text
`
	var cartID string
	if err := r.pool.QueryRow(ctx, q, customerID).Scan(&cartID); err != nil {
		return nil, err
	}
	return r.GetByCustomer(ctx, customerID)
}

func (r *postgresRepo) ReplaceItems(ctx context.Context, cartID string, items []domain.CartItem) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}

	for _, item := range items {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (cart_id, product_id, name, price_cents, offer_price_cents, quantity, size, image, stock_ceiling, variant_id, variant_name, variant_type)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`, cartID, item.ProductID, item.Name, item.PriceCents, item.OfferPriceCents, item.Quantity,
			item.Size, item.Image, item.StockCeiling, item.VariantID, item.VariantName, item.VariantType); err != nil {
			return err
		}
	}

	if err := updateCartTotals(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) Clear(ctx context.Context, customerID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var cartID string
	err = tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE customer_id = $1`, customerID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	if err := updateCartTotals(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) loadItems(ctx context.Context, cart *domain.Cart) error {
	const q = `
SELECT id::text, product_id::text, name, price_cents, offer_price_cents, quantity, size, image, stock_ceiling, variant_id, variant_name, variant_type, added_at
FROM cart_items
WHERE cart_id = $1
ORDER BY added_at ASC
`
	rows, err := r.pool.Query(ctx, q, cart.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.Name,
			&item.PriceCents,
			&item.OfferPriceCents,
			&item.Quantity,
			&item.Size,
			&item.Image,
			&item.StockCeiling,
			&item.VariantID,
			&item.VariantName,
			&item.VariantType,
			&item.AddedAt,
		); err != nil {
			return err
		}
		cart.Items = append(cart.Items, item)
	}
	return rows.Err()
}

// updateCartTotals refreshes the cached aggregates from the line rows so they
// can never drift from the items.
func updateCartTotals(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `
UPDATE carts
SET total_cents = COALESCE((
	SELECT SUM(COALESCE(offer_price_cents, price_cents) * quantity)
	FROM cart_items
	WHERE cart_id = $1
), 0),
    item_count = COALESCE((
	SELECT SUM(quantity)
	FROM cart_items
	WHERE cart_id = $1
), 0),
    updated_at = now()
WHERE id = $1
`, cartID)
	return err
}
