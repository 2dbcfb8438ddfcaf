package wishlist

import (
	"context"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Add(ctx context.Context, customerID, productID string) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO wishlist_items (customer_id, product_id)
VALUES ($1, $2)
ON CONFLICT (customer_id, product_id) DO NOTHING
`, customerID, productID)
	return err
}

func (r *postgresRepo) Remove(ctx context.Context, customerID, productID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM wishlist_items
WHERE customer_id = $1 AND product_id = $2
`, customerID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.WishlistItem, error) {
	const q = `
SELECT w.product_id::text, w.added_at,
       p.id::text, p.name, p.brand, p.category, p.price_cents, p.offer_price_cents, p.images, p.stock, p.created_at
FROM wishlist_items w
JOIN products p ON p.id = w.product_id
WHERE w.customer_id = $1
ORDER BY w.added_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.WishlistItem
	for rows.Next() {
		var item domain.WishlistItem
		var p domain.Product
		if err := rows.Scan(
			&item.ProductID,
			&item.AddedAt,
			&p.ID,
			&p.Name,
			&p.Brand,
			&p.Category,
			&p.PriceCents,
			&p.OfferPriceCents,
			&p.Images,
			&p.StockCount,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.Product = &p
		items = append(items, item)
	}
	return items, rows.Err()
}
