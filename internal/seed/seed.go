package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
)

type sizeSeed struct {
	Size  string
	Stock int
}

type productSeed struct {
	Name            string
	Brand           string
	Description     string
	Category        string
	PriceCents      int64
	OfferPriceCents *int64
	Sizes           []sizeSeed
}

// Apply inserts basic seed data for manual testing. It is idempotent; rerunning
// updates rather than duplicates.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "admin@storefront.local", "Admin123!"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	offer := int64(4999)
	products := []productSeed{
		{
			Name:            "Trail Runner",
			Brand:           "Ridgeline",
			Description:     "Lightweight trail running shoe with a grippy outsole",
			Category:        "shoes",
			PriceCents:      7999,
			OfferPriceCents: &offer,
			Sizes: []sizeSeed{
				{Size: "40", Stock: 10},
				{Size: "42", Stock: 6},
				{Size: "44", Stock: 3},
			},
		},
		{
			Name:        "Everyday Tee",
			Brand:       "Plainwear",
			Description: "Soft cotton tee",
			Category:    "clothing",
			PriceCents:  1999,
			Sizes: []sizeSeed{
				{Size: "S", Stock: 20},
				{Size: "M", Stock: 25},
				{Size: "L", Stock: 15},
			},
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	if err := upsertCoupon(ctx, pool, "WELCOME10", domain.DiscountPercent, 10, 2500); err != nil {
		return fmt.Errorf("upsert coupon: %w", err)
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO customers (email, password_hash, first_name, is_admin)
VALUES ($1, $2, 'Admin', TRUE)
ON CONFLICT (email) DO UPDATE SET is_admin = TRUE
`
	_, err = pool.Exec(ctx, q, email, string(hashed))
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `SELECT id::text FROM products WHERE name = $1`, p.Name).Scan(&id)
	if err != nil {
		err = tx.QueryRow(ctx, `
INSERT INTO products (name, brand, description, category, price_cents, offer_price_cents)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text
`, p.Name, p.Brand, p.Description, p.Category, p.PriceCents, p.OfferPriceCents).Scan(&id)
		if err != nil {
			return err
		}
	}

	for i, s := range p.Sizes {
		_, err = tx.Exec(ctx, `
INSERT INTO product_size_stocks (product_id, size, stock, position)
VALUES ($1, $2, $3, $4)
ON CONFLICT (product_id, size) DO UPDATE SET stock = EXCLUDED.stock, position = EXCLUDED.position
`, id, s.Size, s.Stock, i)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
UPDATE products SET stock = (
    SELECT COALESCE(SUM(stock), 0) FROM product_size_stocks WHERE product_id = $1
) WHERE id = $1
`, id)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func upsertCoupon(ctx context.Context, pool *pgxpool.Pool, code, kind string, value, minOrder int64) error {
	const q = `
INSERT INTO coupons (code, discount_type, discount_value, min_order_cents, active)
VALUES ($1, $2, $3, $4, TRUE)
ON CONFLICT (code) DO UPDATE
SET discount_type = EXCLUDED.discount_type,
    discount_value = EXCLUDED.discount_value,
    min_order_cents = EXCLUDED.min_order_cents,
    active = TRUE
`
	_, err := pool.Exec(ctx, q, code, kind, value, minOrder)
	return err
}
