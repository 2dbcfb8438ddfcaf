package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, name, brand, description, category, price_cents, offer_price_cents, images, stock, created_at`

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
`
	var conds []string
	var args []interface{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR brand ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) > 0 {
		q += "WHERE " + strings.Join(conds, " AND ") + "\n"
	}
	q += "ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range products {
		if err := r.loadSizeStocks(ctx, &products[i]); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	row := r.pool.QueryRow(ctx, q, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadSizeStocks(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	images := in.Images
	if images == nil {
		images = []string{}
	}
	var id string
	err = tx.QueryRow(ctx, `
INSERT INTO products (name, brand, description, category, price_cents, offer_price_cents, images)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id::text
`, in.Name, in.Brand, in.Description, in.Category, in.PriceCents, in.OfferPriceCents, images).Scan(&id)
	if err != nil {
		return nil, err
	}

	if err := replaceSizeStocks(ctx, tx, id, in.SizeStocks); err != nil {
		return nil, err
	}
	if err := recomputeAggregate(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Update(ctx context.Context, id string, in CreateProductInput) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	images := in.Images
	if images == nil {
		images = []string{}
	}
	cmd, err := tx.Exec(ctx, `
UPDATE products
SET name = $1, brand = $2, description = $3, category = $4,
    price_cents = $5, offer_price_cents = $6, images = $7
WHERE id = $8
`, in.Name, in.Brand, in.Description, in.Category, in.PriceCents, in.OfferPriceCents, images, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	if err := replaceSizeStocks(ctx, tx, id, in.SizeStocks); err != nil {
		return nil, err
	}
	if err := recomputeAggregate(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustSizeStock is the stock-reconciliation write path. The size row is
// updated with a single conditional statement so concurrent decrements cannot
// lose updates, and the cached products.stock aggregate is recomputed from
// the size rows before the transaction commits.
func (r *postgresRepo) AdjustSizeStock(ctx context.Context, productID, size string, delta int) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	// A missing size row is not an error: the aggregate is still recomputed
	// so the invariant holds for whatever rows do exist.
	if _, err := tx.Exec(ctx, `
UPDATE product_size_stocks
SET stock = GREATEST(stock + $3, 0)
WHERE product_id = $1 AND size = $2
`, productID, size, delta); err != nil {
		return nil, err
	}

	if err := recomputeAggregate(ctx, tx, productID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, productID)
}

func (r *postgresRepo) loadSizeStocks(ctx context.Context, p *domain.Product) error {
	const q = `
SELECT size, stock
FROM product_size_stocks
WHERE product_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, q, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ss domain.SizeStock
		if err := rows.Scan(&ss.Size, &ss.Stock); err != nil {
			return err
		}
		p.SizeStocks = append(p.SizeStocks, ss)
	}
	return rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Description,
		&p.Category,
		&p.PriceCents,
		&p.OfferPriceCents,
		&p.Images,
		&p.StockCount,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func replaceSizeStocks(ctx context.Context, tx pgx.Tx, productID string, stocks []domain.SizeStock) error {
	if _, err := tx.Exec(ctx, `DELETE FROM product_size_stocks WHERE product_id = $1`, productID); err != nil {
		return err
	}
	for i, ss := range stocks {
		stock := ss.Stock
		if stock < 0 {
			stock = 0
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO product_size_stocks (product_id, size, stock, position)
VALUES ($1, $2, $3, $4)
`, productID, ss.Size, stock, i); err != nil {
			return err
		}
	}
	return nil
}

// recomputeAggregate keeps products.stock equal to the sum of its size rows.
func recomputeAggregate(ctx context.Context, tx pgx.Tx, productID string) error {
	_, err := tx.Exec(ctx, `
UPDATE products
SET stock = COALESCE((
	SELECT SUM(stock)
	FROM product_size_stocks
	WHERE product_id = $1
), 0)
WHERE id = $1
`, productID)
	return err
}
