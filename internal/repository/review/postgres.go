package review

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

func (r *postgresRepo) Upsert(ctx context.Context, in domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (product_id, customer_id, rating, comment)
VALUES ($1, $2, $3, $4)
ON CONFLICT (product_id, customer_id)
DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, updated_at = now()
RETURNING id::text, product_id::text, customer_id::text, rating, comment, created_at, updated_at
`
	var out domain.Review
	if err := r.pool.QueryRow(ctx, q, in.ProductID, in.CustomerID, in.Rating, in.Comment).Scan(
		&out.ID,
		&out.ProductID,
		&out.CustomerID,
		&out.Rating,
		&out.Comment,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	const q = `
SELECT r.id::text, r.product_id::text, r.customer_id::text,
       TRIM(c.first_name || ' ' || c.last_name),
       r.rating, r.comment, r.created_at, r.updated_at
FROM reviews r
JOIN customers c ON c.id = r.customer_id
WHERE r.product_id = $1
ORDER BY r.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(
			&rev.ID,
			&rev.ProductID,
			&rev.CustomerID,
			&rev.CustomerName,
			&rev.Rating,
			&rev.Comment,
			&rev.CreatedAt,
			&rev.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *postgresRepo) Delete(ctx context.Context, productID, customerID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM reviews
WHERE product_id = $1 AND customer_id = $2
`, productID, customerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
