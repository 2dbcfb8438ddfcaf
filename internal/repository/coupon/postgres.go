package coupon

import (
	"context"
	"errors"
	"strings"

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

const couponColumns = `id::text, code, discount_type, discount_value, min_order_cents, expires_at, usage_limit, usage_count, active, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	const q = `
INSERT INTO coupons (code, discount_type, discount_value, min_order_cents, expires_at, usage_limit, active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + couponColumns + `
`
	row := r.pool.QueryRow(ctx, q,
		strings.ToUpper(strings.TrimSpace(c.Code)), c.DiscountType, c.DiscountValue,
		c.MinOrderCents, c.ExpiresAt, c.UsageLimit, c.Active)
	return scanCoupon(row)
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	const q = `
SELECT ` + couponColumns + `
FROM coupons
WHERE code = $1
`
	row := r.pool.QueryRow(ctx, q, strings.ToUpper(strings.TrimSpace(code)))
	coupon, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return coupon, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Coupon, error) {
	const q = `
SELECT ` + couponColumns + `
FROM coupons
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, *coupon)
	}
	return coupons, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Coupon) (*domain.Coupon, error) {
	const q = `
UPDATE coupons
SET discount_type = $1, discount_value = $2, min_order_cents = $3,
    expires_at = $4, usage_limit = $5, active = $6
WHERE id = $7
RETURNING ` + couponColumns + `
`
	row := r.pool.QueryRow(ctx, q,
		c.DiscountType, c.DiscountValue, c.MinOrderCents, c.ExpiresAt, c.UsageLimit, c.Active, c.ID)
	coupon, err := scanCoupon(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return coupon, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) IncrementUsage(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE coupons
SET usage_count = usage_count + 1
WHERE id = $1 AND (usage_limit = 0 OR usage_count < usage_limit)
`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCouponInvalid
	}
	return nil
}

func scanCoupon(row pgx.Row) (*domain.Coupon, error) {
	var c domain.Coupon
	if err := row.Scan(
		&c.ID,
		&c.Code,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MinOrderCents,
		&c.ExpiresAt,
		&c.UsageLimit,
		&c.UsageCount,
		&c.Active,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
