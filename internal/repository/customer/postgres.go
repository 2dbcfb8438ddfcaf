package customer

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const customerColumns = `id::text, email, password_hash, first_name, last_name, is_admin, addresses, default_shipping_address_id, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	addresses := c.Addresses
	if addresses == nil {
		addresses = []domain.CustomerAddress{}
	}

	const q = `
INSERT INTO customers (email, password_hash, first_name, last_name, is_admin, addresses, default_shipping_address_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + customerColumns + `
`
	out, err := scanCustomer(r.pool.QueryRow(ctx, q,
		strings.ToLower(c.Email),
		c.PasswordHash,
		c.FirstName,
		c.LastName,
		c.IsAdmin,
		addresses,
		nullable(c.DefaultShippingAddressID),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("customer repo: create email=%s error=%v", c.Email, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE email = $1
`
	out, err := scanCustomer(r.pool.QueryRow(ctx, q, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE id = $1
`
	out, err := scanCustomer(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) UpdateAddresses(ctx context.Context, id string, addresses []domain.CustomerAddress, defaultShippingID string) (*domain.Customer, error) {
	if addresses == nil {
		addresses = []domain.CustomerAddress{}
	}
	const q = `
UPDATE customers
SET addresses = $1, default_shipping_address_id = $2
WHERE id = $3
RETURNING ` + customerColumns + `
`
	out, err := scanCustomer(r.pool.QueryRow(ctx, q, addresses, nullable(defaultShippingID), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	var defaultShipping *string
	if err := row.Scan(
		&c.ID,
		&c.Email,
		&c.PasswordHash,
		&c.FirstName,
		&c.LastName,
		&c.IsAdmin,
		&c.Addresses,
		&defaultShipping,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	if defaultShipping != nil {
		c.DefaultShippingAddressID = *defaultShipping
	}
	return &c, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
