package product

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	"storefront/internal/migrate"
)

func integrationPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("ping db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE product_size_stocks, products RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func TestAdjustSizeStock_Integration(t *testing.T) {
	ctx := context.Background()
	pool := integrationPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, log.New(io.Discard, "", 0))

	created, err := repo.Create(ctx, CreateProductInput{
		Name:       "Integration Shoe",
		PriceCents: 5000,
		SizeStocks: []domain.SizeStock{
			{Size: "M", Stock: 3},
			{Size: "L", Stock: 2},
		},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.StockCount != 5 {
		t.Fatalf("aggregate after create = %d, want 5", created.StockCount)
	}

	// Reducing beyond the available amount floors at zero.
	updated, err := repo.AdjustSizeStock(ctx, created.ID, "M", -5)
	if err != nil {
		t.Fatalf("adjust size stock: %v", err)
	}
	if got := updated.StockFor("M"); got != 0 {
		t.Fatalf("size M stock = %d, want 0", got)
	}
	if updated.StockCount != 2 {
		t.Fatalf("aggregate = %d, want 2", updated.StockCount)
	}

	// Restock.
	updated, err = repo.AdjustSizeStock(ctx, created.ID, "M", 4)
	if err != nil {
		t.Fatalf("restock: %v", err)
	}
	if got := updated.StockFor("M"); got != 4 {
		t.Fatalf("size M stock = %d, want 4", got)
	}
	if updated.StockCount != 6 {
		t.Fatalf("aggregate = %d, want 6", updated.StockCount)
	}

	// Unknown size leaves stocks untouched but is not an error.
	updated, err = repo.AdjustSizeStock(ctx, created.ID, "XXL", -1)
	if err != nil {
		t.Fatalf("adjust unknown size: %v", err)
	}
	if updated.StockCount != 6 {
		t.Fatalf("aggregate after unknown size = %d, want 6", updated.StockCount)
	}

	if _, err := repo.AdjustSizeStock(ctx, "00000000-0000-0000-0000-000000000000", "M", -1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown product, got %v", err)
	}
}

func TestListAndSearch_Integration(t *testing.T) {
	ctx := context.Background()
	pool := integrationPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, log.New(io.Discard, "", 0))

	for _, in := range []CreateProductInput{
		{Name: "Trail Runner", Category: "shoes", PriceCents: 7999},
		{Name: "Road Runner", Category: "shoes", PriceCents: 8999},
		{Name: "Everyday Tee", Category: "clothing", PriceCents: 1999},
	} {
		if _, err := repo.Create(ctx, in); err != nil {
			t.Fatalf("create %s: %v", in.Name, err)
		}
	}

	shoes, err := repo.List(ctx, ListFilter{Category: "shoes"})
	if err != nil {
		t.Fatalf("list shoes: %v", err)
	}
	if len(shoes) != 2 {
		t.Fatalf("expected 2 shoes, got %d", len(shoes))
	}

	found, err := repo.List(ctx, ListFilter{Search: "runner"})
	if err != nil {
		t.Fatalf("search runner: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches for runner, got %d", len(found))
	}
}
