package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/cache"
	"storefront/internal/domain"
)

type stubRepo struct {
	cart         *domain.Cart
	getErr       error
	replaceErr   error
	lastReplaced []domain.CartItem
	cleared      bool
}

func (s *stubRepo) GetByCustomer(_ context.Context, _ string) (*domain.Cart, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.cart, nil
}

func (s *stubRepo) GetOrCreate(_ context.Context, customerID string) (*domain.Cart, error) {
	if s.cart == nil {
		s.cart = &domain.Cart{ID: "cart-1", CustomerID: customerID}
	}
	return s.cart, nil
}

func (s *stubRepo) ReplaceItems(_ context.Context, _ string, items []domain.CartItem) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.lastReplaced = items
	s.cart.Items = items
	return nil
}

func (s *stubRepo) Clear(_ context.Context, _ string) error {
	s.cleared = true
	if s.cart != nil {
		s.cart.Items = nil
	}
	return nil
}

type stubProducts struct {
	product *domain.Product
	err     error
}

func (s *stubProducts) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

type stubCatalog struct {
	byID map[string]*domain.Product
}

func (s *stubCatalog) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

type stubCache struct {
	cart    *domain.Cart
	getErr  error
	deleted int
	sets    int
}

func (s *stubCache) Get(_ context.Context, _ string) (*domain.Cart, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return s.cart, nil
}

func (s *stubCache) Set(_ context.Context, _ string, cart *domain.Cart) error {
	s.sets++
	s.cart = cart
	return nil
}

func (s *stubCache) Delete(_ context.Context, _ string) error {
	s.deleted++
	s.cart = nil
	return nil
}

func testProduct() *domain.Product {
	return &domain.Product{
		ID:         "p1",
		Name:       "Tee",
		PriceCents: 1999,
		Images:     []string{"https://cdn.example/tee.jpg"},
		SizeStocks: []domain.SizeStock{{Size: "M", Stock: 5}, {Size: "L", Stock: 0}},
		StockCount: 5,
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc := New(&stubRepo{}, &stubProducts{product: testProduct()}, nil, nil)
	if _, err := svc.AddItem(context.Background(), "u1", AddInput{ProductID: "p1", Size: "M", Quantity: 0}); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestAddItemRequiresProductAndSize(t *testing.T) {
	svc := New(&stubRepo{}, &stubProducts{product: testProduct()}, nil, nil)
	if _, err := svc.AddItem(context.Background(), "u1", AddInput{Size: "M", Quantity: 1}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation without productId, got %v", err)
	}
	if _, err := svc.AddItem(context.Background(), "u1", AddInput{ProductID: "p1", Quantity: 1}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation without size, got %v", err)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := New(&stubRepo{}, &stubProducts{err: domain.ErrNotFound}, nil, nil)
	if _, err := svc.AddItem(context.Background(), "u1", AddInput{ProductID: "nope", Size: "M", Quantity: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddItemOutOfStockSize(t *testing.T) {
	svc := New(&stubRepo{}, &stubProducts{product: testProduct()}, nil, nil)
	if _, err := svc.AddItem(context.Background(), "u1", AddInput{ProductID: "p1", Size: "L", Quantity: 1}); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for empty size, got %v", err)
	}
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, &stubProducts{product: testProduct()}, nil, nil)
	if _, err := svc.AddItem(context.Background(), "u1", AddInput{ProductID: "p1", Size: "M", Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.lastReplaced) != 1 {
		t.Fatalf("expected one line, got %d", len(repo.lastReplaced))
	}
	line := repo.lastReplaced[0]
	if line.Name != "Tee" || line.PriceCents != 1999 || line.StockCeiling != 5 || line.Image == "" {
		t.Fatalf("snapshot not taken from product: %+v", line)
	}
}

func TestAddItemMergesAndInvalidatesCache(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: "cart-1", CustomerID: "u1"}}
	cc := &stubCache{}
	svc := New(repo, &stubProducts{product: testProduct()}, cc, nil)

	for i := 0; i < 2; i++ {
		if _, err := svc.AddItem(context.Background(), "u1", AddInput{ProductID: "p1", Size: "M", Quantity: 3}); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if len(repo.lastReplaced) != 1 {
		t.Fatalf("expected merged single line, got %d", len(repo.lastReplaced))
	}
	if repo.lastReplaced[0].Quantity != 5 {
		t.Fatalf("expected 3+3 clamped to 5, got %d", repo.lastReplaced[0].Quantity)
	}
	if cc.deleted == 0 {
		t.Fatalf("expected cache invalidation on write")
	}
}

func TestGetReturnsEmptyCartWhenAbsent(t *testing.T) {
	svc := New(&stubRepo{getErr: domain.ErrNotFound}, &stubProducts{}, nil, nil)
	cart, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.CustomerID != "u1" || len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestGetUsesCache(t *testing.T) {
	cached := &domain.Cart{ID: "cart-1", CustomerID: "u1"}
	repo := &stubRepo{getErr: errors.New("db should not be hit")}
	svc := New(repo, &stubProducts{}, &stubCache{cart: cached}, nil)
	cart, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart != cached {
		t.Fatalf("expected cached cart, got %+v", cart)
	}
}

func TestGetFillsCacheOnMiss(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: "cart-1", CustomerID: "u1"}}
	cc := &stubCache{}
	svc := New(repo, &stubProducts{}, cc, nil)
	if _, err := svc.Get(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cc.sets != 1 {
		t.Fatalf("expected cache fill, sets=%d", cc.sets)
	}
}

func TestUpdateQuantityMissingCart(t *testing.T) {
	svc := New(&stubRepo{getErr: domain.ErrNotFound}, &stubProducts{}, nil, nil)
	if _, err := svc.UpdateQuantity(context.Background(), "u1", "p1", "M", nil, 2); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRemoveItemAbsentLineIsNoop(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: "cart-1", CustomerID: "u1", Items: []domain.CartItem{
		{ProductID: "p1", Size: "M", Quantity: 1, PriceCents: 1000},
	}}}
	svc := New(repo, &stubProducts{}, nil, nil)
	cart, err := svc.RemoveItem(context.Background(), "u1", "p9", "M", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("no-op remove changed the cart: %+v", cart.Items)
	}
	if repo.lastReplaced != nil {
		t.Fatalf("no-op remove should not write")
	}
}

func TestMergeGuestCart(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: "cart-1", CustomerID: "u1", Items: []domain.CartItem{
		{ProductID: "p1", Size: "M", Quantity: 2, StockCeiling: 5, PriceCents: 1999},
	}}}
	catalog := &stubCatalog{byID: map[string]*domain.Product{
		"p1": testProduct(),
		"p2": {ID: "p2", Name: "Hoodie", PriceCents: 4999, SizeStocks: []domain.SizeStock{{Size: "S", Stock: 3}}, StockCount: 3},
	}}
	svc := New(repo, catalog, nil, nil)

	guest := []MergeLine{
		{ProductID: "p1", Size: "M", Quantity: 4},
		{ProductID: "p1", Size: "L", Quantity: 1}, // size sold out
		{ProductID: "p2", Size: "S", Quantity: 1},
		{ProductID: "p3", Size: "S", Quantity: 2}, // product deleted since the guest added it
		{ProductID: "p2", Size: "S", Quantity: 0},
	}
	if _, err := svc.Merge(context.Background(), "u1", guest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.lastReplaced) != 2 {
		t.Fatalf("expected 2 lines after merge, got %d", len(repo.lastReplaced))
	}
	if repo.lastReplaced[0].Quantity != 5 {
		t.Fatalf("expected merged quantity clamped to 5, got %d", repo.lastReplaced[0].Quantity)
	}
	if repo.lastReplaced[1].Quantity != 1 {
		t.Fatalf("expected hoodie line quantity 1, got %d", repo.lastReplaced[1].Quantity)
	}
}

func TestMergeSnapshotsFromLiveProduct(t *testing.T) {
	// The guest payload carries only identity keys and quantities. Whatever
	// price or ceiling the client held locally never reaches the cart: the
	// merged line is rebuilt from the catalog and clamped to real stock.
	repo := &stubRepo{}
	catalog := &stubCatalog{byID: map[string]*domain.Product{"p1": testProduct()}}
	svc := New(repo, catalog, nil, nil)

	if _, err := svc.Merge(context.Background(), "u1", []MergeLine{{ProductID: "p1", Size: "M", Quantity: 9}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.lastReplaced) != 1 {
		t.Fatalf("expected one line, got %d", len(repo.lastReplaced))
	}
	line := repo.lastReplaced[0]
	if line.Name != "Tee" || line.PriceCents != 1999 || line.StockCeiling != 5 || line.Image == "" {
		t.Fatalf("line not rebuilt from product: %+v", line)
	}
	if line.Quantity != 5 {
		t.Fatalf("expected quantity clamped to live stock 5, got %d", line.Quantity)
	}
}

func TestClearInvalidatesCache(t *testing.T) {
	repo := &stubRepo{cart: &domain.Cart{ID: "cart-1", CustomerID: "u1"}}
	cc := &stubCache{cart: repo.cart}
	svc := New(repo, &stubProducts{}, cc, nil)
	if err := svc.Clear(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.cleared || cc.deleted == 0 {
		t.Fatalf("expected clear + invalidation, cleared=%v deleted=%d", repo.cleared, cc.deleted)
	}
}
