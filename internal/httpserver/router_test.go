package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	couponsvc "storefront/internal/service/coupon"
	customersvc "storefront/internal/service/customer"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCartSvc struct {
	cart    *domain.Cart
	err     error
	lastAdd cartsvc.AddInput
	merged  []cartsvc.MergeLine
	cleared bool
}

func (s *stubCartSvc) Get(_ context.Context, _ string) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartSvc) AddItem(_ context.Context, _ string, in cartsvc.AddInput) (*domain.Cart, error) {
	s.lastAdd = in
	return s.cart, s.err
}

func (s *stubCartSvc) UpdateQuantity(_ context.Context, _, _, _ string, _ *string, _ int) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartSvc) RemoveItem(_ context.Context, _, _, _ string, _ *string) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartSvc) Merge(_ context.Context, _ string, lines []cartsvc.MergeLine) (*domain.Cart, error) {
	s.merged = lines
	return s.cart, s.err
}

func (s *stubCartSvc) Clear(_ context.Context, _ string) error {
	s.cleared = true
	return s.err
}

type stubProductSvc struct {
	products []domain.Product
	product  *domain.Product
	err      error
}

func (s *stubProductSvc) List(_ context.Context, _, _ string) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductSvc) Get(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductSvc) Create(_ context.Context, _ productsvc.UpsertInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductSvc) Update(_ context.Context, _ string, _ productsvc.UpsertInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductSvc) Delete(_ context.Context, _ string) error {
	return s.err
}

type stubStockSvc struct {
	product  *domain.Product
	err      error
	reduced  int
	restored int
}

func (s *stubStockSvc) Reduce(_ context.Context, _, _ string, qty int) (*domain.Product, error) {
	s.reduced += qty
	return s.product, s.err
}

func (s *stubStockSvc) Restore(_ context.Context, _, _ string, qty int) (*domain.Product, error) {
	s.restored += qty
	return s.product, s.err
}

type stubOrderSvc struct {
	order  *domain.Order
	orders []domain.Order
	err    error
}

func (s *stubOrderSvc) Place(_ context.Context, _ string, _ ordersvc.PlaceInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) GetForCustomer(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) ListForCustomer(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderSvc) ListAll(_ context.Context) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderSvc) Cancel(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) UpdateStatus(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) UpdatePaymentStatus(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

type stubCouponSvc struct {
	coupon   *domain.Coupon
	coupons  []domain.Coupon
	discount int64
	err      error
}

func (s *stubCouponSvc) List(_ context.Context) ([]domain.Coupon, error) {
	return s.coupons, s.err
}

func (s *stubCouponSvc) Create(_ context.Context, _ couponsvc.CreateInput) (*domain.Coupon, error) {
	return s.coupon, s.err
}

func (s *stubCouponSvc) Update(_ context.Context, _ string, _ couponsvc.CreateInput) (*domain.Coupon, error) {
	return s.coupon, s.err
}

func (s *stubCouponSvc) Delete(_ context.Context, _ string) error {
	return s.err
}

func (s *stubCouponSvc) Validate(_ context.Context, _ string, _ int64) (*domain.Coupon, int64, error) {
	return s.coupon, s.discount, s.err
}

type stubReviewSvc struct {
	review  *domain.Review
	reviews []domain.Review
	err     error
}

func (s *stubReviewSvc) Write(_ context.Context, _, _ string, _ int, _ string) (*domain.Review, error) {
	return s.review, s.err
}

func (s *stubReviewSvc) ListByProduct(_ context.Context, _ string) ([]domain.Review, error) {
	return s.reviews, s.err
}

func (s *stubReviewSvc) Delete(_ context.Context, _, _ string) error {
	return s.err
}

type stubWishlistSvc struct {
	items []domain.WishlistItem
	err   error
}

func (s *stubWishlistSvc) Add(_ context.Context, _, _ string) error {
	return s.err
}

func (s *stubWishlistSvc) Remove(_ context.Context, _, _ string) error {
	return s.err
}

func (s *stubWishlistSvc) List(_ context.Context, _ string) ([]domain.WishlistItem, error) {
	return s.items, s.err
}

type stubCustomerSvc struct {
	customer  *domain.Customer
	signupErr error
	loginErr  error
	lookupErr error
}

func (s *stubCustomerSvc) Signup(_ context.Context, _ customersvc.SignupInput) (*domain.Customer, error) {
	return s.customer, s.signupErr
}

func (s *stubCustomerSvc) Login(_ context.Context, _, _ string) (*domain.Customer, string, string, error) {
	return s.customer, "access", "refresh", s.loginErr
}

func (s *stubCustomerSvc) Refresh(_ context.Context, _ string) (*domain.Customer, string, error) {
	return s.customer, "access2", s.lookupErr
}

func (s *stubCustomerSvc) Logout(_ context.Context, _ string) {}

func (s *stubCustomerSvc) LookupByToken(_ context.Context, _ string) (*domain.Customer, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.customer, nil
}

func (s *stubCustomerSvc) UpdateAddresses(_ context.Context, _ string, _ []customersvc.AddressInput, _ *int) (*domain.Customer, error) {
	return s.customer, nil
}

func (s *stubCustomerSvc) AccessTTLSeconds() int {
	return 3600
}

// newTestDeps returns a Deps with every service stubbed. Tests override the
// fields they care about.
func newTestDeps(cust *domain.Customer) Deps {
	return Deps{
		CartSvc:     &stubCartSvc{cart: &domain.Cart{CustomerID: "cust-1"}},
		ProductSvc:  &stubProductSvc{},
		StockSvc:    &stubStockSvc{},
		OrderSvc:    &stubOrderSvc{},
		CouponSvc:   &stubCouponSvc{},
		ReviewSvc:   &stubReviewSvc{},
		WishlistSvc: &stubWishlistSvc{},
		CustomerSvc: &stubCustomerSvc{customer: cust},
	}
}

func serve(t *testing.T, deps Deps, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := serve(t, newTestDeps(nil), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyzWithoutDB(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := serve(t, newTestDeps(nil), req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestBuildRouterRejectsMissingDeps(t *testing.T) {
	gin.SetMode(gin.TestMode)
	if _, err := buildRouter(logDiscard(), nil, Deps{}); err == nil {
		t.Fatalf("expected error for empty deps")
	}
}

func TestAdminGateForbidsNonAdmin(t *testing.T) {
	deps := newTestDeps(&domain.Customer{ID: "cust-1"})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := serve(t, deps, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAdminGateAllowsAdmin(t *testing.T) {
	deps := newTestDeps(&domain.Customer{ID: "cust-1", IsAdmin: true})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := serve(t, deps, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}
