package order

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
	"github.com/google/uuid"
)

// Service turns a cart into an immutable order and keeps stock and coupon
// bookkeeping in step. PlaceOrder is invoked by the checkout route once the
// external payment provider has confirmed the charge; this package never
// talks to a gateway itself.
type Service struct {
	orders    orderRepo
	carts     cartService
	stock     stockService
	coupons   couponService
	customers customerRepo
	logger    *log.Logger
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error
}

type cartService interface {
	Get(ctx context.Context, customerID string) (*domain.Cart, error)
	Clear(ctx context.Context, customerID string) error
}

type stockService interface {
	Reduce(ctx context.Context, productID, size string, quantity int) (*domain.Product, error)
	Restore(ctx context.Context, productID, size string, quantity int) (*domain.Product, error)
}

type couponService interface {
	Validate(ctx context.Context, code string, subtotalCents int64) (*domain.Coupon, int64, error)
	Redeem(ctx context.Context, id string) error
}

type customerRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

func New(orders orderRepo, carts cartService, stock stockService, coupons couponService, customers customerRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, carts: carts, stock: stock, coupons: coupons, customers: customers, logger: logger}
}

type PlaceInput struct {
	AddressID  string `json:"addressId"`
	CouponCode string `json:"couponCode,omitempty"`
}

// Place snapshots the cart into an order, applies an optional coupon,
// decrements stock once per line and clears the cart. The order items are
// frozen copies; later product edits never touch them.
func (s *Service) Place(ctx context.Context, customerID string, in PlaceInput) (*domain.Order, error) {
	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	address := customer.AddressByID(in.AddressID)
	if address == nil {
		return nil, fmt.Errorf("%w: shipping address required", domain.ErrValidation)
	}

	subtotal := cart.TotalCents()
	var discount int64
	var coupon *domain.Coupon
	if code := strings.TrimSpace(in.CouponCode); code != "" {
		coupon, discount, err = s.coupons.Validate(ctx, code, subtotal)
		if err != nil {
			return nil, err
		}
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID:  line.ProductID,
			Name:       line.Name,
			PriceCents: line.UnitPriceCents(),
			Quantity:   line.Quantity,
			Size:       line.Size,
			VariantID:  line.VariantID,
		})
	}

	created, err := s.orders.Create(ctx, orderrepo.CreateOrderInput{
		Number:        orderNumber(),
		CustomerID:    customerID,
		Items:         items,
		SubtotalCents: subtotal,
		DiscountCents: discount,
		TotalCents:    subtotal - discount,
		CouponCode:    couponCodeOf(coupon),
		Address: domain.ShippingAddress{
			Name:       strings.TrimSpace(address.FirstName + " " + address.LastName),
			StreetName: address.StreetName,
			City:       address.City,
			PostalCode: address.PostalCode,
			Country:    address.Country,
		},
	})
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if _, err := s.stock.Reduce(ctx, item.ProductID, item.Size, item.Quantity); err != nil {
			// The order stands; a vanished product only means there is
			// nothing left to decrement.
			s.logger.Printf("order %s: reduce stock product=%s size=%s: %v", created.Number, item.ProductID, item.Size, err)
		}
	}

	if coupon != nil {
		if err := s.coupons.Redeem(ctx, coupon.ID); err != nil {
			s.logger.Printf("order %s: redeem coupon %s: %v", created.Number, coupon.Code, err)
		}
	}

	if err := s.carts.Clear(ctx, customerID); err != nil {
		s.logger.Printf("order %s: clear cart: %v", created.Number, err)
	}

	return created, nil
}

// GetForCustomer returns the order only when it belongs to the customer.
func (s *Service) GetForCustomer(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// Cancel aborts a pending or processing order and returns its reserved stock
// to the size ledgers.
func (s *Service) Cancel(ctx context.Context, customerID, orderID string) (*domain.Order, error) {
	order, err := s.GetForCustomer(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Cancellable() {
		return nil, domain.ErrOrderNotCancellable
	}
	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderCancelled); err != nil {
		return nil, err
	}
	for _, item := range order.Items {
		if _, err := s.stock.Restore(ctx, item.ProductID, item.Size, item.Quantity); err != nil {
			s.logger.Printf("order %s: restore stock product=%s size=%s: %v", order.Number, item.ProductID, item.Size, err)
		}
	}
	return s.orders.GetByID(ctx, orderID)
}

// UpdateStatus is the back-office status transition. Cancelled orders are
// frozen; cancelling through this path restocks like Cancel does.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown status", domain.ErrValidation)
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderCancelled {
		return nil, domain.ErrOrderNotCancellable
	}
	if status == domain.OrderCancelled {
		if !order.Cancellable() {
			return nil, domain.ErrOrderNotCancellable
		}
		return s.Cancel(ctx, order.CustomerID, orderID)
	}
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, orderID)
}

// UpdatePaymentStatus records the outcome reported by the payment provider.
func (s *Service) UpdatePaymentStatus(ctx context.Context, orderID, paymentStatus string) (*domain.Order, error) {
	switch paymentStatus {
	case domain.PaymentPending, domain.PaymentCompleted, domain.PaymentFailed:
	default:
		return nil, fmt.Errorf("%w: unknown payment status", domain.ErrValidation)
	}
	if err := s.orders.UpdatePaymentStatus(ctx, orderID, paymentStatus); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, orderID)
}

func orderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

func couponCodeOf(c *domain.Coupon) string {
	if c == nil {
		return ""
	}
	return c.Code
}
