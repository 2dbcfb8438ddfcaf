package httpserver

import (
	"context"
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	couponsvc "storefront/internal/service/coupon"
	customersvc "storefront/internal/service/customer"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
)

type cartService interface {
	Get(ctx context.Context, customerID string) (*domain.Cart, error)
	AddItem(ctx context.Context, customerID string, in cartsvc.AddInput) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, customerID, productID, size string, variantID *string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, customerID, productID, size string, variantID *string) (*domain.Cart, error)
	Merge(ctx context.Context, customerID string, guestLines []cartsvc.MergeLine) (*domain.Cart, error)
	Clear(ctx context.Context, customerID string) error
}

type productService interface {
	List(ctx context.Context, category, search string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in productsvc.UpsertInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in productsvc.UpsertInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type stockService interface {
	Reduce(ctx context.Context, productID, size string, quantity int) (*domain.Product, error)
	Restore(ctx context.Context, productID, size string, quantity int) (*domain.Product, error)
}

type orderService interface {
	Place(ctx context.Context, customerID string, in ordersvc.PlaceInput) (*domain.Order, error)
	GetForCustomer(ctx context.Context, customerID, orderID string) (*domain.Order, error)
	ListForCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	Cancel(ctx context.Context, customerID, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID, paymentStatus string) (*domain.Order, error)
}

type couponService interface {
	List(ctx context.Context) ([]domain.Coupon, error)
	Create(ctx context.Context, in couponsvc.CreateInput) (*domain.Coupon, error)
	Update(ctx context.Context, id string, in couponsvc.CreateInput) (*domain.Coupon, error)
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, code string, subtotalCents int64) (*domain.Coupon, int64, error)
}

type reviewService interface {
	Write(ctx context.Context, customerID, productID string, rating int, comment string) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Delete(ctx context.Context, productID, customerID string) error
}

type wishlistService interface {
	Add(ctx context.Context, customerID, productID string) error
	Remove(ctx context.Context, customerID, productID string) error
	List(ctx context.Context, customerID string) ([]domain.WishlistItem, error)
}

type customerService interface {
	Signup(ctx context.Context, in customersvc.SignupInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.Customer, string, error)
	Logout(ctx context.Context, accessToken string)
	LookupByToken(ctx context.Context, token string) (*domain.Customer, error)
	UpdateAddresses(ctx context.Context, customerID string, addresses []customersvc.AddressInput, defaultShipping *int) (*domain.Customer, error)
	AccessTTLSeconds() int
}

// Deps carries the services the router depends on.
type Deps struct {
	CartSvc     cartService
	ProductSvc  productService
	StockSvc    stockService
	OrderSvc    orderService
	CouponSvc   couponService
	ReviewSvc   reviewService
	WishlistSvc wishlistService
	CustomerSvc customerService
}

func (d Deps) validate() error {
	if d.CartSvc == nil || d.ProductSvc == nil || d.StockSvc == nil || d.OrderSvc == nil ||
		d.CouponSvc == nil || d.ReviewSvc == nil || d.WishlistSvc == nil || d.CustomerSvc == nil {
		return errors.New("httpserver: missing service dependency")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api/v1")

	api.POST("/auth/signup", signupHandler(deps.CustomerSvc))
	api.POST("/auth/login", loginHandler(deps.CustomerSvc))
	api.POST("/auth/refresh", refreshHandler(deps.CustomerSvc))

	api.GET("/products", listProductsHandler(deps.ProductSvc))
	api.GET("/products/:id", getProductHandler(deps.ProductSvc))
	api.GET("/products/:id/reviews", listReviewsHandler(deps.ReviewSvc))

	authed := api.Group("", authMiddleware(deps.CustomerSvc))
	{
		authed.POST("/auth/logout", logoutHandler(deps.CustomerSvc))
		authed.GET("/me", meHandler)
		authed.PUT("/me/addresses", updateAddressesHandler(deps.CustomerSvc))

		authed.GET("/cart", getCartHandler(deps.CartSvc))
		authed.POST("/cart/items", addCartItemHandler(deps.CartSvc))
		authed.PUT("/cart/items", updateCartItemHandler(deps.CartSvc))
		authed.DELETE("/cart/items", removeCartItemHandler(deps.CartSvc))
		authed.POST("/cart/merge", mergeCartHandler(deps.CartSvc))
		authed.DELETE("/cart", clearCartHandler(deps.CartSvc))

		authed.POST("/coupons/preview", previewCouponHandler(deps.CouponSvc, deps.CartSvc))

		authed.POST("/orders", placeOrderHandler(deps.OrderSvc))
		authed.GET("/orders", listOrdersHandler(deps.OrderSvc))
		authed.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
		authed.GET("/orders/:id/tracking", orderTrackingHandler(deps.OrderSvc))
		authed.POST("/orders/:id/cancel", cancelOrderHandler(deps.OrderSvc))

		authed.POST("/products/:id/reviews", writeReviewHandler(deps.ReviewSvc))
		authed.DELETE("/products/:id/reviews", deleteReviewHandler(deps.ReviewSvc))

		authed.GET("/wishlist", listWishlistHandler(deps.WishlistSvc))
		authed.POST("/wishlist/:productId", addWishlistHandler(deps.WishlistSvc))
		authed.DELETE("/wishlist/:productId", removeWishlistHandler(deps.WishlistSvc))
	}

	admin := api.Group("/admin", authMiddleware(deps.CustomerSvc), requireAdmin)
	{
		admin.POST("/products", createProductHandler(deps.ProductSvc))
		admin.PUT("/products/:id", updateProductHandler(deps.ProductSvc))
		admin.DELETE("/products/:id", deleteProductHandler(deps.ProductSvc))
		admin.POST("/products/:id/stock", adjustStockHandler(deps.StockSvc))

		admin.GET("/orders", listAllOrdersHandler(deps.OrderSvc))
		admin.PUT("/orders/:id/status", updateOrderStatusHandler(deps.OrderSvc))
		admin.PUT("/orders/:id/payment", updatePaymentStatusHandler(deps.OrderSvc))

		admin.GET("/coupons", listCouponsHandler(deps.CouponSvc))
		admin.POST("/coupons", createCouponHandler(deps.CouponSvc))
		admin.PUT("/coupons/:id", updateCouponHandler(deps.CouponSvc))
		admin.DELETE("/coupons/:id", deleteCouponHandler(deps.CouponSvc))
	}

	return router, nil
}
