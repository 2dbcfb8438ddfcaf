package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	couponsvc "storefront/internal/service/coupon"
)

type previewCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// previewCouponHandler checks a coupon against the customer's current cart
// subtotal without redeeming it.
func previewCouponHandler(coupons couponService, carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req previewCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "code required")
			return
		}
		cart, err := carts.Get(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			abortError(c, err)
			return
		}
		coupon, discount, err := coupons.Validate(c.Request.Context(), req.Code, cart.TotalCents())
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"coupon":        coupon,
			"discountCents": discount,
			"subtotalCents": cart.TotalCents(),
		})
	}
}

func listCouponsHandler(coupons couponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := coupons.List(c.Request.Context())
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"coupons": list})
	}
}

func createCouponHandler(coupons couponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in couponsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid payload")
			return
		}
		coupon, err := coupons.Create(c.Request.Context(), in)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusCreated, gin.H{"coupon": coupon})
	}
}

func updateCouponHandler(coupons couponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in couponsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid payload")
			return
		}
		coupon, err := coupons.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"coupon": coupon})
	}
}

func deleteCouponHandler(coupons couponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := coupons.Delete(c.Request.Context(), c.Param("id")); err != nil {
			abortError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
