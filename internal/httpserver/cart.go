package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type cartResponse struct {
	Cart       *domain.Cart `json:"cart"`
	TotalCents int64        `json:"totalCents"`
	ItemCount  int          `json:"itemCount"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	return cartResponse{
		Cart:       cart,
		TotalCents: cart.TotalCents(),
		ItemCount:  cart.ItemCount(),
	}
}

func getCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := carts.Get(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func addCartItemHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.AddInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid payload")
			return
		}
		cart, err := carts.AddItem(c.Request.Context(), currentCustomer(c).ID, in)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

type cartItemKeyRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Size      string  `json:"size" binding:"required"`
	VariantID *string `json:"variantId,omitempty"`
	Quantity  int     `json:"quantity"`
}

func updateCartItemHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartItemKeyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "productId and size required")
			return
		}
		cart, err := carts.UpdateQuantity(c.Request.Context(), currentCustomer(c).ID, req.ProductID, req.Size, req.VariantID, req.Quantity)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func removeCartItemHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartItemKeyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "productId and size required")
			return
		}
		cart, err := carts.RemoveItem(c.Request.Context(), currentCustomer(c).ID, req.ProductID, req.Size, req.VariantID)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

type mergeCartRequest struct {
	Items []cartsvc.MergeLine `json:"items"`
}

// mergeCartHandler consolidates a client-held guest cart into the logged-in
// customer's cart.
func mergeCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req mergeCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid payload")
			return
		}
		cart, err := carts.Merge(c.Request.Context(), currentCustomer(c).ID, req.Items)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

func clearCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context(), currentCustomer(c).ID); err != nil {
			abortError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
