package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func listWishlistHandler(wishlists wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := wishlists.List(c.Request.Context(), currentCustomer(c).ID)
		if err != nil {
			abortError(c, err)
			return
		}
		if items == nil {
			items = []domain.WishlistItem{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func addWishlistHandler(wishlists wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := wishlists.Add(c.Request.Context(), currentCustomer(c).ID, c.Param("productId")); err != nil {
			abortError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func removeWishlistHandler(wishlists wishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := wishlists.Remove(c.Request.Context(), currentCustomer(c).ID, c.Param("productId")); err != nil {
			abortError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
