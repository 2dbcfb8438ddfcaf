package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	productsvc "storefront/internal/service/product"
)

func listProductsHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.List(c.Request.Context(), c.Query("category"), c.Query("search"))
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list, "count": len(list)})
	}
}

func getProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := products.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func createProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.UpsertInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid payload")
			return
		}
		p, err := products.Create(c.Request.Context(), in)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusCreated, gin.H{"product": p})
	}
}

func updateProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.UpsertInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid payload")
			return
		}
		p, err := products.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}

func deleteProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := products.Delete(c.Request.Context(), c.Param("id")); err != nil {
			abortError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type adjustStockRequest struct {
	Size  string `json:"size" binding:"required"`
	Delta int    `json:"delta"`
}

// adjustStockHandler lets back-office users correct per-size stock. Positive
// deltas restock, negative deltas write down inventory (floored at zero).
func adjustStockHandler(stock stockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adjustStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "size required")
			return
		}
		if req.Delta == 0 {
			badRequest(c, "delta must be non-zero")
			return
		}
		var err error
		var p interface{}
		if req.Delta > 0 {
			p, err = stock.Restore(c.Request.Context(), c.Param("id"), req.Size, req.Delta)
		} else {
			p, err = stock.Reduce(c.Request.Context(), c.Param("id"), req.Size, -req.Delta)
		}
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p})
	}
}
