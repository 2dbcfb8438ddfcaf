package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type writeReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func listReviewsHandler(reviews reviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := reviews.ListByProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": list})
	}
}

func writeReviewHandler(reviews reviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req writeReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "rating required")
			return
		}
		review, err := reviews.Write(c.Request.Context(), currentCustomer(c).ID, c.Param("id"), req.Rating, req.Comment)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"review": review})
	}
}

func deleteReviewHandler(reviews reviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := reviews.Delete(c.Request.Context(), c.Param("id"), currentCustomer(c).ID); err != nil {
			abortError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
