package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

const customerKey = "httpserver.customer"
const accessTokenKey = "httpserver.accessToken"

// authMiddleware resolves the Authorization bearer token to a customer and
// stores it on the gin context.
func authMiddleware(customers customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		cust, err := customers.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(customerKey, cust)
		c.Set(accessTokenKey, token)
		c.Next()
	}
}

// requireAdmin gates back-office routes. Runs after authMiddleware.
func requireAdmin(c *gin.Context) {
	cust := currentCustomer(c)
	if cust == nil || !cust.IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}
	c.Next()
}

func currentCustomer(c *gin.Context) *domain.Customer {
	v, ok := c.Get(customerKey)
	if !ok {
		return nil
	}
	cust, _ := v.(*domain.Customer)
	return cust
}
