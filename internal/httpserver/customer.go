package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	customersvc "storefront/internal/service/customer"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type authResponse struct {
	Customer     *domain.Customer `json:"customer"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken,omitempty"`
	ExpiresIn    int              `json:"expiresIn"`
}

func signupHandler(customers customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in customersvc.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid payload")
			return
		}
		cust, err := customers.Signup(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			badRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusCreated, gin.H{"customer": cust})
	}
}

func loginHandler(customers customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email and password required")
			return
		}
		cust, access, refresh, err := customers.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, customersvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, authResponse{
			Customer:     cust,
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    customers.AccessTTLSeconds(),
		})
	}
}

func refreshHandler(customers customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "refreshToken required")
			return
		}
		cust, access, err := customers.Refresh(c.Request.Context(), req.RefreshToken)
		if err != nil {
			if errors.Is(err, customersvc.ErrInvalidToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, authResponse{
			Customer:    cust,
			AccessToken: access,
			ExpiresIn:   customers.AccessTTLSeconds(),
		})
	}
}

func logoutHandler(customers customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, ok := c.Get(accessTokenKey); ok {
			if token, ok := v.(string); ok {
				customers.Logout(c.Request.Context(), token)
			}
		}
		c.Status(http.StatusNoContent)
	}
}

func meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customer": currentCustomer(c)})
}

type updateAddressesRequest struct {
	Addresses              []customersvc.AddressInput `json:"addresses"`
	DefaultShippingAddress *int                       `json:"defaultShippingAddress"`
}

func updateAddressesHandler(customers customerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateAddressesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid payload")
			return
		}
		cust, err := customers.UpdateAddresses(c.Request.Context(), currentCustomer(c).ID, req.Addresses, req.DefaultShippingAddress)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": cust})
	}
}
