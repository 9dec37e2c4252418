package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"scoopshop/internal/domain"
	custrepo "scoopshop/internal/repository/customer"
	customersvc "scoopshop/internal/service/customer"
)

// Session identity headers. The surrounding web layer owns authentication;
// the API only needs an opaque session token and, when logged in, the
// customer id it resolved.
const (
	sessionTokenHeader = "X-Session-Token"
	customerIDHeader   = "X-Customer-ID"
)

type handlers struct {
	deps     Deps
	validate *validatorv10.Validate
}

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, domain.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient_stock", "msg": err.Error()})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty_cart"})
	case errors.Is(err, domain.ErrProductInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "product_in_use"})
	case errors.Is(err, domain.ErrInvalidPromotionConfig),
		errors.Is(err, domain.ErrInvalidDiscountCombination):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_promotion", "msg": err.Error()})
	case errors.Is(err, custrepo.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email_taken"})
	case errors.Is(err, customersvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
	case errors.Is(err, customersvc.ErrInvalidRUT),
		errors.Is(err, customersvc.ErrInvalidPhone):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_customer_data", "msg": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "msg": err.Error()})
	}
}

// customerID returns the caller's customer id when the web layer supplied one.
func customerID(c *gin.Context) *string {
	if id := c.GetHeader(customerIDHeader); id != "" {
		return &id
	}
	return nil
}
