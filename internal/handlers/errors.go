package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to the wire envelope. Every failure body
// is {success:false, message}.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var gatewayErr *services.GatewayError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": validationErr.Error()})
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrAmountAboveCeiling),
		errors.Is(err, services.ErrSignatureInvalid),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrUnknownPlan):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrSubscriptionNotFound),
		errors.Is(err, services.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, services.ErrOrderCancelled):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, services.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Too many requests, please try again later"})
	case errors.As(err, &gatewayErr):
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Payment gateway is unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
	}
}
