package handlers

import (
	"errors"
	"net/http"

	"tablenow/backend"
	"tablenow/services/auth"
	"tablenow/services/booking"
	"tablenow/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP responses. Field-level
// validation failures keep their field name so clients can render them
// inline; backend failures keep the backend's status and message.
func respondError(c *gin.Context, err error) {
	logger := getLogger(c)

	var validationErr *auth.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"field": validationErr.Field,
			"error": validationErr.Message,
		})
		return
	}

	var fieldErr *booking.FieldError
	if errors.As(err, &fieldErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"field": fieldErr.Field,
			"error": fieldErr.Message,
		})
		return
	}

	var providerErr *auth.ProviderError
	if errors.As(err, &providerErr) {
		status := http.StatusUnauthorized
		if providerErr.Message == auth.EmailInUseMessage {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": providerErr.Message})
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
		return
	}

	switch {
	case errors.Is(err, auth.ErrNoSession), errors.Is(err, user.ErrNoSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
	case errors.Is(err, booking.ErrNoReservation):
		c.JSON(http.StatusNotFound, gin.H{"error": "No reservation in progress"})
	case errors.Is(err, booking.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select at least one menu"})
	default:
		logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
