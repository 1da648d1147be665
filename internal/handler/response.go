package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campease/internal/checkout"
	"campease/internal/repository"
	"campease/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError && !isProviderError(err) {
		// Surface internal failures generically; the cause is in the logs.
		_ = c.Error(err)
		c.JSON(code, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// isProviderError reports whether err is a checkout-provider failure. These
// keep their message so a timeout stays distinguishable from a declined
// payment.
func isProviderError(err error) bool {
	return errors.Is(err, checkout.ErrNotConfigured) ||
		errors.Is(err, checkout.ErrProviderTimeout) ||
		errors.Is(err, checkout.ErrProviderUnavailable)
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidProductID),
		errors.Is(err, service.ErrInvalidSessionID),
		errors.Is(err, service.ErrInvalidTransactionID),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrPaymentNotCompleted),
		errors.Is(err, service.ErrSessionCustomerMismatch),
		errors.Is(err, service.ErrMissingRefundReason),
		errors.Is(err, service.ErrAlreadyRefunded),
		errors.Is(err, service.ErrPriceChanged),
		errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidPrice):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Conflict errors
	case errors.Is(err, service.ErrSettlementInProgress),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict

	// Consistency and provider errors are internal: the caller can do
	// nothing but retry or report.
	case errors.Is(err, service.ErrCartNotCleared),
		errors.Is(err, checkout.ErrNotConfigured),
		errors.Is(err, checkout.ErrProviderTimeout),
		errors.Is(err, checkout.ErrProviderUnavailable):
		return http.StatusInternalServerError

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
