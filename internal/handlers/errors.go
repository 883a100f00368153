package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/property_billing_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrOwnerNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrStaleBalance),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNoPendingCharge):
		return http.StatusUnprocessableEntity
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// writeFailed reports errors from persisting a payment, which the operator sees in full.
func writeFailed(err error) bool {
	return errors.Is(err, apperrors.ErrPaymentWriteFailed) || errors.Is(err, apperrors.ErrOccupantCreationFailed)
}

// respondError writes err as a JSON error. Server errors are logged and replaced by
// fallback, except write failures which keep their cause.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		if writeFailed(err) {
			c.JSON(status, gin.H{"error": fallback + ": " + err.Error()})
			return
		}
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}
