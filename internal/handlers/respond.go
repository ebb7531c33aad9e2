package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	"github.com/shopkhata/shopkhata_backend/internal/middleware"
)

// respondError maps application errors to HTTP responses. Business rejections
// are terminal 409s whose bodies carry the authoritative figure read under
// lock, so clients can re-render without a second round trip.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var exceedsErr *apperrors.AmountExceedsRemainingError
	var stockErr *apperrors.InsufficientStockError

	switch {
	case errors.As(err, &exceedsErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     exceedsErr.Error(),
			"receiptID": exceedsErr.ReceiptID,
			"remaining": exceedsErr.Remaining,
		})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     stockErr.Error(),
			"itemName":  stockErr.ItemName,
			"available": stockErr.Available,
		})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrCrossAccountMismatch),
		errors.Is(err, apperrors.ErrHasSettledPayments),
		errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrStorageTimeout),
		errors.Is(err, apperrors.ErrStorageConflict):
		// Nothing was written; the whole request is safe to retry.
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// mustActor pulls the authenticated actor from the context or aborts with 401.
func mustActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c.Request.Context())
	if !ok {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return actor, ok
}
