package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/gin-gonic/gin"
)

const msgAlreadyResolved = "order already resolved"

func writeError(c *gin.Context, err error) {
	var admissionErr *domain.AdmissionError
	switch {
	case errors.As(err, &admissionErr):
		c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{
			Error:  admissionErr.Message(),
			Reason: string(admissionErr.Reason),
		})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrAmountMismatch):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrAlreadySettled),
		errors.Is(err, domain.ErrRevisionLimitExceeded),
		errors.Is(err, domain.ErrConcurrentUpdate),
		errors.Is(err, domain.ErrDuplicateIdempotencyKey):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
	}
}

// writeSettlementError hides which race a losing settlement hit.
func writeSettlementError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrAlreadySettled) || errors.Is(err, domain.ErrInvalidState) {
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: msgAlreadyResolved})
		return
	}
	writeError(c, err)
}
