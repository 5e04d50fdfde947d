package handlers

import (
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/request"
	escrowdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/escrow"
	"github.com/gin-gonic/gin"
)

// CapturePayment is called by the payment gateway once the buyer's payment
// for the order is captured.
func (h *Handler) CapturePayment(c *gin.Context) {
	var req request.CapturePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out, err := h.Escrow.CapturePayment(c.Request.Context(), &escrowdto.CapturePaymentInput{
		OrderID:        c.Param("id"),
		Amount:         req.Amount,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetEscrow(c *gin.Context) {
	out, err := h.Escrow.GetEscrow(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetLedger(c *gin.Context) {
	out, err := h.Escrow.GetLedger(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

func (h *Handler) GetBalance(c *gin.Context) {
	out, err := h.Escrow.GetBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Reconcile(c *gin.Context) {
	out, err := h.Escrow.Reconcile(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
