package handlers

import (
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/request"
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	disputedto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/dispute"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ResolveDispute(c *gin.Context) {
	var req request.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.Disputes.ResolveDispute(c.Request.Context(), &disputedto.ResolveDisputeInput{
		OrderID:        c.Param("id"),
		ResolverID:     actorID(c),
		Outcome:        domain.ResolutionOutcome(req.Outcome),
		SellerShare:    req.SellerShare,
		Notes:          req.Notes,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		writeSettlementError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetDispute(c *gin.Context) {
	out, err := h.Disputes.GetDisputeByOrderID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetDisputes(c *gin.Context) {
	out, err := h.Disputes.GetDisputes(c.Request.Context(), &disputedto.GetDisputesInput{
		OrderID: c.Query("order_id"),
		Status:  domain.DisputeStatus(c.Query("status")),
		Page:    queryInt(c, "page", 1),
		Limit:   queryInt(c, "limit", 0),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
