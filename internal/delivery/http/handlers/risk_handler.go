package handlers

import (
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/request"
	riskdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/risk"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetRiskScore(c *gin.Context) {
	out, err := h.Risk.GetRiskScore(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) RecomputeRiskScore(c *gin.Context) {
	out, err := h.Risk.RecomputeRiskScore(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetSellerPolicy(c *gin.Context) {
	out, err := h.Policy.GetSellerPolicy(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// SetSellerPolicy replaces the policy as a whole. Only the seller may
// change it.
func (h *Handler) SetSellerPolicy(c *gin.Context) {
	sellerID := c.Param("id")
	if actorID(c) != sellerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the seller can change the risk policy"})
		return
	}
	var req request.SetPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out, err := h.Policy.SetSellerPolicy(c.Request.Context(), &riskdto.SetPolicyInput{
		SellerID:              sellerID,
		BlockNewBuyers:        req.BlockNewBuyers,
		NewBuyerMinAgeDays:    req.NewBuyerMinAgeDays,
		BlockDisputedBuyers:   req.BlockDisputedBuyers,
		MaxDisputes:           req.MaxDisputes,
		MaxConcurrentOrders:   req.MaxConcurrentOrders,
		DelayDeliveryForRisky: req.DelayDeliveryForRisky,
		DelayMinutes:          req.DelayMinutes,
		RequireEmailVerified:  req.RequireEmailVerified,
		RequirePhoneVerified:  req.RequirePhoneVerified,
		MinCompletedOrders:    req.MinCompletedOrders,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetProfile(c *gin.Context) {
	out, err := h.Policy.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// SyncProfile is called by the identity service.
func (h *Handler) SyncProfile(c *gin.Context) {
	var req request.SyncProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out, err := h.Policy.SyncProfile(c.Request.Context(), &riskdto.SyncProfileInput{
		UserID:           c.Param("id"),
		Role:             req.Role,
		AccountCreatedAt: req.AccountCreatedAt,
		EmailVerified:    req.EmailVerified,
		PhoneVerified:    req.PhoneVerified,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
