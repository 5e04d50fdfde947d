package handlers

import (
	"context"
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/dto/request"
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateOrder(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out, err := h.Orders.CreateOrder(c.Request.Context(), &orderdto.CreateOrderInput{
		BuyerID:          actorID(c),
		SellerID:         req.SellerID,
		ServiceID:        req.ServiceID,
		Amount:           req.Amount,
		Currency:         req.Currency,
		DeliveryDays:     req.DeliveryDays,
		RevisionsAllowed: req.RevisionsAllowed,
		IdempotencyKey:   idempotencyKey(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// step adapts a state machine operation to a route. The body is optional.
func (h *Handler) step(op func(context.Context, *orderdto.ActionInput) (*orderdto.OrderOutput, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request.ActionRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				badRequest(c, err)
				return
			}
		}

		out, err := op(c.Request.Context(), &orderdto.ActionInput{
			OrderID:        c.Param("id"),
			ActorID:        actorID(c),
			Note:           req.Note,
			IdempotencyKey: idempotencyKey(c),
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func (h *Handler) OpenDispute(c *gin.Context) {
	var req request.OpenDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out, err := h.Orders.OpenDispute(c.Request.Context(), &orderdto.OpenDisputeInput{
		OrderID:        c.Param("id"),
		ActorID:        actorID(c),
		Reason:         req.Reason,
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) GetOrder(c *gin.Context) {
	out, err := h.Orders.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetOrders(c *gin.Context) {
	out, err := h.Orders.GetOrders(c.Request.Context(), &orderdto.GetOrdersInput{
		BuyerID:  c.Query("buyer_id"),
		SellerID: c.Query("seller_id"),
		Status:   domain.OrderStatus(c.Query("status")),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 0),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetOrderHistory(c *gin.Context) {
	out, err := h.Orders.GetOrderHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transitions": out})
}
