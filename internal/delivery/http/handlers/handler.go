package handlers

import (
	"net/http"
	"strconv"

	"github.com/LavaJover/shvark-escrow-service/internal/usecase"
	"github.com/gin-gonic/gin"
)

const (
	HeaderActorID        = "X-Actor-ID"
	HeaderIdempotencyKey = "Idempotency-Key"
)

type Handler struct {
	Orders   usecase.OrderUsecase
	Disputes usecase.DisputeUsecase
	Escrow   usecase.EscrowUsecase
	Risk     usecase.RiskUsecase
	Policy   usecase.PolicyUsecase
}

func NewHandler(orders usecase.OrderUsecase, disputes usecase.DisputeUsecase, escrow usecase.EscrowUsecase, risk usecase.RiskUsecase, policy usecase.PolicyUsecase) *Handler {
	return &Handler{
		Orders:   orders,
		Disputes: disputes,
		Escrow:   escrow,
		Risk:     risk,
		Policy:   policy,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.GetOrders)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/:id/history", h.GetOrderHistory)

		orders.POST("/:id/payment-captured", h.CapturePayment)
		orders.POST("/:id/accept", h.step(h.Orders.AcceptOrder))
		orders.POST("/:id/deliver", h.step(h.Orders.DeliverOrder))
		orders.POST("/:id/revisions", h.step(h.Orders.RequestRevision))
		orders.POST("/:id/redeliver", h.step(h.Orders.RedeliverOrder))
		orders.POST("/:id/confirm", h.step(h.Orders.ConfirmDelivery))
		orders.POST("/:id/cancel", h.step(h.Orders.CancelOrder))
		orders.POST("/:id/disputes", h.OpenDispute)
		orders.POST("/:id/disputes/resolve", h.ResolveDispute)

		orders.GET("/:id/escrow", h.GetEscrow)
		orders.GET("/:id/ledger", h.GetLedger)
		orders.GET("/:id/dispute", h.GetDispute)
	}

	r.GET("/disputes", h.GetDisputes)

	buyers := r.Group("/buyers")
	{
		buyers.GET("/:id/risk-score", h.GetRiskScore)
		buyers.POST("/:id/risk-score/recompute", h.RecomputeRiskScore)
	}

	sellers := r.Group("/sellers")
	{
		sellers.GET("/:id/risk-policy", h.GetSellerPolicy)
		sellers.PUT("/:id/risk-policy", h.SetSellerPolicy)
	}

	r.GET("/users/:id/profile", h.GetProfile)
	r.PUT("/users/:id/profile", h.SyncProfile)
	r.GET("/accounts/:id/balance", h.GetBalance)
	r.GET("/admin/reconciliation", h.Reconcile)
}

func actorID(c *gin.Context) string {
	return c.GetHeader(HeaderActorID)
}

func idempotencyKey(c *gin.Context) string {
	return c.GetHeader(HeaderIdempotencyKey)
}

// queryInt returns def for a missing or malformed value.
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
