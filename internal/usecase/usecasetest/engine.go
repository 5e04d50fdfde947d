// Package usecasetest wires the engine on the in-memory store for tests.
package usecasetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	disputeusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/dispute"
	escrowdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/escrow"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
	riskdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/risk"
	escrowusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/escrow"
	orderusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/order"
	policyusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/policy"
	riskusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/risk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

var Start = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

var Settings = orderusecase.Settings{
	ConfirmGracePeriod:  72 * time.Hour,
	AcceptTimeout:       48 * time.Hour,
	SweepBatchSize:      100,
	DefaultRevisions:    2,
	DefaultDeliveryDays: 7,
}

var Weights = domain.RiskWeights{
	Dispute:           decimal.RequireFromString("0.7"),
	Cancel:            decimal.RequireFromString("0.3"),
	HighRiskThreshold: decimal.NewFromInt(50),
}

type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Publisher records published events.
type Publisher struct {
	mu       sync.Mutex
	orders   []domain.OrderEvent
	disputes []domain.DisputeEvent
}

func (p *Publisher) PublishOrder(ctx context.Context, event domain.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, event)
	return nil
}

func (p *Publisher) PublishDispute(ctx context.Context, event domain.DisputeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disputes = append(p.disputes, event)
	return nil
}

func (p *Publisher) OrderEvents() []domain.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.OrderEvent(nil), p.orders...)
}

func (p *Publisher) DisputeEvents() []domain.DisputeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.DisputeEvent(nil), p.disputes...)
}

type Engine struct {
	Store     domain.Store
	Clock     *Clock
	Publisher *Publisher
	Registry  *prometheus.Registry
	Metrics   *metrics.EngineMetrics

	Risk     *riskusecase.DefaultRiskUsecase
	Policy   *policyusecase.DefaultPolicyUsecase
	Escrow   *escrowusecase.DefaultEscrowUsecase
	Orders   *orderusecase.DefaultOrderUsecase
	Disputes *disputeusecase.DefaultDisputeUsecase
}

func NewEngine(t testing.TB) *Engine {
	t.Helper()
	return NewEngineOn(t, memory.NewStore())
}

// NewEngineOn wires the engine on store.
func NewEngineOn(t testing.TB, store domain.Store) *Engine {
	t.Helper()

	clock := &Clock{now: Start}
	publisher := &Publisher{}
	registry := prometheus.NewRegistry()
	engineMetrics := metrics.NewEngineMetrics(registry)

	risk := riskusecase.NewDefaultRiskUsecase(store, Weights)
	policy := policyusecase.NewDefaultPolicyUsecase(store)
	escrow := escrowusecase.NewDefaultEscrowUsecase(store, engineMetrics)
	orders := orderusecase.NewDefaultOrderUsecase(store, escrow, policy, risk, publisher, engineMetrics, Settings)
	disputes := disputeusecase.NewDefaultDisputeUsecase(store, escrow, risk, publisher, engineMetrics)

	risk.Now = clock.Now
	policy.Now = clock.Now
	escrow.Now = clock.Now
	orders.Now = clock.Now
	disputes.Now = clock.Now

	return &Engine{
		Store:     store,
		Clock:     clock,
		Publisher: publisher,
		Registry:  registry,
		Metrics:   engineMetrics,
		Risk:      risk,
		Policy:    policy,
		Escrow:    escrow,
		Orders:    orders,
		Disputes:  disputes,
	}
}

func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SyncUser registers a verified user whose account is a year old.
// Share is Dec for optional amounts.
func Share(s string) *decimal.Decimal {
	d := Dec(s)
	return &d
}

func (e *Engine) SyncUser(t testing.TB, userID string, role domain.Role) {
	t.Helper()
	if _, err := e.Policy.SyncProfile(context.Background(), &riskdto.SyncProfileInput{
		UserID:           userID,
		Role:             string(role),
		AccountCreatedAt: e.Clock.Now().Add(-365 * 24 * time.Hour),
		EmailVerified:    true,
		PhoneVerified:    true,
	}); err != nil {
		t.Fatalf("sync profile %s: %v", userID, err)
	}
}

func (e *Engine) CreateOrder(t testing.TB, buyerID, sellerID, amount string) *orderdto.OrderOutput {
	t.Helper()
	out, err := e.Orders.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
		BuyerID:   buyerID,
		SellerID:  sellerID,
		ServiceID: "logo-design",
		Amount:    Dec(amount),
		Currency:  "USD",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return out
}

func (e *Engine) Capture(t testing.TB, orderID, amount string) {
	t.Helper()
	if _, err := e.Escrow.CapturePayment(context.Background(), &escrowdto.CapturePaymentInput{
		OrderID: orderID,
		Amount:  Dec(amount),
	}); err != nil {
		t.Fatalf("capture payment for %s: %v", orderID, err)
	}
}

func (e *Engine) Act(t testing.TB, step func(context.Context, *orderdto.ActionInput) (*orderdto.OrderOutput, error), orderID, actorID string) *orderdto.OrderOutput {
	t.Helper()
	out, err := step(context.Background(), &orderdto.ActionInput{OrderID: orderID, ActorID: actorID})
	if err != nil {
		t.Fatalf("order %s step by %s: %v", orderID, actorID, err)
	}
	return out
}

// StartedOrder returns a paid order the seller already accepted.
func (e *Engine) StartedOrder(t testing.TB, buyerID, sellerID, amount string) *orderdto.OrderOutput {
	t.Helper()
	order := e.CreateOrder(t, buyerID, sellerID, amount)
	e.Capture(t, order.ID, amount)
	return e.Act(t, e.Orders.AcceptOrder, order.ID, sellerID)
}

// DisputedOrder returns a delivered order the buyer disputed.
func (e *Engine) DisputedOrder(t testing.TB, buyerID, sellerID, amount string) *orderdto.OrderOutput {
	t.Helper()
	order := e.StartedOrder(t, buyerID, sellerID, amount)
	e.Act(t, e.Orders.DeliverOrder, order.ID, sellerID)
	out, err := e.Orders.OpenDispute(context.Background(), &orderdto.OpenDisputeInput{
		OrderID: order.ID,
		ActorID: buyerID,
		Reason:  "not as described",
	})
	if err != nil {
		t.Fatalf("open dispute: %v", err)
	}
	return out
}

func (e *Engine) Balance(t testing.TB, userID string) *escrowdto.BalanceOutput {
	t.Helper()
	b, err := e.Escrow.GetBalance(context.Background(), userID)
	if err != nil {
		t.Fatalf("balance of %s: %v", userID, err)
	}
	return b
}

func (e *Engine) Order(t testing.TB, orderID string) *orderdto.OrderOutput {
	t.Helper()
	out, err := e.Orders.GetOrderByID(context.Background(), orderID)
	if err != nil {
		t.Fatalf("get order %s: %v", orderID, err)
	}
	return out
}

func (e *Engine) EscrowOf(t testing.TB, orderID string) *escrowdto.EscrowOutput {
	t.Helper()
	out, err := e.Escrow.GetEscrow(context.Background(), orderID)
	if err != nil {
		t.Fatalf("get escrow %s: %v", orderID, err)
	}
	return out
}

// RequireBalanced fails the test when escrowed and frozen funds diverge.
func (e *Engine) RequireBalanced(t testing.TB) {
	t.Helper()
	report, err := e.Escrow.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !report.Balanced {
		t.Fatalf("ledger out of balance: held %s, frozen %s", report.HeldInEscrow, report.FrozenFunds)
	}
}
