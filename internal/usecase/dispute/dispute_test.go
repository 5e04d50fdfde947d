package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	disputedto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/dispute"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/usecasetest"
	"golang.org/x/sync/errgroup"
)

const (
	buyer  = "buyer-1"
	seller = "seller-1"
	admin  = "admin-1"
)

func newEngine(t *testing.T) *usecasetest.Engine {
	t.Helper()
	e := usecasetest.NewEngine(t)
	e.SyncUser(t, admin, domain.RoleAdmin)
	return e
}

func resolve(e *usecasetest.Engine, orderID string, outcome domain.ResolutionOutcome, sellerShare string) (*domain.SettlementResult, error) {
	input := &disputedto.ResolveDisputeInput{
		OrderID:    orderID,
		ResolverID: admin,
		Outcome:    outcome,
		Notes:      "  reviewed the delivery  ",
	}
	if sellerShare != "" {
		input.SellerShare = usecasetest.Share(sellerShare)
	}
	return e.Disputes.ResolveDispute(context.Background(), input)
}

func TestResolveForBuyerRefunds(t *testing.T) {
	e := newEngine(t)
	order := e.DisputedOrder(t, buyer, seller, "100.00")

	result, err := resolve(e, order.ID, domain.OutcomeBuyer, "")
	if err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}
	if result.Kind != domain.SettlementRefund || result.OrderStatus != domain.StatusCancelled || result.EscrowStatus != domain.EscrowRefunded {
		t.Fatalf("result = %+v", result)
	}

	b := e.Balance(t, buyer)
	if !b.Available.Equal(usecasetest.Dec("100")) || !b.Frozen.IsZero() {
		t.Fatalf("buyer balance = %+v", b)
	}
	if got := e.Balance(t, seller).Available; !got.IsZero() {
		t.Fatalf("seller available = %s", got)
	}

	got := e.Order(t, order.ID)
	if got.Status != domain.StatusCancelled || got.ResolverID == nil || *got.ResolverID != admin {
		t.Fatalf("order = %+v", got)
	}
	if got.ResolutionNotes == nil || *got.ResolutionNotes != "reviewed the delivery" {
		t.Fatalf("resolution notes = %v", got.ResolutionNotes)
	}

	dispute, err := e.Disputes.GetDisputeByOrderID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("GetDisputeByOrderID: %v", err)
	}
	if dispute.Status != domain.DisputeResolved || dispute.Outcome == nil || *dispute.Outcome != domain.OutcomeBuyer || dispute.ResolvedAt == nil {
		t.Fatalf("dispute = %+v", dispute)
	}

	score, err := e.Risk.GetRiskScore(context.Background(), buyer)
	if err != nil {
		t.Fatalf("GetRiskScore: %v", err)
	}
	if !score.Score.Equal(usecasetest.Dec("100")) || !score.HighRisk {
		t.Fatalf("risk score = %+v", score)
	}
	e.RequireBalanced(t)
}

func TestResolveForSellerReleases(t *testing.T) {
	e := newEngine(t)
	order := e.DisputedOrder(t, buyer, seller, "64.10")

	result, err := resolve(e, order.ID, domain.OutcomeSeller, "")
	if err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}
	if result.Kind != domain.SettlementRelease || result.OrderStatus != domain.StatusCompleted {
		t.Fatalf("result = %+v", result)
	}
	if got := e.Balance(t, seller).Available; !got.Equal(usecasetest.Dec("64.10")) {
		t.Fatalf("seller available = %s", got)
	}
	if got := e.Balance(t, buyer); !got.Available.IsZero() || !got.Frozen.IsZero() {
		t.Fatalf("buyer balance = %+v", got)
	}
	e.RequireBalanced(t)
}

func TestResolveSplit(t *testing.T) {
	e := newEngine(t)
	order := e.DisputedOrder(t, buyer, seller, "100.00")

	result, err := resolve(e, order.ID, domain.OutcomeSplit, "60")
	if err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}
	if result.Kind != domain.SettlementSplit || result.OrderStatus != domain.StatusCompleted {
		t.Fatalf("result = %+v", result)
	}
	if !result.SellerShare.Equal(usecasetest.Dec("60")) || !result.BuyerShare.Equal(usecasetest.Dec("40")) {
		t.Fatalf("shares = %s/%s", result.SellerShare, result.BuyerShare)
	}
	if got := e.Balance(t, seller).Available; !got.Equal(usecasetest.Dec("60")) {
		t.Fatalf("seller available = %s", got)
	}
	if got := e.Balance(t, buyer).Available; !got.Equal(usecasetest.Dec("40")) {
		t.Fatalf("buyer available = %s", got)
	}

	entries, err := e.Escrow.GetLedger(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	kinds := map[domain.LedgerEntryKind]int{}
	for _, entry := range entries {
		kinds[entry.Kind]++
	}
	if kinds[domain.EntryRelease] != 1 || kinds[domain.EntryRefund] != 1 {
		t.Fatalf("ledger kinds = %v", kinds)
	}
	e.RequireBalanced(t)
}

func TestResolveRejectsInvalidSplit(t *testing.T) {
	e := newEngine(t)
	order := e.DisputedOrder(t, buyer, seller, "100.00")

	for _, share := range []string{"60.005", "150", "-1"} {
		if _, err := resolve(e, order.ID, domain.OutcomeSplit, share); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("seller share %s: err = %v, want ErrInvalidInput", share, err)
		}
	}
	if _, err := resolve(e, order.ID, "coin_flip", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown outcome: err = %v, want ErrInvalidInput", err)
	}
	if _, err := resolve(e, order.ID, domain.OutcomeSplit, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("split without a seller share: err = %v, want ErrInvalidInput", err)
	}

	if got := e.Order(t, order.ID).Status; got != domain.StatusDisputed {
		t.Fatalf("status = %s, want disputed", got)
	}
	if got := e.EscrowOf(t, order.ID).Status; got != domain.EscrowHolding {
		t.Fatalf("escrow = %s, want holding", got)
	}
	e.RequireBalanced(t)
}

func TestResolveRequiresAdmin(t *testing.T) {
	e := newEngine(t)
	e.SyncUser(t, seller, domain.RoleSeller)
	order := e.DisputedOrder(t, buyer, seller, "10")

	for _, resolver := range []string{seller, "nobody"} {
		_, err := e.Disputes.ResolveDispute(context.Background(), &disputedto.ResolveDisputeInput{
			OrderID:    order.ID,
			ResolverID: resolver,
			Outcome:    domain.OutcomeSeller,
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("resolver %s: err = %v, want ErrForbidden", resolver, err)
		}
	}
	if got := e.Order(t, order.ID).Status; got != domain.StatusDisputed {
		t.Fatalf("status = %s", got)
	}
}

func TestResolveOnlyDisputedOrders(t *testing.T) {
	e := newEngine(t)
	order := e.StartedOrder(t, buyer, seller, "10")

	if _, err := resolve(e, order.ID, domain.OutcomeSeller, ""); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
	if _, err := resolve(e, "missing", domain.OutcomeSeller, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown order: err = %v, want ErrNotFound", err)
	}
}

func TestResolveTwiceReportsAlreadySettled(t *testing.T) {
	e := newEngine(t)
	order := e.DisputedOrder(t, buyer, seller, "30")

	if _, err := resolve(e, order.ID, domain.OutcomeSeller, ""); err != nil {
		t.Fatalf("first ResolveDispute: %v", err)
	}
	if _, err := resolve(e, order.ID, domain.OutcomeBuyer, ""); !errors.Is(err, domain.ErrAlreadySettled) {
		t.Fatalf("second ResolveDispute: err = %v, want ErrAlreadySettled", err)
	}
	if got := e.Balance(t, seller).Available; !got.Equal(usecasetest.Dec("30")) {
		t.Fatalf("seller available = %s", got)
	}
	e.RequireBalanced(t)
}

func TestConcurrentResolutionsSettleOnce(t *testing.T) {
	e := newEngine(t)
	order := e.DisputedOrder(t, buyer, seller, "90")

	var succeeded, settled atomic.Int32
	var g errgroup.Group
	outcomes := []domain.ResolutionOutcome{domain.OutcomeSeller, domain.OutcomeBuyer, domain.OutcomeSeller, domain.OutcomeBuyer}
	for _, outcome := range outcomes {
		g.Go(func() error {
			_, err := resolve(e, order.ID, outcome, "")
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrAlreadySettled):
				settled.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if succeeded.Load() != 1 || settled.Load() != int32(len(outcomes)-1) {
		t.Fatalf("succeeded = %d, already settled = %d", succeeded.Load(), settled.Load())
	}

	paid := e.Balance(t, seller).Available.Add(e.Balance(t, buyer).Available)
	if !paid.Equal(usecasetest.Dec("90")) {
		t.Fatalf("paid out %s, want 90", paid)
	}
	e.RequireBalanced(t)
}

func TestIdempotentResolveReplays(t *testing.T) {
	e := newEngine(t)
	order := e.DisputedOrder(t, buyer, seller, "50")
	input := func() *disputedto.ResolveDisputeInput {
		return &disputedto.ResolveDisputeInput{
			OrderID:        order.ID,
			ResolverID:     admin,
			Outcome:        domain.OutcomeSplit,
			SellerShare:    usecasetest.Share("20"),
			IdempotencyKey: "ruling-1",
		}
	}

	first, err := e.Disputes.ResolveDispute(context.Background(), input())
	if err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}
	again, err := e.Disputes.ResolveDispute(context.Background(), input())
	if err != nil {
		t.Fatalf("replayed ResolveDispute: %v", err)
	}
	if again.Kind != first.Kind || !again.SellerShare.Equal(first.SellerShare) || !again.SettledAt.Equal(first.SettledAt) {
		t.Fatalf("replay = %+v, want %+v", again, first)
	}
	if got := e.Balance(t, seller).Available; !got.Equal(usecasetest.Dec("20")) {
		t.Fatalf("seller available = %s", got)
	}

	other := input()
	other.Outcome = domain.OutcomeBuyer
	other.SellerShare = nil
	if _, err := e.Disputes.ResolveDispute(context.Background(), other); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("same key with another ruling: err = %v, want ErrInvalidInput", err)
	}
	e.RequireBalanced(t)
}

func TestDisputeOpenedFromPendingConfirm(t *testing.T) {
	e := newEngine(t)
	order := e.DisputedOrder(t, buyer, seller, "10")

	dispute, err := e.Disputes.GetDisputeByOrderID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("GetDisputeByOrderID: %v", err)
	}
	if dispute.OrderStatusOpened != domain.StatusPendingConfirm || dispute.Reason != "not as described" {
		t.Fatalf("dispute = %+v", dispute)
	}
	if order.ConfirmDeadline != nil {
		t.Fatalf("confirm deadline kept on a disputed order: %v", order.ConfirmDeadline)
	}

	// A disputed order is never auto-confirmed.
	e.Clock.Advance(usecasetest.Settings.ConfirmGracePeriod * 2)
	if n, err := e.Orders.AutoConfirmOrders(context.Background()); err != nil || n != 0 {
		t.Fatalf("sweep = %d, %v", n, err)
	}
}

func TestGetDisputes(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	first := e.DisputedOrder(t, buyer, seller, "10")
	e.DisputedOrder(t, "buyer-2", seller, "20")
	if _, err := resolve(e, first.ID, domain.OutcomeSeller, ""); err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}

	open, err := e.Disputes.GetDisputes(ctx, &disputedto.GetDisputesInput{Status: domain.DisputeOpen})
	if err != nil {
		t.Fatalf("GetDisputes: %v", err)
	}
	if open.Pagination.TotalItems != 1 || open.Disputes[0].OpenedBy != "buyer-2" {
		t.Fatalf("open disputes = %+v", open)
	}

	byOrder, err := e.Disputes.GetDisputes(ctx, &disputedto.GetDisputesInput{OrderID: first.ID})
	if err != nil {
		t.Fatalf("GetDisputes: %v", err)
	}
	if len(byOrder.Disputes) != 1 || byOrder.Disputes[0].Status != domain.DisputeResolved {
		t.Fatalf("disputes of order = %+v", byOrder.Disputes)
	}
}

func TestResolutionEventsArePublished(t *testing.T) {
	e := newEngine(t)
	order := e.DisputedOrder(t, buyer, seller, "10")
	if _, err := resolve(e, order.ID, domain.OutcomeBuyer, ""); err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		events := e.Publisher.DisputeEvents()
		if len(events) == 2 {
			if events[0].Status != domain.DisputeOpen && events[1].Status != domain.DisputeOpen {
				t.Fatalf("no dispute opened event: %+v", events)
			}
			for _, ev := range events {
				if ev.Status == domain.DisputeResolved && (ev.Outcome != string(domain.OutcomeBuyer) || ev.BuyerShare != "10.00") {
					t.Fatalf("resolved event = %+v", ev)
				}
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("got %d dispute events, want 2", len(events))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRiskScoreFollowsOutcomes(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	refunded := e.DisputedOrder(t, buyer, seller, "10")
	if _, err := resolve(e, refunded.ID, domain.OutcomeBuyer, ""); err != nil {
		t.Fatalf("ResolveDispute: %v", err)
	}
	cancelled := e.StartedOrder(t, buyer, seller, "10")
	e.Act(t, e.Orders.CancelOrder, cancelled.ID, buyer)
	for i := 0; i < 2; i++ {
		done := e.StartedOrder(t, buyer, seller, "10")
		e.Act(t, e.Orders.DeliverOrder, done.ID, seller)
		e.Act(t, e.Orders.ConfirmDelivery, done.ID, buyer)
	}
	// Open orders do not count.
	e.StartedOrder(t, buyer, seller, "10")

	score, err := e.Risk.GetRiskScore(ctx, buyer)
	if err != nil {
		t.Fatalf("GetRiskScore: %v", err)
	}
	// 0.7 * 1/4 + 0.3 * 2/4
	if !score.Score.Equal(usecasetest.Dec("32.5")) || score.HighRisk {
		t.Fatalf("score = %+v", score)
	}
	if score.TotalOrders != 4 || score.DisputedOrders != 1 || score.CancelledOrders != 2 || score.CompletedOrders != 2 {
		t.Fatalf("score counts = %+v", score)
	}
}
