package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/usecasetest"
)

func TestRiskScoreOfNewBuyerIsZero(t *testing.T) {
	e := usecasetest.NewEngine(t)
	ctx := context.Background()

	score, err := e.Risk.GetRiskScore(ctx, "buyer-1")
	if err != nil {
		t.Fatalf("GetRiskScore: %v", err)
	}
	if !score.Score.IsZero() || score.HighRisk || score.TotalOrders != 0 {
		t.Fatalf("score = %+v", score)
	}
	if _, err := e.Store.RiskScores().GetRiskScore(ctx, "buyer-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("score was persisted on read: err = %v", err)
	}

	if _, err := e.Risk.GetRiskScore(ctx, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty buyer: err = %v, want ErrInvalidInput", err)
	}
}

func TestRecomputeRiskScore(t *testing.T) {
	e := usecasetest.NewEngine(t)
	ctx := context.Background()

	cancelled := e.StartedOrder(t, "buyer-1", "seller-1", "10")
	e.Act(t, e.Orders.CancelOrder, cancelled.ID, "buyer-1")
	completed := e.StartedOrder(t, "buyer-1", "seller-1", "10")
	e.Act(t, e.Orders.DeliverOrder, completed.ID, "seller-1")
	e.Act(t, e.Orders.ConfirmDelivery, completed.ID, "buyer-1")

	score, err := e.Risk.RecomputeRiskScore(ctx, "buyer-1")
	if err != nil {
		t.Fatalf("RecomputeRiskScore: %v", err)
	}
	// 0.3 * 1/2
	if !score.Score.Equal(usecasetest.Dec("15")) || score.HighRisk {
		t.Fatalf("score = %+v", score)
	}

	stored, err := e.Store.RiskScores().GetRiskScore(ctx, "buyer-1")
	if err != nil {
		t.Fatalf("stored score: %v", err)
	}
	if !stored.Score.Equal(score.Score) || stored.TotalOrders != 2 {
		t.Fatalf("stored = %+v", stored)
	}
}
