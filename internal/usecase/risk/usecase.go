package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type DefaultRiskUsecase struct {
	Store   domain.Store
	Weights domain.RiskWeights
	Now     func() time.Time
}

func NewDefaultRiskUsecase(store domain.Store, weights domain.RiskWeights) *DefaultRiskUsecase {
	return &DefaultRiskUsecase{
		Store:   store,
		Weights: weights,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

// Recompute rebuilds the buyer's score through r, so the score commits
// together with the order outcome that changed it.
func (uc *DefaultRiskUsecase) Recompute(ctx context.Context, r domain.Repositories, buyerID string) (*domain.RiskScore, error) {
	stats, err := r.Orders().GetBuyerStats(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("buyer stats: %w", err)
	}
	score := domain.ComputeRiskScore(buyerID, stats, uc.Weights, uc.Now())
	if err := r.RiskScores().SaveRiskScore(ctx, &score); err != nil {
		return nil, fmt.Errorf("save risk score: %w", err)
	}
	return &score, nil
}
