package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	riskdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/risk"
)

// GetRiskScore returns the stored score. Buyers without a stored score get
// one computed on the fly; it is not persisted.
func (uc *DefaultRiskUsecase) GetRiskScore(ctx context.Context, buyerID string) (*riskdto.RiskScoreOutput, error) {
	if buyerID == "" {
		return nil, fmt.Errorf("%w: buyer_id is required", domain.ErrInvalidInput)
	}
	score, err := uc.Store.RiskScores().GetRiskScore(ctx, buyerID)
	if err == nil {
		return riskdto.ToRiskScoreOutput(score), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	stats, err := uc.Store.Orders().GetBuyerStats(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	computed := domain.ComputeRiskScore(buyerID, stats, uc.Weights, uc.Now())
	return riskdto.ToRiskScoreOutput(&computed), nil
}

func (uc *DefaultRiskUsecase) RecomputeRiskScore(ctx context.Context, buyerID string) (*riskdto.RiskScoreOutput, error) {
	if buyerID == "" {
		return nil, fmt.Errorf("%w: buyer_id is required", domain.ErrInvalidInput)
	}
	var score *domain.RiskScore
	err := uc.Store.InTx(ctx, func(r domain.Repositories) error {
		var err error
		score, err = uc.Recompute(ctx, r, buyerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return riskdto.ToRiskScoreOutput(score), nil
}
