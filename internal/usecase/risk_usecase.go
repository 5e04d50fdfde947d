package usecase

import (
	"context"

	riskdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/risk"
)

type RiskUsecase interface {
	GetRiskScore(ctx context.Context, buyerID string) (*riskdto.RiskScoreOutput, error)
	RecomputeRiskScore(ctx context.Context, buyerID string) (*riskdto.RiskScoreOutput, error)
}

type PolicyUsecase interface {
	GetSellerPolicy(ctx context.Context, sellerID string) (*riskdto.PolicyOutput, error)
	SetSellerPolicy(ctx context.Context, input *riskdto.SetPolicyInput) (*riskdto.PolicyOutput, error)
	SyncProfile(ctx context.Context, input *riskdto.SyncProfileInput) (*riskdto.ProfileOutput, error)
	GetProfile(ctx context.Context, userID string) (*riskdto.ProfileOutput, error)
}
