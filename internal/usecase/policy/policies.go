package usecase

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	riskdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/risk"
)

func (uc *DefaultPolicyUsecase) GetSellerPolicy(ctx context.Context, sellerID string) (*riskdto.PolicyOutput, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller_id is required", domain.ErrInvalidInput)
	}
	policy, err := policyFor(ctx, uc.Store, sellerID)
	if err != nil {
		return nil, err
	}
	return riskdto.ToPolicyOutput(policy), nil
}

func (uc *DefaultPolicyUsecase) SetSellerPolicy(ctx context.Context, input *riskdto.SetPolicyInput) (*riskdto.PolicyOutput, error) {
	policy := &domain.SellerRiskPolicy{
		SellerID:              input.SellerID,
		BlockNewBuyers:        input.BlockNewBuyers,
		NewBuyerMinAgeDays:    input.NewBuyerMinAgeDays,
		BlockDisputedBuyers:   input.BlockDisputedBuyers,
		MaxDisputes:           input.MaxDisputes,
		MaxConcurrentOrders:   input.MaxConcurrentOrders,
		DelayDeliveryForRisky: input.DelayDeliveryForRisky,
		DelayMinutes:          input.DelayMinutes,
		RequireEmailVerified:  input.RequireEmailVerified,
		RequirePhoneVerified:  input.RequirePhoneVerified,
		MinCompletedOrders:    input.MinCompletedOrders,
		UpdatedAt:             uc.Now(),
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if err := uc.Store.Policies().SavePolicy(ctx, policy); err != nil {
		return nil, err
	}
	return riskdto.ToPolicyOutput(policy), nil
}
