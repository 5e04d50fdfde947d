package usecase

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	riskdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/risk"
)

// SyncProfile upserts the identity service's view of a user.
func (uc *DefaultPolicyUsecase) SyncProfile(ctx context.Context, input *riskdto.SyncProfileInput) (*riskdto.ProfileOutput, error) {
	profile := &domain.UserProfile{
		UserID:           input.UserID,
		Role:             domain.Role(input.Role),
		AccountCreatedAt: input.AccountCreatedAt.UTC(),
		EmailVerified:    input.EmailVerified,
		PhoneVerified:    input.PhoneVerified,
		UpdatedAt:        uc.Now(),
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := uc.Store.Profiles().SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return riskdto.ToProfileOutput(profile), nil
}

func (uc *DefaultPolicyUsecase) GetProfile(ctx context.Context, userID string) (*riskdto.ProfileOutput, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}
	profile, err := uc.Store.Profiles().GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return riskdto.ToProfileOutput(profile), nil
}
