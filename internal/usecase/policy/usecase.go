package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// DefaultPolicyUsecase owns seller risk policies, user profiles and the
// admission gate built on them.
type DefaultPolicyUsecase struct {
	Store domain.Store
	Now   func() time.Time
}

func NewDefaultPolicyUsecase(store domain.Store) *DefaultPolicyUsecase {
	return &DefaultPolicyUsecase{
		Store: store,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

// policyFor falls back to the admit-all policy for sellers without one.
func policyFor(ctx context.Context, r domain.Repositories, sellerID string) (*domain.SellerRiskPolicy, error) {
	policy, err := r.Policies().GetPolicy(ctx, sellerID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultSellerPolicy(sellerID), nil
	}
	return policy, err
}
