package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// Admit checks buyerID against the seller's policy. Callers run it inside
// the create transaction after locking the buyer's balance row, so the
// open-order count cannot change underneath it.
func (uc *DefaultPolicyUsecase) Admit(ctx context.Context, r domain.Repositories, buyerID, sellerID string) error {
	policy, err := policyFor(ctx, r, sellerID)
	if err != nil {
		return fmt.Errorf("load seller policy: %w", err)
	}
	facts, err := uc.admissionFacts(ctx, r, buyerID, sellerID)
	if err != nil {
		return err
	}
	return policy.Admit(facts)
}

func (uc *DefaultPolicyUsecase) admissionFacts(ctx context.Context, r domain.Repositories, buyerID, sellerID string) (domain.AdmissionFacts, error) {
	var facts domain.AdmissionFacts

	// Buyers the identity service has not synced yet count as brand-new,
	// unverified accounts.
	profile, err := r.Profiles().GetProfile(ctx, buyerID)
	switch {
	case err == nil:
		facts.AccountAge = uc.Now().Sub(profile.AccountCreatedAt)
		facts.EmailVerified = profile.EmailVerified
		facts.PhoneVerified = profile.PhoneVerified
	case !errors.Is(err, domain.ErrNotFound):
		return facts, fmt.Errorf("load buyer profile: %w", err)
	}

	stats, err := r.Orders().GetBuyerStats(ctx, buyerID)
	if err != nil {
		return facts, fmt.Errorf("buyer stats: %w", err)
	}
	facts.DisputedOrders = stats.Disputed + stats.ActiveDisputes
	facts.CompletedOrders = stats.Completed

	open, err := r.Orders().CountOpenOrders(ctx, buyerID, sellerID)
	if err != nil {
		return facts, fmt.Errorf("count open orders: %w", err)
	}
	facts.OpenOrdersWithSeller = open

	return facts, nil
}

// DeliveryDelay is how long a delivery on order stays hidden from the buyer.
func (uc *DefaultPolicyUsecase) DeliveryDelay(ctx context.Context, r domain.Repositories, order *domain.Order) (time.Duration, error) {
	policy, err := policyFor(ctx, r, order.SellerID)
	if err != nil {
		return 0, fmt.Errorf("load seller policy: %w", err)
	}
	if !policy.DelayDeliveryForRisky {
		return 0, nil
	}
	score, err := r.RiskScores().GetRiskScore(ctx, order.BuyerID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load risk score: %w", err)
	}
	return policy.DeliveryDelay(score), nil
}
