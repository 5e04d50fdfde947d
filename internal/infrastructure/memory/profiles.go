package memory

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

func (r *repos) GetRiskScore(ctx context.Context, buyerID string) (*domain.RiskScore, error) {
	st, unlock := r.begin()
	defer unlock()
	s, ok := st.risk[buyerID]
	if !ok {
		return nil, fmt.Errorf("risk score %s: %w", buyerID, domain.ErrNotFound)
	}
	return &s, nil
}

func (r *repos) SaveRiskScore(ctx context.Context, score *domain.RiskScore) error {
	st, unlock := r.begin()
	defer unlock()
	st.risk[score.BuyerID] = *score
	return nil
}

func (r *repos) GetPolicy(ctx context.Context, sellerID string) (*domain.SellerRiskPolicy, error) {
	st, unlock := r.begin()
	defer unlock()
	p, ok := st.policies[sellerID]
	if !ok {
		return nil, fmt.Errorf("seller policy %s: %w", sellerID, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *repos) SavePolicy(ctx context.Context, policy *domain.SellerRiskPolicy) error {
	st, unlock := r.begin()
	defer unlock()
	st.policies[policy.SellerID] = *policy
	return nil
}

func (r *repos) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	st, unlock := r.begin()
	defer unlock()
	p, ok := st.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("user profile %s: %w", userID, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *repos) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	st, unlock := r.begin()
	defer unlock()
	st.profiles[profile.UserID] = *profile
	return nil
}

func (r *repos) GetRecord(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	st, unlock := r.begin()
	defer unlock()
	rec, ok := st.idempotency[key]
	if !ok {
		return nil, fmt.Errorf("idempotency key %q: %w", key, domain.ErrNotFound)
	}
	return &rec, nil
}

func (r *repos) SaveRecord(ctx context.Context, record *domain.IdempotencyRecord) error {
	st, unlock := r.begin()
	defer unlock()
	if _, ok := st.idempotency[record.Key]; ok {
		return fmt.Errorf("key %q: %w", record.Key, domain.ErrDuplicateIdempotencyKey)
	}
	st.idempotency[record.Key] = *record
	return nil
}
