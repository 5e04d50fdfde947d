package repository

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RiskScoreRepository struct {
	db *gorm.DB
}

func (r *RiskScoreRepository) GetRiskScore(ctx context.Context, buyerID string) (*domain.RiskScore, error) {
	var model models.RiskScoreModel
	if err := r.db.WithContext(ctx).First(&model, "buyer_id = ?", buyerID).Error; err != nil {
		return nil, notFound(err, "risk score", buyerID)
	}
	return mappers.ToDomainRiskScore(&model), nil
}

func (r *RiskScoreRepository) SaveRiskScore(ctx context.Context, score *domain.RiskScore) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(mappers.ToGORMRiskScore(score)).Error; err != nil {
		return fmt.Errorf("failed to save risk score: %w", err)
	}
	return nil
}

type PolicyRepository struct {
	db *gorm.DB
}

func (r *PolicyRepository) GetPolicy(ctx context.Context, sellerID string) (*domain.SellerRiskPolicy, error) {
	var model models.SellerPolicyModel
	if err := r.db.WithContext(ctx).First(&model, "seller_id = ?", sellerID).Error; err != nil {
		return nil, notFound(err, "seller policy", sellerID)
	}
	return mappers.ToDomainPolicy(&model), nil
}

func (r *PolicyRepository) SavePolicy(ctx context.Context, policy *domain.SellerRiskPolicy) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(mappers.ToGORMPolicy(policy)).Error; err != nil {
		return fmt.Errorf("failed to save seller policy: %w", err)
	}
	return nil
}

type ProfileRepository struct {
	db *gorm.DB
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var model models.UserProfileModel
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err, "user profile", userID)
	}
	return mappers.ToDomainProfile(&model), nil
}

func (r *ProfileRepository) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(mappers.ToGORMProfile(profile)).Error; err != nil {
		return fmt.Errorf("failed to save user profile: %w", err)
	}
	return nil
}
