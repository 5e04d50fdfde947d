package mappers

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainRiskScore(model *models.RiskScoreModel) *domain.RiskScore {
	return &domain.RiskScore{
		BuyerID:         model.BuyerID,
		TotalOrders:     model.TotalOrders,
		CompletedOrders: model.CompletedOrders,
		DisputedOrders:  model.DisputedOrders,
		CancelledOrders: model.CancelledOrders,
		Score:           model.Score,
		HighRisk:        model.HighRisk,
		ComputedAt:      model.ComputedAt,
	}
}

func ToGORMRiskScore(score *domain.RiskScore) *models.RiskScoreModel {
	return &models.RiskScoreModel{
		BuyerID:         score.BuyerID,
		TotalOrders:     score.TotalOrders,
		CompletedOrders: score.CompletedOrders,
		DisputedOrders:  score.DisputedOrders,
		CancelledOrders: score.CancelledOrders,
		Score:           score.Score,
		HighRisk:        score.HighRisk,
		ComputedAt:      score.ComputedAt,
	}
}

func ToDomainPolicy(model *models.SellerPolicyModel) *domain.SellerRiskPolicy {
	return &domain.SellerRiskPolicy{
		SellerID:              model.SellerID,
		BlockNewBuyers:        model.BlockNewBuyers,
		NewBuyerMinAgeDays:    model.NewBuyerMinAgeDays,
		BlockDisputedBuyers:   model.BlockDisputedBuyers,
		MaxDisputes:           model.MaxDisputes,
		MaxConcurrentOrders:   model.MaxConcurrentOrders,
		DelayDeliveryForRisky: model.DelayDeliveryForRisky,
		DelayMinutes:          model.DelayMinutes,
		RequireEmailVerified:  model.RequireEmailVerified,
		RequirePhoneVerified:  model.RequirePhoneVerified,
		MinCompletedOrders:    model.MinCompletedOrders,
		UpdatedAt:             model.UpdatedAt,
	}
}

func ToGORMPolicy(p *domain.SellerRiskPolicy) *models.SellerPolicyModel {
	return &models.SellerPolicyModel{
		SellerID:              p.SellerID,
		BlockNewBuyers:        p.BlockNewBuyers,
		NewBuyerMinAgeDays:    p.NewBuyerMinAgeDays,
		BlockDisputedBuyers:   p.BlockDisputedBuyers,
		MaxDisputes:           p.MaxDisputes,
		MaxConcurrentOrders:   p.MaxConcurrentOrders,
		DelayDeliveryForRisky: p.DelayDeliveryForRisky,
		DelayMinutes:          p.DelayMinutes,
		RequireEmailVerified:  p.RequireEmailVerified,
		RequirePhoneVerified:  p.RequirePhoneVerified,
		MinCompletedOrders:    p.MinCompletedOrders,
		UpdatedAt:             p.UpdatedAt,
	}
}

func ToDomainProfile(model *models.UserProfileModel) *domain.UserProfile {
	return &domain.UserProfile{
		UserID:           model.UserID,
		Role:             domain.Role(model.Role),
		AccountCreatedAt: model.AccountCreatedAt,
		EmailVerified:    model.EmailVerified,
		PhoneVerified:    model.PhoneVerified,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToGORMProfile(p *domain.UserProfile) *models.UserProfileModel {
	return &models.UserProfileModel{
		UserID:           p.UserID,
		Role:             string(p.Role),
		AccountCreatedAt: p.AccountCreatedAt,
		EmailVerified:    p.EmailVerified,
		PhoneVerified:    p.PhoneVerified,
		UpdatedAt:        p.UpdatedAt,
	}
}
