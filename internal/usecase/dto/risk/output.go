package riskdto

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/shopspring/decimal"
)

type RiskScoreOutput struct {
	BuyerID         string          `json:"buyer_id"`
	TotalOrders     int64           `json:"total_orders"`
	CompletedOrders int64           `json:"completed_orders"`
	DisputedOrders  int64           `json:"disputed_orders"`
	CancelledOrders int64           `json:"cancelled_orders"`
	Score           decimal.Decimal `json:"score"`
	HighRisk        bool            `json:"high_risk"`
	ComputedAt      time.Time       `json:"computed_at"`
}

func ToRiskScoreOutput(s *domain.RiskScore) *RiskScoreOutput {
	return &RiskScoreOutput{
		BuyerID:         s.BuyerID,
		TotalOrders:     s.TotalOrders,
		CompletedOrders: s.CompletedOrders,
		DisputedOrders:  s.DisputedOrders,
		CancelledOrders: s.CancelledOrders,
		Score:           s.Score,
		HighRisk:        s.HighRisk,
		ComputedAt:      s.ComputedAt,
	}
}

type PolicyOutput struct {
	SellerID              string    `json:"seller_id"`
	BlockNewBuyers        bool      `json:"block_new_buyers"`
	NewBuyerMinAgeDays    int       `json:"new_buyer_min_age_days"`
	BlockDisputedBuyers   bool      `json:"block_disputed_buyers"`
	MaxDisputes           int       `json:"max_disputes"`
	MaxConcurrentOrders   int       `json:"max_concurrent_orders"`
	DelayDeliveryForRisky bool      `json:"delay_delivery_for_risky"`
	DelayMinutes          int       `json:"delay_minutes"`
	RequireEmailVerified  bool      `json:"require_email_verified"`
	RequirePhoneVerified  bool      `json:"require_phone_verified"`
	MinCompletedOrders    int       `json:"min_completed_orders"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func ToPolicyOutput(p *domain.SellerRiskPolicy) *PolicyOutput {
	return &PolicyOutput{
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

type ProfileOutput struct {
	UserID           string      `json:"user_id"`
	Role             domain.Role `json:"role"`
	AccountCreatedAt time.Time   `json:"account_created_at"`
	EmailVerified    bool        `json:"email_verified"`
	PhoneVerified    bool        `json:"phone_verified"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func ToProfileOutput(p *domain.UserProfile) *ProfileOutput {
	return &ProfileOutput{
		UserID:           p.UserID,
		Role:             p.Role,
		AccountCreatedAt: p.AccountCreatedAt,
		EmailVerified:    p.EmailVerified,
		PhoneVerified:    p.PhoneVerified,
		UpdatedAt:        p.UpdatedAt,
	}
}
