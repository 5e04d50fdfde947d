package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RiskScoreModel struct {
	BuyerID         string `gorm:"primaryKey"`
	TotalOrders     int64
	CompletedOrders int64
	DisputedOrders  int64
	CancelledOrders int64
	Score           decimal.Decimal `gorm:"type:numeric(5,2)"`
	HighRisk        bool
	ComputedAt      time.Time
}

func (RiskScoreModel) TableName() string {
	return "risk_scores"
}

type SellerPolicyModel struct {
	SellerID              string `gorm:"primaryKey"`
	BlockNewBuyers        bool
	NewBuyerMinAgeDays    int
	BlockDisputedBuyers   bool
	MaxDisputes           int
	MaxConcurrentOrders   int
	DelayDeliveryForRisky bool
	DelayMinutes          int
	RequireEmailVerified  bool
	RequirePhoneVerified  bool
	MinCompletedOrders    int
	UpdatedAt             time.Time `gorm:"autoUpdateTime:false"`
}

func (SellerPolicyModel) TableName() string {
	return "seller_policies"
}

type UserProfileModel struct {
	UserID           string `gorm:"primaryKey"`
	Role             string
	AccountCreatedAt time.Time
	EmailVerified    bool
	PhoneVerified    bool
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false"`
}

func (UserProfileModel) TableName() string {
	return "user_profiles"
}
