package riskdto

import "time"

type SetPolicyInput struct {
	SellerID              string
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
}

type SyncProfileInput struct {
	UserID           string
	Role             string
	AccountCreatedAt time.Time
	EmailVerified    bool
	PhoneVerified    bool
}
