package request

import "time"

type SetPolicyRequest struct {
	BlockNewBuyers        bool `json:"block_new_buyers"`
	NewBuyerMinAgeDays    int  `json:"new_buyer_min_age_days"`
	BlockDisputedBuyers   bool `json:"block_disputed_buyers"`
	MaxDisputes           int  `json:"max_disputes"`
	MaxConcurrentOrders   int  `json:"max_concurrent_orders"`
	DelayDeliveryForRisky bool `json:"delay_delivery_for_risky"`
	DelayMinutes          int  `json:"delay_minutes"`
	RequireEmailVerified  bool `json:"require_email_verified"`
	RequirePhoneVerified  bool `json:"require_phone_verified"`
	MinCompletedOrders    int  `json:"min_completed_orders"`
}

type SyncProfileRequest struct {
	Role             string    `json:"role" binding:"required"`
	AccountCreatedAt time.Time `json:"account_created_at"`
	EmailVerified    bool      `json:"email_verified"`
	PhoneVerified    bool      `json:"phone_verified"`
}
