package domain

import (
	"fmt"
	"time"
)

// MaxDelayMinutes caps how long a delivery may stay hidden from a buyer.
const MaxDelayMinutes = 7 * 24 * 60

// SellerRiskPolicy is owned by the seller; the engine only reads it.
type SellerRiskPolicy struct {
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
	UpdatedAt             time.Time
}

// DefaultSellerPolicy admits everyone. Used for sellers without a policy.
func DefaultSellerPolicy(sellerID string) *SellerRiskPolicy {
	return &SellerRiskPolicy{SellerID: sellerID}
}

func (p *SellerRiskPolicy) Validate() error {
	switch {
	case p.SellerID == "":
		return fmt.Errorf("%w: seller_id is required", ErrInvalidInput)
	case p.NewBuyerMinAgeDays < 0:
		return fmt.Errorf("%w: new_buyer_min_age_days cannot be negative", ErrInvalidInput)
	case p.MaxDisputes < 0:
		return fmt.Errorf("%w: max_disputes cannot be negative", ErrInvalidInput)
	case p.MaxConcurrentOrders < 0:
		return fmt.Errorf("%w: max_concurrent_orders cannot be negative", ErrInvalidInput)
	case p.DelayMinutes < 0:
		return fmt.Errorf("%w: delay_minutes cannot be negative", ErrInvalidInput)
	case p.DelayMinutes > MaxDelayMinutes:
		return fmt.Errorf("%w: delay_minutes cannot exceed %d", ErrInvalidInput, MaxDelayMinutes)
	case p.MinCompletedOrders < 0:
		return fmt.Errorf("%w: min_completed_orders cannot be negative", ErrInvalidInput)
	}
	return nil
}

// AdmissionFacts is what the gate knows about a buyer at checkout.
type AdmissionFacts struct {
	AccountAge           time.Duration
	DisputedOrders       int64
	OpenOrdersWithSeller int64
	EmailVerified        bool
	PhoneVerified        bool
	CompletedOrders      int64
}

// Admit runs the checks in a fixed order and reports the first failure:
// account age, disputes, concurrency, verification, completed orders.
func (p *SellerRiskPolicy) Admit(f AdmissionFacts) error {
	minAge := time.Duration(p.NewBuyerMinAgeDays) * 24 * time.Hour
	if p.BlockNewBuyers && f.AccountAge < minAge {
		return NewAdmissionError(ReasonAccountTooNew)
	}
	if p.BlockDisputedBuyers && f.DisputedOrders > int64(p.MaxDisputes) {
		return NewAdmissionError(ReasonTooManyDisputes)
	}
	if p.MaxConcurrentOrders > 0 && f.OpenOrdersWithSeller >= int64(p.MaxConcurrentOrders) {
		return NewAdmissionError(ReasonTooManyOpenOrders)
	}
	if p.RequireEmailVerified && !f.EmailVerified {
		return NewAdmissionError(ReasonEmailNotVerified)
	}
	if p.RequirePhoneVerified && !f.PhoneVerified {
		return NewAdmissionError(ReasonPhoneNotVerified)
	}
	if f.CompletedOrders < int64(p.MinCompletedOrders) {
		return NewAdmissionError(ReasonNotEnoughCompletions)
	}
	return nil
}

// DeliveryDelay is how long a delivery stays hidden from this buyer.
func (p *SellerRiskPolicy) DeliveryDelay(score *RiskScore) time.Duration {
	if !p.DelayDeliveryForRisky || score == nil || !score.HighRisk {
		return 0
	}
	minutes := min(max(p.DelayMinutes, 0), MaxDelayMinutes)
	return time.Duration(minutes) * time.Minute
}

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// UserProfile is the identity collaborator's projection of a user.
type UserProfile struct {
	UserID           string
	Role             Role
	AccountCreatedAt time.Time
	EmailVerified    bool
	PhoneVerified    bool
	UpdatedAt        time.Time
}

func (p *UserProfile) IsAdmin() bool { return p != nil && p.Role == RoleAdmin }

func (p *UserProfile) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	switch p.Role {
	case RoleBuyer, RoleSeller, RoleAdmin:
	default:
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, p.Role)
	}
	if p.AccountCreatedAt.IsZero() {
		return fmt.Errorf("%w: account_created_at is required", ErrInvalidInput)
	}
	return nil
}
