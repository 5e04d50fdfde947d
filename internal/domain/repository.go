package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	// GetOrderForUpdate locks the order row until the transaction ends.
	GetOrderForUpdate(ctx context.Context, orderID string) (*Order, error)
	// UpdateOrder persists order if its version is unchanged and bumps it.
	UpdateOrder(ctx context.Context, order *Order) error
	ListOrders(ctx context.Context, filter OrderFilter) ([]*Order, int64, error)
	CountOpenOrders(ctx context.Context, buyerID, sellerID string) (int64, error)
	// FindDueOrders returns ids of orders in status whose DueAt is not after now.
	FindDueOrders(ctx context.Context, status OrderStatus, now time.Time, limit int) ([]string, error)
	GetBuyerStats(ctx context.Context, buyerID string) (OrderStats, error)
}

type EscrowRepository interface {
	CreateEscrow(ctx context.Context, escrow *Escrow) error
	GetEscrow(ctx context.Context, orderID string) (*Escrow, error)
	GetEscrowForUpdate(ctx context.Context, orderID string) (*Escrow, error)
	UpdateEscrow(ctx context.Context, escrow *Escrow) error
	SumHolding(ctx context.Context) (decimal.Decimal, error)
}

type BalanceRepository interface {
	// GetBalanceForUpdate locks the row, creating an empty balance first if
	// the user has none.
	GetBalanceForUpdate(ctx context.Context, userID string) (*Balance, error)
	GetBalance(ctx context.Context, userID string) (*Balance, error)
	UpdateBalance(ctx context.Context, balance *Balance) error
	SumFrozen(ctx context.Context) (decimal.Decimal, error)
}

type LedgerRepository interface {
	AppendEntries(ctx context.Context, entries ...*LedgerEntry) error
	ListEntries(ctx context.Context, orderID string) ([]*LedgerEntry, error)
}

type DisputeRepository interface {
	CreateDispute(ctx context.Context, dispute *Dispute) error
	GetOpenDisputeForUpdate(ctx context.Context, orderID string) (*Dispute, error)
	UpdateDispute(ctx context.Context, dispute *Dispute) error
	// GetDisputeByOrderID returns the most recent dispute of the order.
	GetDisputeByOrderID(ctx context.Context, orderID string) (*Dispute, error)
	ListDisputes(ctx context.Context, filter DisputeFilter) ([]*Dispute, int64, error)
}

type RiskScoreRepository interface {
	GetRiskScore(ctx context.Context, buyerID string) (*RiskScore, error)
	SaveRiskScore(ctx context.Context, score *RiskScore) error
}

type PolicyRepository interface {
	// GetPolicy returns ErrNotFound for sellers that never set a policy.
	GetPolicy(ctx context.Context, sellerID string) (*SellerRiskPolicy, error)
	SavePolicy(ctx context.Context, policy *SellerRiskPolicy) error
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	SaveProfile(ctx context.Context, profile *UserProfile) error
}

type TransitionRepository interface {
	AppendTransition(ctx context.Context, t *OrderTransition) error
	ListTransitions(ctx context.Context, orderID string) ([]*OrderTransition, error)
}

type IdempotencyRepository interface {
	GetRecord(ctx context.Context, key string) (*IdempotencyRecord, error)
	// SaveRecord fails with ErrDuplicateIdempotencyKey if key is taken.
	SaveRecord(ctx context.Context, record *IdempotencyRecord) error
}

// Repositories is one consistent view of storage. Inside InTx every
// repository shares the same transaction.
type Repositories interface {
	Orders() OrderRepository
	Escrows() EscrowRepository
	Balances() BalanceRepository
	Ledger() LedgerRepository
	Disputes() DisputeRepository
	RiskScores() RiskScoreRepository
	Policies() PolicyRepository
	Profiles() ProfileRepository
	Transitions() TransitionRepository
	Idempotency() IdempotencyRepository
}

// Store runs fn atomically: every write made through r is committed
// together, or none is when fn returns an error.
type Store interface {
	Repositories
	InTx(ctx context.Context, fn func(r Repositories) error) error
}
