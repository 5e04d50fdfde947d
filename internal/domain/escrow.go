package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type EscrowStatus string

const (
	EscrowPending  EscrowStatus = "pending"
	EscrowHolding  EscrowStatus = "holding"
	EscrowReleased EscrowStatus = "released"
	EscrowRefunded EscrowStatus = "refunded"
)

func (s EscrowStatus) IsSettled() bool {
	return s == EscrowReleased || s == EscrowRefunded
}

// Escrow is owned by exactly one order and keyed by its id.
type Escrow struct {
	OrderID     string
	BuyerID     string
	SellerID    string
	HeldAmount  decimal.Decimal
	Currency    string
	Status      EscrowStatus
	SellerShare decimal.Decimal
	BuyerShare  decimal.Decimal
	SettledAt   *time.Time
	SettledBy   *string
	Notes       *string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ensureHolding rejects settlement of anything but a holding record,
// including one that was never funded.
func (e *Escrow) ensureHolding() error {
	if e.Status != EscrowHolding {
		return fmt.Errorf("%w: escrow for order %s is %s", ErrAlreadySettled, e.OrderID, e.Status)
	}
	return nil
}

// Open moves captured funds into custody.
func (e *Escrow) Open(amount decimal.Decimal, now time.Time) error {
	if e.Status.IsSettled() {
		return fmt.Errorf("%w: escrow for order %s is %s", ErrAlreadySettled, e.OrderID, e.Status)
	}
	if e.Status != EscrowPending {
		return fmt.Errorf("%w: escrow for order %s is already %s", ErrInvalidState, e.OrderID, e.Status)
	}
	if !amount.Equal(e.HeldAmount) {
		return fmt.Errorf("%w: captured %s, order amount %s", ErrAmountMismatch, amount, e.HeldAmount)
	}
	e.Status = EscrowHolding
	e.UpdatedAt = now
	return nil
}

// Settle closes the record. Settled records never change again.
func (e *Escrow) Settle(status EscrowStatus, sellerShare, buyerShare decimal.Decimal, actor, notes string, now time.Time) error {
	if err := e.ensureHolding(); err != nil {
		return err
	}
	if err := ValidateShares(e.HeldAmount, sellerShare, buyerShare); err != nil {
		return err
	}
	e.Status = status
	e.SellerShare = sellerShare
	e.BuyerShare = buyerShare
	e.SettledAt = &now
	e.SettledBy = &actor
	if notes != "" {
		e.Notes = &notes
	}
	e.UpdatedAt = now
	return nil
}

// SettlementKind names which ledger operation closed an escrow.
type SettlementKind string

const (
	SettlementRelease SettlementKind = "release"
	SettlementRefund  SettlementKind = "refund"
	SettlementSplit   SettlementKind = "split"
)

type SettlementResult struct {
	OrderID      string          `json:"order_id"`
	Kind         SettlementKind  `json:"kind"`
	EscrowStatus EscrowStatus    `json:"escrow_status"`
	OrderStatus  OrderStatus     `json:"order_status"`
	SellerShare  decimal.Decimal `json:"seller_share"`
	BuyerShare   decimal.Decimal `json:"buyer_share"`
	SettledAt    time.Time       `json:"settled_at"`
	SettledBy    string          `json:"settled_by"`
}

type Reconciliation struct {
	HeldInEscrow decimal.Decimal `json:"held_in_escrow"`
	FrozenFunds  decimal.Decimal `json:"frozen_funds"`
	Drift        decimal.Decimal `json:"drift"`
	Balanced     bool            `json:"balanced"`
	CheckedAt    time.Time       `json:"checked_at"`
}
