package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type LedgerEntryKind string

const (
	EntryCapture LedgerEntryKind = "capture"
	EntryHold    LedgerEntryKind = "hold"
	EntryRelease LedgerEntryKind = "release"
	EntryRefund  LedgerEntryKind = "refund"
)

// LedgerEntry is an append-only custody movement. Rows are never updated.
type LedgerEntry struct {
	ID        string
	OrderID   string
	AccountID string
	Kind      LedgerEntryKind
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// Balance is a user's wallet. Frozen holds buyer funds sitting in escrow.
type Balance struct {
	UserID    string
	Available decimal.Decimal
	Frozen    decimal.Decimal
	Version   int64
	UpdatedAt time.Time
}

func (b *Balance) Credit(amount decimal.Decimal, now time.Time) {
	b.Available = b.Available.Add(amount)
	b.UpdatedAt = now
}

func (b *Balance) Freeze(amount decimal.Decimal, now time.Time) error {
	if b.Available.LessThan(amount) {
		return fmt.Errorf("%w: available %s is below %s", ErrInvalidState, b.Available, amount)
	}
	b.Available = b.Available.Sub(amount)
	b.Frozen = b.Frozen.Add(amount)
	b.UpdatedAt = now
	return nil
}

func (b *Balance) Unfreeze(amount decimal.Decimal, now time.Time) error {
	if b.Frozen.LessThan(amount) {
		return fmt.Errorf("%w: frozen %s is below %s", ErrInvalidState, b.Frozen, amount)
	}
	b.Frozen = b.Frozen.Sub(amount)
	b.UpdatedAt = now
	return nil
}
