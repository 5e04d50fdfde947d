package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EscrowModel struct {
	OrderID     string `gorm:"primaryKey;type:uuid"`
	BuyerID     string
	SellerID    string
	HeldAmount  decimal.Decimal `gorm:"type:numeric(18,2)"`
	Currency    string
	Status      string          `gorm:"index"`
	SellerShare decimal.Decimal `gorm:"type:numeric(18,2)"`
	BuyerShare  decimal.Decimal `gorm:"type:numeric(18,2)"`
	SettledAt   *time.Time
	SettledBy   *string
	Notes       *string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (EscrowModel) TableName() string {
	return "escrows"
}

type BalanceModel struct {
	UserID    string          `gorm:"primaryKey"`
	Available decimal.Decimal `gorm:"type:numeric(18,2)"`
	Frozen    decimal.Decimal `gorm:"type:numeric(18,2)"`
	Version   int64
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (BalanceModel) TableName() string {
	return "balances"
}

// LedgerEntryModel rows are insert-only.
type LedgerEntryModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Seq       int64  `gorm:"->"`
	OrderID   string `gorm:"type:uuid;index"`
	AccountID string
	Kind      string
	Amount    decimal.Decimal `gorm:"type:numeric(18,2)"`
	CreatedAt time.Time
}

func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}
