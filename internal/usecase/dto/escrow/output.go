package escrowdto

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/shopspring/decimal"
)

type EscrowOutput struct {
	OrderID     string              `json:"order_id"`
	BuyerID     string              `json:"buyer_id"`
	SellerID    string              `json:"seller_id"`
	HeldAmount  decimal.Decimal     `json:"held_amount"`
	Currency    string              `json:"currency"`
	Status      domain.EscrowStatus `json:"status"`
	SellerShare decimal.Decimal     `json:"seller_share"`
	BuyerShare  decimal.Decimal     `json:"buyer_share"`
	SettledAt   *time.Time          `json:"settled_at,omitempty"`
	SettledBy   *string             `json:"settled_by,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func ToEscrowOutput(e *domain.Escrow) *EscrowOutput {
	return &EscrowOutput{
		OrderID:     e.OrderID,
		BuyerID:     e.BuyerID,
		SellerID:    e.SellerID,
		HeldAmount:  e.HeldAmount,
		Currency:    e.Currency,
		Status:      e.Status,
		SellerShare: e.SellerShare,
		BuyerShare:  e.BuyerShare,
		SettledAt:   e.SettledAt,
		SettledBy:   e.SettledBy,
		Notes:       e.Notes,
		UpdatedAt:   e.UpdatedAt,
	}
}

type LedgerEntryOutput struct {
	ID        string                 `json:"id"`
	AccountID string                 `json:"account_id"`
	Kind      domain.LedgerEntryKind `json:"kind"`
	Amount    decimal.Decimal        `json:"amount"`
	CreatedAt time.Time              `json:"created_at"`
}

func ToLedgerOutputs(entries []*domain.LedgerEntry) []*LedgerEntryOutput {
	out := make([]*LedgerEntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, &LedgerEntryOutput{
			ID:        e.ID,
			AccountID: e.AccountID,
			Kind:      e.Kind,
			Amount:    e.Amount,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

type BalanceOutput struct {
	UserID    string          `json:"user_id"`
	Available decimal.Decimal `json:"available"`
	Frozen    decimal.Decimal `json:"frozen"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func ToBalanceOutput(b *domain.Balance) *BalanceOutput {
	return &BalanceOutput{
		UserID:    b.UserID,
		Available: b.Available,
		Frozen:    b.Frozen,
		UpdatedAt: b.UpdatedAt,
	}
}
