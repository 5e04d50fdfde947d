package mappers

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainEscrow(model *models.EscrowModel) *domain.Escrow {
	return &domain.Escrow{
		OrderID:     model.OrderID,
		BuyerID:     model.BuyerID,
		SellerID:    model.SellerID,
		HeldAmount:  model.HeldAmount,
		Currency:    model.Currency,
		Status:      domain.EscrowStatus(model.Status),
		SellerShare: model.SellerShare,
		BuyerShare:  model.BuyerShare,
		SettledAt:   model.SettledAt,
		SettledBy:   model.SettledBy,
		Notes:       model.Notes,
		Version:     model.Version,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMEscrow(escrow *domain.Escrow) *models.EscrowModel {
	return &models.EscrowModel{
		OrderID:     escrow.OrderID,
		BuyerID:     escrow.BuyerID,
		SellerID:    escrow.SellerID,
		HeldAmount:  escrow.HeldAmount,
		Currency:    escrow.Currency,
		Status:      string(escrow.Status),
		SellerShare: escrow.SellerShare,
		BuyerShare:  escrow.BuyerShare,
		SettledAt:   escrow.SettledAt,
		SettledBy:   escrow.SettledBy,
		Notes:       escrow.Notes,
		Version:     escrow.Version,
		CreatedAt:   escrow.CreatedAt,
		UpdatedAt:   escrow.UpdatedAt,
	}
}

func ToDomainBalance(model *models.BalanceModel) *domain.Balance {
	return &domain.Balance{
		UserID:    model.UserID,
		Available: model.Available,
		Frozen:    model.Frozen,
		Version:   model.Version,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMBalance(balance *domain.Balance) *models.BalanceModel {
	return &models.BalanceModel{
		UserID:    balance.UserID,
		Available: balance.Available,
		Frozen:    balance.Frozen,
		Version:   balance.Version,
		UpdatedAt: balance.UpdatedAt,
	}
}

func ToDomainLedgerEntry(model *models.LedgerEntryModel) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:        model.ID,
		OrderID:   model.OrderID,
		AccountID: model.AccountID,
		Kind:      domain.LedgerEntryKind(model.Kind),
		Amount:    model.Amount,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMLedgerEntry(entry *domain.LedgerEntry) *models.LedgerEntryModel {
	return &models.LedgerEntryModel{
		ID:        entry.ID,
		OrderID:   entry.OrderID,
		AccountID: entry.AccountID,
		Kind:      string(entry.Kind),
		Amount:    entry.Amount,
		CreatedAt: entry.CreatedAt,
	}
}
