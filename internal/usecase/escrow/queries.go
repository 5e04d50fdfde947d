package usecase

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	escrowdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/escrow"
	"github.com/shopspring/decimal"
)

func (uc *DefaultEscrowUsecase) GetEscrow(ctx context.Context, orderID string) (*escrowdto.EscrowOutput, error) {
	escrow, err := uc.Store.Escrows().GetEscrow(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return escrowdto.ToEscrowOutput(escrow), nil
}

func (uc *DefaultEscrowUsecase) GetLedger(ctx context.Context, orderID string) ([]*escrowdto.LedgerEntryOutput, error) {
	if _, err := uc.Store.Escrows().GetEscrow(ctx, orderID); err != nil {
		return nil, err
	}
	entries, err := uc.Store.Ledger().ListEntries(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return escrowdto.ToLedgerOutputs(entries), nil
}

// GetBalance reports users that never touched the ledger as empty.
func (uc *DefaultEscrowUsecase) GetBalance(ctx context.Context, userID string) (*escrowdto.BalanceOutput, error) {
	balance, err := uc.Store.Balances().GetBalance(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		balance = &domain.Balance{UserID: userID, Available: decimal.Zero, Frozen: decimal.Zero}
	} else if err != nil {
		return nil, err
	}
	return escrowdto.ToBalanceOutput(balance), nil
}
