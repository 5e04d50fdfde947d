package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	escrowdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/escrow"
)

type EscrowUsecase interface {
	CapturePayment(ctx context.Context, input *escrowdto.CapturePaymentInput) (*escrowdto.EscrowOutput, error)
	GetEscrow(ctx context.Context, orderID string) (*escrowdto.EscrowOutput, error)
	GetLedger(ctx context.Context, orderID string) ([]*escrowdto.LedgerEntryOutput, error)
	GetBalance(ctx context.Context, userID string) (*escrowdto.BalanceOutput, error)
	Reconcile(ctx context.Context) (*domain.Reconciliation, error)
}
