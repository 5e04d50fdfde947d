package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase"
	escrowdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/escrow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CapturePayment opens the escrow of an order once the gateway captured
// the buyer's payment.
func (uc *DefaultEscrowUsecase) CapturePayment(ctx context.Context, input *escrowdto.CapturePaymentInput) (*escrowdto.EscrowOutput, error) {
	if input.OrderID == "" {
		return nil, fmt.Errorf("%w: order_id is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	req := usecase.Request{
		Key:         input.IdempotencyKey,
		Operation:   "capture_payment",
		OrderID:     input.OrderID,
		Fingerprint: usecase.Fingerprint(input),
	}
	out, replayed, err := usecase.RunIdempotent(ctx, uc.Store, req, uc.Now(), func(r domain.Repositories) (*escrowdto.EscrowOutput, error) {
		escrow, err := uc.Open(ctx, r, input.OrderID, input.Amount)
		if err != nil {
			return nil, err
		}
		return escrowdto.ToEscrowOutput(escrow), nil
	})
	if err != nil {
		uc.Metrics.RecordError("capture_payment")
		return nil, err
	}

	if !replayed {
		slog.Info("escrow opened", "order_id", out.OrderID, "amount", out.HeldAmount.String(), "currency", out.Currency)
	}
	return out, nil
}

// Open moves amount into custody: pending -> holding. The captured funds are
// credited to the buyer and frozen in the same step.
func (uc *DefaultEscrowUsecase) Open(ctx context.Context, r domain.Repositories, orderID string, amount decimal.Decimal) (*domain.Escrow, error) {
	order, err := r.Orders().GetOrderForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	escrow, err := r.Escrows().GetEscrowForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if escrow.Status.IsSettled() {
		return nil, fmt.Errorf("%w: escrow for order %s is %s", domain.ErrAlreadySettled, orderID, escrow.Status)
	}
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: order %s is %s", domain.ErrInvalidState, orderID, order.Status)
	}

	now := uc.Now()
	if err := escrow.Open(amount, now); err != nil {
		return nil, err
	}

	buyer, err := r.Balances().GetBalanceForUpdate(ctx, escrow.BuyerID)
	if err != nil {
		return nil, err
	}
	buyer.Credit(amount, now)
	if err := buyer.Freeze(amount, now); err != nil {
		return nil, err
	}

	if err := r.Balances().UpdateBalance(ctx, buyer); err != nil {
		return nil, err
	}
	if err := r.Escrows().UpdateEscrow(ctx, escrow); err != nil {
		return nil, err
	}
	if err := r.Ledger().AppendEntries(ctx,
		newEntry(orderID, escrow.BuyerID, domain.EntryCapture, amount, now),
		newEntry(orderID, escrow.BuyerID, domain.EntryHold, amount, now),
	); err != nil {
		return nil, err
	}
	return escrow, nil
}

func newEntry(orderID, accountID string, kind domain.LedgerEntryKind, amount decimal.Decimal, now time.Time) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		AccountID: accountID,
		Kind:      kind,
		Amount:    amount,
		CreatedAt: now,
	}
}
