package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
)

// ConfirmDelivery completes the order and releases the escrow to the seller
// in the same transaction.
func (uc *DefaultOrderUsecase) ConfirmDelivery(ctx context.Context, input *orderdto.ActionInput) (*orderdto.OrderOutput, error) {
	return uc.ProcessOrderOperation(ctx, &OrderOperation{
		OrderID:        input.OrderID,
		ActorID:        input.ActorID,
		Operation:      "confirm",
		IdempotencyKey: input.IdempotencyKey,
		Input:          input,
		Apply: func(ctx context.Context, tx *OrderTx) error {
			if err := requireBuyer(tx.Order, tx.ActorID); err != nil {
				return err
			}
			if err := requireVisibleDelivery(tx.Order, tx); err != nil {
				return err
			}
			return uc.completeAndRelease(ctx, tx, input.Note)
		},
	})
}

// completeAndRelease walks the order to completed and pays the seller.
func (uc *DefaultOrderUsecase) completeAndRelease(ctx context.Context, tx *OrderTx, note string) error {
	escrow, err := tx.LockHoldingEscrow(ctx)
	if err != nil {
		return err
	}
	if tx.Order.Status == domain.StatusDelivered {
		if err := tx.Move(domain.StatusPendingConfirm, ""); err != nil {
			return err
		}
	}
	if err := tx.Move(domain.StatusCompleted, note); err != nil {
		return err
	}
	settlement, err := uc.Escrow.Release(ctx, tx.Repos, escrow, tx.ActorID, note)
	if err != nil {
		return err
	}
	tx.settlement = settlement
	return nil
}
