package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) CancelOrder(ctx context.Context, input *orderdto.ActionInput) (*orderdto.OrderOutput, error) {
	return uc.ProcessOrderOperation(ctx, &OrderOperation{
		OrderID:        input.OrderID,
		ActorID:        input.ActorID,
		Operation:      "cancel",
		IdempotencyKey: input.IdempotencyKey,
		Input:          input,
		Apply: func(ctx context.Context, tx *OrderTx) error {
			if err := requireParty(tx.Order, tx.ActorID); err != nil {
				return err
			}
			if err := requireStatus(tx.Order, domain.StatusPendingAccept, domain.StatusInProgress); err != nil {
				return err
			}
			return uc.cancelAndRefund(ctx, tx, input.Note)
		},
	})
}

// cancelAndRefund cancels the order and returns captured funds to the buyer.
// An escrow that was never funded stays pending.
func (uc *DefaultOrderUsecase) cancelAndRefund(ctx context.Context, tx *OrderTx, note string) error {
	escrow, err := tx.Repos.Escrows().GetEscrowForUpdate(ctx, tx.Order.ID)
	if err != nil {
		return err
	}
	if err := tx.Move(domain.StatusCancelled, note); err != nil {
		return err
	}
	if escrow.Status != domain.EscrowHolding {
		return nil
	}
	settlement, err := uc.Escrow.Refund(ctx, tx.Repos, escrow, tx.ActorID, note)
	if err != nil {
		return err
	}
	tx.settlement = settlement
	return nil
}
