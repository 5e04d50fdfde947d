package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
)

// AcceptOrder starts work on a funded order. Sellers never start on an
// order whose payment was not captured.
func (uc *DefaultOrderUsecase) AcceptOrder(ctx context.Context, input *orderdto.ActionInput) (*orderdto.OrderOutput, error) {
	return uc.ProcessOrderOperation(ctx, &OrderOperation{
		OrderID:        input.OrderID,
		ActorID:        input.ActorID,
		Operation:      "accept",
		IdempotencyKey: input.IdempotencyKey,
		Input:          input,
		Apply: func(ctx context.Context, tx *OrderTx) error {
			if err := requireSeller(tx.Order, tx.ActorID); err != nil {
				return err
			}
			if err := requireStatus(tx.Order, domain.StatusPendingAccept); err != nil {
				return err
			}
			if _, err := tx.LockHoldingEscrow(ctx); err != nil {
				return err
			}
			return tx.Move(domain.StatusInProgress, input.Note)
		},
	})
}
