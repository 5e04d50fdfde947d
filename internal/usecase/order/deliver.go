package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) DeliverOrder(ctx context.Context, input *orderdto.ActionInput) (*orderdto.OrderOutput, error) {
	return uc.ProcessOrderOperation(ctx, &OrderOperation{
		OrderID:        input.OrderID,
		ActorID:        input.ActorID,
		Operation:      "deliver",
		IdempotencyKey: input.IdempotencyKey,
		Input:          input,
		Apply: func(ctx context.Context, tx *OrderTx) error {
			if err := requireSeller(tx.Order, tx.ActorID); err != nil {
				return err
			}
			if err := requireStatus(tx.Order, domain.StatusInProgress); err != nil {
				return err
			}
			return uc.applyDelivery(ctx, tx, input.Note)
		},
	})
}

// RedeliverOrder answers a revision request with a new delivery.
func (uc *DefaultOrderUsecase) RedeliverOrder(ctx context.Context, input *orderdto.ActionInput) (*orderdto.OrderOutput, error) {
	return uc.ProcessOrderOperation(ctx, &OrderOperation{
		OrderID:        input.OrderID,
		ActorID:        input.ActorID,
		Operation:      "redeliver",
		IdempotencyKey: input.IdempotencyKey,
		Input:          input,
		Apply: func(ctx context.Context, tx *OrderTx) error {
			if err := requireSeller(tx.Order, tx.ActorID); err != nil {
				return err
			}
			if err := requireStatus(tx.Order, domain.StatusRevisionRequested); err != nil {
				return err
			}
			return uc.applyDelivery(ctx, tx, input.Note)
		},
	})
}

// applyDelivery records the delivery and hides it from high-risk buyers for
// the seller's delay. Without a delay the confirmation window opens at once;
// otherwise the reveal sweep opens it when the delivery becomes visible.
func (uc *DefaultOrderUsecase) applyDelivery(ctx context.Context, tx *OrderTx, note string) error {
	delay, err := uc.Policy.DeliveryDelay(ctx, tx.Repos, tx.Order)
	if err != nil {
		return err
	}
	if err := tx.Move(domain.StatusDelivered, note); err != nil {
		return err
	}
	tx.Order.MarkDelivered(tx.Now, delay)
	if delay > 0 {
		return nil
	}
	if err := tx.Move(domain.StatusPendingConfirm, ""); err != nil {
		return err
	}
	tx.Order.OpenConfirmWindow(uc.Settings.ConfirmGracePeriod)
	return nil
}
