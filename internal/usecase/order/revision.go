package usecase

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) RequestRevision(ctx context.Context, input *orderdto.ActionInput) (*orderdto.OrderOutput, error) {
	return uc.ProcessOrderOperation(ctx, &OrderOperation{
		OrderID:        input.OrderID,
		ActorID:        input.ActorID,
		Operation:      "request_revision",
		IdempotencyKey: input.IdempotencyKey,
		Input:          input,
		Apply: func(ctx context.Context, tx *OrderTx) error {
			order := tx.Order
			if err := requireBuyer(order, tx.ActorID); err != nil {
				return err
			}
			if err := requireVisibleDelivery(order, tx); err != nil {
				return err
			}
			if order.RevisionsRemaining() == 0 {
				return fmt.Errorf("%w: order %s used %d of %d revisions",
					domain.ErrRevisionLimitExceeded, order.ID, order.RevisionsUsed, order.RevisionsAllowed)
			}
			if err := tx.Move(domain.StatusRevisionRequested, input.Note); err != nil {
				return err
			}
			order.RevisionsUsed++
			order.ConfirmDeadline = nil
			return nil
		},
	})
}

// requireVisibleDelivery admits delivered orders the buyer can already see
// and orders awaiting confirmation.
func requireVisibleDelivery(order *domain.Order, tx *OrderTx) error {
	switch order.Status {
	case domain.StatusPendingConfirm:
		return nil
	case domain.StatusDelivered:
		if !order.DeliveryVisible(tx.Now) {
			return invalidState(order, "delivery is not visible yet")
		}
		return nil
	default:
		return invalidState(order, "status is "+string(order.Status))
	}
}
