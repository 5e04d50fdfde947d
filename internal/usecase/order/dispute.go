package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenDispute freezes the order until an admin resolves it. Either party
// may open one while work or delivery is underway.
func (uc *DefaultOrderUsecase) OpenDispute(ctx context.Context, input *orderdto.OpenDisputeInput) (*orderdto.OrderOutput, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: dispute reason is required", domain.ErrInvalidInput)
	}

	return uc.ProcessOrderOperation(ctx, &OrderOperation{
		OrderID:        input.OrderID,
		ActorID:        input.ActorID,
		Operation:      "open_dispute",
		IdempotencyKey: input.IdempotencyKey,
		Input:          input,
		Apply: func(ctx context.Context, tx *OrderTx) error {
			order := tx.Order
			if err := requireParty(order, tx.ActorID); err != nil {
				return err
			}
			openedIn := order.Status
			if err := tx.Move(domain.StatusDisputed, reason); err != nil {
				return err
			}
			disputedAt := tx.Now
			order.DisputedAt = &disputedAt
			order.DisputeReason = &reason
			order.ConfirmDeadline = nil

			dispute := &domain.Dispute{
				ID:                uuid.NewString(),
				OrderID:           order.ID,
				OpenedBy:          tx.ActorID,
				Reason:            reason,
				OrderStatusOpened: openedIn,
				Status:            domain.DisputeOpen,
				SellerShare:       decimal.Zero,
				BuyerShare:        decimal.Zero,
				OpenedAt:          tx.Now,
			}
			if err := tx.Repos.Disputes().CreateDispute(ctx, dispute); err != nil {
				return err
			}
			tx.dispute = dispute
			return nil
		},
	})
}
