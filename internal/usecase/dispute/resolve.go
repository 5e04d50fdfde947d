package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase"
	disputedto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/dispute"
	escrowusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/escrow"
	"github.com/google/uuid"
)

const publishTimeout = 10 * time.Second

// resolution is what a committed ruling reports after the transaction.
type resolution struct {
	order      *domain.Order
	dispute    *domain.Dispute
	settlement *escrowusecase.Settlement
	result     *domain.SettlementResult
}

// ResolveDispute settles a disputed order with exactly one ledger operation.
// Concurrent rulings on one order serialize on its row lock; the first wins
// and the rest see the order already resolved.
func (uc *DefaultDisputeUsecase) ResolveDispute(ctx context.Context, input *disputedto.ResolveDisputeInput) (*domain.SettlementResult, error) {
	if input.OrderID == "" || input.ResolverID == "" {
		return nil, fmt.Errorf("%w: order_id and resolver_id are required", domain.ErrInvalidInput)
	}
	input.Notes = strings.TrimSpace(input.Notes)

	now := uc.Now()
	req := usecase.Request{
		Key:         input.IdempotencyKey,
		Operation:   "resolve_dispute",
		OrderID:     input.OrderID,
		Fingerprint: usecase.Fingerprint(input),
	}

	var done *resolution
	out, replayed, err := usecase.RunIdempotent(ctx, uc.Store, req, now, func(r domain.Repositories) (*domain.SettlementResult, error) {
		res, err := uc.resolve(ctx, r, input, now)
		if err != nil {
			return nil, err
		}
		done = res
		return res.result, nil
	})
	if err != nil {
		uc.Metrics.RecordError("resolve_dispute")
		return nil, err
	}
	if !replayed && done != nil {
		uc.afterCommit(done)
	}
	return out, nil
}

func (uc *DefaultDisputeUsecase) resolve(ctx context.Context, r domain.Repositories, input *disputedto.ResolveDisputeInput, now time.Time) (*resolution, error) {
	profile, err := r.Profiles().GetProfile(ctx, input.ResolverID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil || !profile.IsAdmin() {
		return nil, fmt.Errorf("%w: %s cannot resolve disputes", domain.ErrForbidden, input.ResolverID)
	}

	order, err := r.Orders().GetOrderForUpdate(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusDisputed {
		escrow, err := r.Escrows().GetEscrow(ctx, order.ID)
		if err == nil && escrow.Status.IsSettled() {
			return nil, fmt.Errorf("%w: order %s was already resolved", domain.ErrAlreadySettled, order.ID)
		}
		return nil, fmt.Errorf("%w: order %s is %s, not disputed", domain.ErrInvalidState, order.ID, order.Status)
	}

	escrow, err := r.Escrows().GetEscrowForUpdate(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if escrow.Status != domain.EscrowHolding {
		return nil, fmt.Errorf("%w: escrow for order %s is %s", domain.ErrInvalidState, order.ID, escrow.Status)
	}

	action := domain.ResolutionAction{Outcome: input.Outcome, SellerShare: input.SellerShare}
	sellerShare, buyerShare, err := action.Shares(escrow.HeldAmount)
	if err != nil {
		return nil, err
	}

	var settlement *escrowusecase.Settlement
	switch action.Outcome {
	case domain.OutcomeSeller:
		settlement, err = uc.Escrow.Release(ctx, r, escrow, input.ResolverID, input.Notes)
	case domain.OutcomeBuyer:
		settlement, err = uc.Escrow.Refund(ctx, r, escrow, input.ResolverID, input.Notes)
	default:
		settlement, err = uc.Escrow.PartialResolve(ctx, r, escrow, sellerShare, buyerShare, input.ResolverID, input.Notes)
	}
	if err != nil {
		return nil, err
	}

	from := order.Status
	if err := order.Transition(action.ResultingStatus(), now); err != nil {
		return nil, err
	}
	order.ResolverID = &input.ResolverID
	if input.Notes != "" {
		order.ResolutionNotes = &input.Notes
	}
	if err := r.Orders().UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	if err := r.Transitions().AppendTransition(ctx, &domain.OrderTransition{
		ID:      uuid.NewString(),
		OrderID: order.ID,
		From:    from,
		To:      order.Status,
		ActorID: input.ResolverID,
		Note:    input.Notes,
		At:      now,
	}); err != nil {
		return nil, err
	}

	dispute, err := r.Disputes().GetOpenDisputeForUpdate(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	outcome := action.Outcome
	dispute.Status = domain.DisputeResolved
	dispute.Outcome = &outcome
	dispute.SellerShare = sellerShare
	dispute.BuyerShare = buyerShare
	dispute.ResolverID = &input.ResolverID
	if input.Notes != "" {
		dispute.Notes = &input.Notes
	}
	dispute.ResolvedAt = &now
	if err := r.Disputes().UpdateDispute(ctx, dispute); err != nil {
		return nil, err
	}

	if _, err := uc.Risk.Recompute(ctx, r, order.BuyerID); err != nil {
		return nil, err
	}

	return &resolution{
		order:      order,
		dispute:    dispute,
		settlement: settlement,
		result: &domain.SettlementResult{
			OrderID:      order.ID,
			Kind:         settlement.Kind,
			EscrowStatus: escrow.Status,
			OrderStatus:  order.Status,
			SellerShare:  sellerShare,
			BuyerShare:   buyerShare,
			SettledAt:    now,
			SettledBy:    input.ResolverID,
		},
	}, nil
}

func (uc *DefaultDisputeUsecase) afterCommit(res *resolution) {
	order, dispute := res.order, res.dispute
	uc.Metrics.RecordTransition(string(domain.StatusDisputed), string(order.Status))
	uc.Metrics.RecordDisputeResolved(string(*dispute.Outcome))
	uc.Escrow.RecordSettlement(res.settlement)

	slog.Info("dispute resolved",
		"order_id", order.ID,
		"outcome", *dispute.Outcome,
		"seller_share", dispute.SellerShare.String(),
		"buyer_share", dispute.BuyerShare.String(),
		"resolver_id", res.result.SettledBy,
	)

	if uc.Publisher == nil {
		return
	}
	orderEvent := domain.OrderEvent{
		OrderID:   order.ID,
		Number:    order.Number,
		BuyerID:   order.BuyerID,
		SellerID:  order.SellerID,
		From:      domain.StatusDisputed,
		Status:    order.Status,
		Amount:    order.Amount.StringFixed(domain.MoneyScale),
		Currency:  order.Currency,
		ActorID:   res.result.SettledBy,
		Timestamp: res.result.SettledAt,
	}
	disputeEvent := domain.DisputeEvent{
		DisputeID:   dispute.ID,
		OrderID:     dispute.OrderID,
		OpenedBy:    dispute.OpenedBy,
		Reason:      dispute.Reason,
		Status:      dispute.Status,
		Outcome:     string(*dispute.Outcome),
		SellerShare: dispute.SellerShare.StringFixed(domain.MoneyScale),
		BuyerShare:  dispute.BuyerShare.StringFixed(domain.MoneyScale),
		ResolverID:  res.result.SettledBy,
		Timestamp:   res.result.SettledAt,
	}
	go func(orderEvent domain.OrderEvent, disputeEvent domain.DisputeEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := uc.Publisher.PublishOrder(ctx, orderEvent); err != nil {
			slog.Error("failed to publish order event", "stage", "dispute_resolved", "order_id", orderEvent.OrderID, "error", err.Error())
		}
		if err := uc.Publisher.PublishDispute(ctx, disputeEvent); err != nil {
			slog.Error("failed to publish dispute event", "stage", "dispute_resolved", "order_id", disputeEvent.OrderID, "error", err.Error())
		}
	}(orderEvent, disputeEvent)
}
