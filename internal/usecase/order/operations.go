package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
	escrowusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/escrow"
	"github.com/google/uuid"
)

const publishTimeout = 10 * time.Second

// OrderOperation is one state machine step on an existing order.
type OrderOperation struct {
	OrderID        string
	ActorID        string
	Operation      string
	IdempotencyKey string
	// Input is the caller's request; retries with the same key must repeat it.
	Input any
	// Apply validates the locked order and changes it through tx.
	Apply func(ctx context.Context, tx *OrderTx) error
}

// OrderTx carries an operation through its transaction and collects what has
// to be reported once it commits.
type OrderTx struct {
	Repos   domain.Repositories
	Order   *domain.Order
	ActorID string
	Now     time.Time

	moves      []orderMove
	settlement *escrowusecase.Settlement
	dispute    *domain.Dispute
}

type orderMove struct {
	from, to domain.OrderStatus
	note     string
}

// Move transitions the order and records the step for the audit trail.
func (tx *OrderTx) Move(to domain.OrderStatus, note string) error {
	from := tx.Order.Status
	if err := tx.Order.Transition(to, tx.Now); err != nil {
		return err
	}
	tx.moves = append(tx.moves, orderMove{from: from, to: to, note: note})
	return nil
}

// LockHoldingEscrow locks the order's escrow and requires funds in custody.
func (tx *OrderTx) LockHoldingEscrow(ctx context.Context) (*domain.Escrow, error) {
	escrow, err := tx.Repos.Escrows().GetEscrowForUpdate(ctx, tx.Order.ID)
	if err != nil {
		return nil, err
	}
	if escrow.Status != domain.EscrowHolding {
		return nil, invalidState(tx.Order, "escrow is "+string(escrow.Status))
	}
	return escrow, nil
}

// ProcessOrderOperation runs op atomically: order row lock, validation, the
// status change, ledger movements and the audit trail commit together.
// Events and metrics follow the commit and never fail the operation.
func (uc *DefaultOrderUsecase) ProcessOrderOperation(ctx context.Context, op *OrderOperation) (*orderdto.OrderOutput, error) {
	if op.OrderID == "" || op.ActorID == "" {
		return nil, fmt.Errorf("%w: order_id and actor_id are required", domain.ErrInvalidInput)
	}
	now := uc.Now()
	req := usecase.Request{
		Key:         op.IdempotencyKey,
		Operation:   op.Operation,
		OrderID:     op.OrderID,
		Fingerprint: usecase.Fingerprint(op.ActorID, op.Input),
	}

	var committed *OrderTx
	out, replayed, err := usecase.RunIdempotent(ctx, uc.Store, req, now, func(r domain.Repositories) (*orderdto.OrderOutput, error) {
		order, err := r.Orders().GetOrderForUpdate(ctx, op.OrderID)
		if err != nil {
			return nil, err
		}
		tx := &OrderTx{Repos: r, Order: order, ActorID: op.ActorID, Now: now}
		if err := op.Apply(ctx, tx); err != nil {
			return nil, err
		}
		if err := uc.persist(ctx, tx); err != nil {
			return nil, err
		}
		committed = tx
		return orderdto.ToOrderOutput(tx.Order), nil
	})
	if err != nil {
		if !errors.Is(err, errNoLongerDue) {
			uc.Metrics.RecordError(op.Operation)
		}
		return nil, err
	}
	if !replayed && committed != nil {
		uc.afterCommit(committed)
	}
	return out, nil
}

// persist writes the order, its transitions and, for terminal outcomes, the
// buyer's new risk score.
func (uc *DefaultOrderUsecase) persist(ctx context.Context, tx *OrderTx) error {
	r := tx.Repos
	if err := r.Orders().UpdateOrder(ctx, tx.Order); err != nil {
		return err
	}
	for _, m := range tx.moves {
		if err := r.Transitions().AppendTransition(ctx, &domain.OrderTransition{
			ID:      uuid.NewString(),
			OrderID: tx.Order.ID,
			From:    m.from,
			To:      m.to,
			ActorID: tx.ActorID,
			Note:    m.note,
			At:      tx.Now,
		}); err != nil {
			return err
		}
	}
	if tx.Order.Status.IsTerminal() {
		if _, err := uc.Risk.Recompute(ctx, r, tx.Order.BuyerID); err != nil {
			return err
		}
	}
	return nil
}

func (uc *DefaultOrderUsecase) afterCommit(tx *OrderTx) {
	events := make([]domain.OrderEvent, 0, len(tx.moves))
	for _, m := range tx.moves {
		uc.Metrics.RecordTransition(string(m.from), string(m.to))
		events = append(events, newOrderEvent(tx.Order, m.from, m.to, tx.ActorID, tx.Now))
	}
	uc.Escrow.RecordSettlement(tx.settlement)
	uc.publishOrderEvents(events)

	if tx.dispute != nil {
		uc.Metrics.RecordDisputeOpened()
		uc.publishDisputeEvent(domain.DisputeEvent{
			DisputeID: tx.dispute.ID,
			OrderID:   tx.dispute.OrderID,
			OpenedBy:  tx.dispute.OpenedBy,
			Reason:    tx.dispute.Reason,
			Status:    tx.dispute.Status,
			Timestamp: tx.dispute.OpenedAt,
		})
	}
}

func newOrderEvent(order *domain.Order, from, to domain.OrderStatus, actorID string, at time.Time) domain.OrderEvent {
	return domain.OrderEvent{
		OrderID:   order.ID,
		Number:    order.Number,
		BuyerID:   order.BuyerID,
		SellerID:  order.SellerID,
		From:      from,
		Status:    to,
		Amount:    order.Amount.StringFixed(domain.MoneyScale),
		Currency:  order.Currency,
		ActorID:   actorID,
		Timestamp: at,
	}
}

// publishOrderEvents sends events asynchronously; a broker outage is logged,
// the committed operation stands.
func (uc *DefaultOrderUsecase) publishOrderEvents(events []domain.OrderEvent) {
	if uc.Publisher == nil || len(events) == 0 {
		return
	}
	go func(events []domain.OrderEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		for _, event := range events {
			if err := uc.Publisher.PublishOrder(ctx, event); err != nil {
				slog.Error("failed to publish order event", "order_id", event.OrderID, "status", event.Status, "error", err.Error())
			}
		}
	}(events)
}

func (uc *DefaultOrderUsecase) publishDisputeEvent(event domain.DisputeEvent) {
	if uc.Publisher == nil {
		return
	}
	go func(event domain.DisputeEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := uc.Publisher.PublishDispute(ctx, event); err != nil {
			slog.Error("failed to publish dispute event", "order_id", event.OrderID, "error", err.Error())
		}
	}(event)
}
