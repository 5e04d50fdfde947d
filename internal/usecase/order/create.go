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
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"
)

const (
	orderNumberPrefix = "DO-"
	// no 0/O or 1/I, numbers get read out to support
	orderNumberAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	orderNumberLength   = 10

	maxDeliveryDays = 365
)

func (uc *DefaultOrderUsecase) CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error) {
	if err := uc.normalizeCreateInput(input); err != nil {
		return nil, err
	}

	numberGenerator, err := nanoid.CustomASCII(orderNumberAlphabet, orderNumberLength)
	if err != nil {
		return nil, fmt.Errorf("order number generator: %w", err)
	}

	now := uc.Now()
	order := &domain.Order{
		ID:               uuid.NewString(),
		Number:           orderNumberPrefix + numberGenerator(),
		BuyerID:          input.BuyerID,
		SellerID:         input.SellerID,
		ServiceID:        input.ServiceID,
		Amount:           input.Amount,
		Currency:         input.Currency,
		Status:           domain.StatusPendingAccept,
		RevisionsAllowed: *input.RevisionsAllowed,
		DeliveryDeadline: now.Add(time.Duration(input.DeliveryDays) * 24 * time.Hour),
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	acceptBy := now.Add(uc.Settings.AcceptTimeout)
	order.DueAt = &acceptBy

	escrow := &domain.Escrow{
		OrderID:     order.ID,
		BuyerID:     order.BuyerID,
		SellerID:    order.SellerID,
		HeldAmount:  order.Amount,
		Currency:    order.Currency,
		Status:      domain.EscrowPending,
		SellerShare: decimal.Zero,
		BuyerShare:  decimal.Zero,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	req := usecase.Request{Key: input.IdempotencyKey, Operation: "create_order", Fingerprint: usecase.Fingerprint(input)}
	out, replayed, err := usecase.RunIdempotent(ctx, uc.Store, req, now, func(r domain.Repositories) (*orderdto.OrderOutput, error) {
		// Serializes concurrent checkouts of one buyer so the gate sees
		// every open order.
		if _, err := r.Balances().GetBalanceForUpdate(ctx, order.BuyerID); err != nil {
			return nil, err
		}
		if err := uc.Policy.Admit(ctx, r, order.BuyerID, order.SellerID); err != nil {
			return nil, err
		}
		if err := r.Orders().CreateOrder(ctx, order); err != nil {
			return nil, err
		}
		if err := r.Escrows().CreateEscrow(ctx, escrow); err != nil {
			return nil, err
		}
		if err := r.Transitions().AppendTransition(ctx, &domain.OrderTransition{
			ID:      uuid.NewString(),
			OrderID: order.ID,
			To:      domain.StatusPendingAccept,
			ActorID: order.BuyerID,
			Note:    "order created",
			At:      now,
		}); err != nil {
			return nil, err
		}
		return orderdto.ToOrderOutput(order), nil
	})
	if err != nil {
		var admissionErr *domain.AdmissionError
		if errors.As(err, &admissionErr) {
			uc.Metrics.RecordAdmissionRejected(string(admissionErr.Reason))
			slog.Info("order rejected by seller policy",
				"buyer_id", input.BuyerID,
				"seller_id", input.SellerID,
				"reason", admissionErr.Reason,
			)
		} else {
			uc.Metrics.RecordError("create_order")
		}
		return nil, err
	}
	if replayed {
		return out, nil
	}

	uc.Metrics.RecordOrderCreated(order.Currency, order.Amount)
	uc.Metrics.RecordTransition("", string(domain.StatusPendingAccept))
	uc.publishOrderEvents([]domain.OrderEvent{
		newOrderEvent(order, "", domain.StatusPendingAccept, order.BuyerID, now),
	})
	return out, nil
}

func (uc *DefaultOrderUsecase) normalizeCreateInput(input *orderdto.CreateOrderInput) error {
	input.BuyerID = strings.TrimSpace(input.BuyerID)
	input.SellerID = strings.TrimSpace(input.SellerID)
	input.ServiceID = strings.TrimSpace(input.ServiceID)
	input.Currency = strings.ToUpper(strings.TrimSpace(input.Currency))

	switch {
	case input.BuyerID == "" || input.SellerID == "" || input.ServiceID == "":
		return fmt.Errorf("%w: buyer_id, seller_id and service_id are required", domain.ErrInvalidInput)
	case input.BuyerID == input.SellerID:
		return fmt.Errorf("%w: buyer and seller must differ", domain.ErrInvalidInput)
	case !isCurrencyCode(input.Currency):
		return fmt.Errorf("%w: currency %q is not an ISO 4217 code", domain.ErrInvalidInput, input.Currency)
	case input.DeliveryDays < 0:
		return fmt.Errorf("%w: delivery_days cannot be negative", domain.ErrInvalidInput)
	case input.DeliveryDays > maxDeliveryDays:
		return fmt.Errorf("%w: delivery_days cannot exceed %d", domain.ErrInvalidInput, maxDeliveryDays)
	case input.RevisionsAllowed != nil && *input.RevisionsAllowed < 0:
		return fmt.Errorf("%w: revisions_allowed cannot be negative", domain.ErrInvalidInput)
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return err
	}

	if input.DeliveryDays == 0 {
		input.DeliveryDays = uc.Settings.DefaultDeliveryDays
	}
	if input.RevisionsAllowed == nil {
		revisions := uc.Settings.DefaultRevisions
		input.RevisionsAllowed = &revisions
	}
	return nil
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
