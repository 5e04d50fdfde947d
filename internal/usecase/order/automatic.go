package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

const (
	SweepAcceptTimeout  = "accept_timeout"
	SweepRevealDelivery = "reveal_delivery"
	SweepAutoConfirm    = "auto_confirm"
)

// CancelUnacceptedOrders cancels orders the seller did not accept in time
// and refunds the ones that were paid.
func (uc *DefaultOrderUsecase) CancelUnacceptedOrders(ctx context.Context) (int, error) {
	return uc.sweep(ctx, SweepAcceptTimeout, domain.StatusPendingAccept, func(ctx context.Context, tx *OrderTx) error {
		if err := requireDue(tx, domain.StatusPendingAccept); err != nil {
			return err
		}
		return uc.cancelAndRefund(ctx, tx, "not accepted in time")
	})
}

// RevealDeliveries shows delayed deliveries to their buyers once the delay
// ran out and starts the confirmation window.
func (uc *DefaultOrderUsecase) RevealDeliveries(ctx context.Context) (int, error) {
	return uc.sweep(ctx, SweepRevealDelivery, domain.StatusDelivered, func(ctx context.Context, tx *OrderTx) error {
		if err := requireDue(tx, domain.StatusDelivered); err != nil {
			return err
		}
		if !tx.Order.DeliveryVisible(tx.Now) {
			return errNoLongerDue
		}
		if err := tx.Move(domain.StatusPendingConfirm, "delivery revealed"); err != nil {
			return err
		}
		tx.Order.OpenConfirmWindow(uc.Settings.ConfirmGracePeriod)
		return nil
	})
}

// AutoConfirmOrders completes orders whose confirmation window closed
// without a buyer response.
func (uc *DefaultOrderUsecase) AutoConfirmOrders(ctx context.Context) (int, error) {
	return uc.sweep(ctx, SweepAutoConfirm, domain.StatusPendingConfirm, func(ctx context.Context, tx *OrderTx) error {
		if err := requireDue(tx, domain.StatusPendingConfirm); err != nil {
			return err
		}
		return uc.completeAndRelease(ctx, tx, "confirmed automatically")
	})
}

// sweep applies fn to every order in status whose deadline passed. Each order
// runs in its own transaction and is re-validated under its row lock, so a
// user action racing the sweep wins cleanly.
func (uc *DefaultOrderUsecase) sweep(ctx context.Context, name string, status domain.OrderStatus, fn func(ctx context.Context, tx *OrderTx) error) (int, error) {
	ids, err := uc.Store.Orders().FindDueOrders(ctx, status, uc.Now(), uc.Settings.SweepBatchSize)
	if err != nil {
		uc.Metrics.RecordError(name)
		return 0, err
	}

	processed, failed := 0, 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		_, err := uc.ProcessOrderOperation(ctx, &OrderOperation{
			OrderID:   id,
			ActorID:   domain.SystemActor,
			Operation: name,
			Apply:     fn,
		})
		switch {
		case err == nil:
			processed++
		case errors.Is(err, errNoLongerDue):
		default:
			failed++
			slog.Error("sweep failed for order", "sweep", name, "order_id", id, "error", err)
		}
	}

	uc.Metrics.RecordSweep(name, processed, failed)
	if processed > 0 || failed > 0 {
		slog.Info("sweep finished", "sweep", name, "processed", processed, "failed", failed)
	}
	return processed, nil
}

func requireDue(tx *OrderTx, status domain.OrderStatus) error {
	due := tx.Order.DueAt
	if tx.Order.Status != status || due == nil || due.After(tx.Now) {
		return errNoLongerDue
	}
	return nil
}
