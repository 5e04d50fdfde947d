package background

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/usecase"
)

type BackgroundTasks struct {
	OrderUsecase      usecase.OrderUsecase
	EscrowUsecase     usecase.EscrowUsecase
	SweepInterval     time.Duration
	ReconcileInterval time.Duration

	wg sync.WaitGroup
}

func NewBackgroundTasks(orderUC usecase.OrderUsecase, escrowUC usecase.EscrowUsecase, sweepInterval, reconcileInterval time.Duration) *BackgroundTasks {
	return &BackgroundTasks{
		OrderUsecase:      orderUC,
		EscrowUsecase:     escrowUC,
		SweepInterval:     sweepInterval,
		ReconcileInterval: reconcileInterval,
	}
}

// StartAll launches every periodic task. They stop when ctx is cancelled;
// Wait blocks until they have.
func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	bt.every(ctx, "accept_timeout", bt.SweepInterval, func(ctx context.Context) error {
		_, err := bt.OrderUsecase.CancelUnacceptedOrders(ctx)
		return err
	})
	bt.every(ctx, "reveal_delivery", bt.SweepInterval, func(ctx context.Context) error {
		_, err := bt.OrderUsecase.RevealDeliveries(ctx)
		return err
	})
	bt.every(ctx, "auto_confirm", bt.SweepInterval, func(ctx context.Context) error {
		_, err := bt.OrderUsecase.AutoConfirmOrders(ctx)
		return err
	})
	if bt.ReconcileInterval > 0 {
		bt.every(ctx, "reconcile", bt.ReconcileInterval, func(ctx context.Context) error {
			_, err := bt.EscrowUsecase.Reconcile(ctx)
			return err
		})
	}
}

func (bt *BackgroundTasks) Wait() {
	bt.wg.Wait()
}

func (bt *BackgroundTasks) every(ctx context.Context, name string, interval time.Duration, run func(ctx context.Context) error) {
	bt.wg.Add(1)
	go func() {
		defer bt.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := run(ctx); err != nil && ctx.Err() == nil {
					slog.Error("background task failed", "task", name, "error", err.Error())
				}
			}
		}
	}()
}
