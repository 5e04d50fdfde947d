package background

import (
	"context"
	"testing"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/usecasetest"
)

func TestStartAllRunsSweeps(t *testing.T) {
	e := usecasetest.NewEngine(t)
	order := e.StartedOrder(t, "buyer-1", "seller-1", "25")
	e.Act(t, e.Orders.DeliverOrder, order.ID, "seller-1")
	e.Clock.Advance(usecasetest.Settings.ConfirmGracePeriod)

	ctx, cancel := context.WithCancel(context.Background())
	tasks := NewBackgroundTasks(e.Orders, e.Escrow, 5*time.Millisecond, 5*time.Millisecond)
	tasks.StartAll(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for e.Order(t, order.ID).Status != domain.StatusCompleted {
		if time.Now().After(deadline) {
			cancel()
			tasks.Wait()
			t.Fatal("order was not auto-confirmed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	tasks.Wait()
	e.RequireBalanced(t)
}
