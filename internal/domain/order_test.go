package domain

import (
	"errors"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusPendingAccept, StatusInProgress, true},
		{StatusPendingAccept, StatusCancelled, true},
		{StatusPendingAccept, StatusDelivered, false},
		{StatusInProgress, StatusDelivered, true},
		{StatusInProgress, StatusDisputed, true},
		{StatusInProgress, StatusCompleted, false},
		{StatusRevisionRequested, StatusDelivered, true},
		{StatusRevisionRequested, StatusCancelled, false},
		{StatusDelivered, StatusPendingConfirm, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusCompleted, false},
		{StatusPendingConfirm, StatusCompleted, true},
		{StatusPendingConfirm, StatusRevisionRequested, true},
		{StatusPendingConfirm, StatusCancelled, false},
		{StatusDisputed, StatusCompleted, true},
		{StatusDisputed, StatusCancelled, true},
		{StatusDisputed, StatusInProgress, false},
		{StatusCompleted, StatusDisputed, false},
		{StatusCancelled, StatusInProgress, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, s := range []OrderStatus{StatusCompleted, StatusCancelled} {
		if len(orderTransitions[s]) != 0 {
			t.Errorf("%s must be terminal", s)
		}
		if !s.IsTerminal() {
			t.Errorf("%s.IsTerminal() = false", s)
		}
	}
	for _, s := range OpenStatuses {
		if s.IsTerminal() {
			t.Errorf("%s listed as open but terminal", s)
		}
	}
}

func TestOrderTransitionLeavesOrderUntouchedOnFailure(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	due := now.Add(time.Hour)
	o := &Order{ID: "o-1", Status: StatusDelivered, DueAt: &due, UpdatedAt: now}

	err := o.Transition(StatusCancelled, now.Add(time.Minute))
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if o.Status != StatusDelivered || o.DueAt != &due || !o.UpdatedAt.Equal(now) {
		t.Fatalf("order mutated on failed transition: %+v", o)
	}
}

func TestOrderTransitionStampsTerminalTimes(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	o := &Order{ID: "o-1", Status: StatusPendingConfirm}
	if err := o.Transition(StatusCompleted, now); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if o.CompletedAt == nil || !o.CompletedAt.Equal(now) || o.DueAt != nil {
		t.Fatalf("unexpected order after completion: %+v", o)
	}

	c := &Order{ID: "o-2", Status: StatusPendingAccept}
	if err := c.Transition(StatusCancelled, now); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if c.CancelledAt == nil {
		t.Fatal("CancelledAt not set")
	}
}

func TestMarkDeliveredAndConfirmWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	o := &Order{ID: "o-1", Status: StatusDelivered}

	o.MarkDelivered(now, 60*time.Minute)
	if !o.DeliveredAt.Equal(now) {
		t.Errorf("DeliveredAt = %v, want %v", o.DeliveredAt, now)
	}
	wantVisible := now.Add(time.Hour)
	if !o.VisibleDeliveredAt.Equal(wantVisible) || !o.DueAt.Equal(wantVisible) {
		t.Errorf("visible/due = %v/%v, want %v", o.VisibleDeliveredAt, o.DueAt, wantVisible)
	}
	if o.DeliveryVisible(now.Add(59 * time.Minute)) {
		t.Error("delivery visible before the offset")
	}
	if !o.DeliveryVisible(wantVisible) {
		t.Error("delivery hidden at the offset")
	}

	o.OpenConfirmWindow(72 * time.Hour)
	wantDeadline := wantVisible.Add(72 * time.Hour)
	if !o.ConfirmDeadline.Equal(wantDeadline) || !o.DueAt.Equal(wantDeadline) {
		t.Errorf("confirm deadline = %v, want %v", o.ConfirmDeadline, wantDeadline)
	}
}

func TestMarkDeliveredIgnoresNegativeDelay(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	o := &Order{ID: "o-1", Status: StatusDelivered}

	o.MarkDelivered(now, -200*time.Hour)
	if !o.VisibleDeliveredAt.Equal(now) {
		t.Fatalf("visible = %v, want %v", o.VisibleDeliveredAt, now)
	}
	o.OpenConfirmWindow(72 * time.Hour)
	if want := now.Add(72 * time.Hour); !o.ConfirmDeadline.Equal(want) {
		t.Fatalf("confirm deadline = %v, want %v", o.ConfirmDeadline, want)
	}
}

func TestRevisionsRemaining(t *testing.T) {
	o := &Order{RevisionsAllowed: 2, RevisionsUsed: 1}
	if got := o.RevisionsRemaining(); got != 1 {
		t.Fatalf("RevisionsRemaining = %d, want 1", got)
	}
	o.RevisionsUsed = 3
	if got := o.RevisionsRemaining(); got != 0 {
		t.Fatalf("RevisionsRemaining = %d, want 0", got)
	}
}

func TestOrderParties(t *testing.T) {
	o := &Order{BuyerID: "b", SellerID: "s"}
	if !o.IsBuyer("b") || o.IsBuyer("s") || !o.IsSeller("s") || !o.IsParty("b") || o.IsParty("x") || o.IsParty("") {
		t.Fatal("party checks are wrong")
	}
}
