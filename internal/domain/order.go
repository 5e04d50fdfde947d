package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPendingAccept     OrderStatus = "pending_accept"
	StatusInProgress        OrderStatus = "in_progress"
	StatusRevisionRequested OrderStatus = "revision_requested"
	StatusDelivered         OrderStatus = "delivered"
	StatusPendingConfirm    OrderStatus = "pending_confirm"
	StatusCompleted         OrderStatus = "completed"
	StatusDisputed          OrderStatus = "disputed"
	StatusCancelled         OrderStatus = "cancelled"
)

// SystemActor is recorded as the actor of sweep-driven transitions.
const SystemActor = "system"

var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPendingAccept:     {StatusInProgress, StatusCancelled},
	StatusInProgress:        {StatusDelivered, StatusDisputed, StatusCancelled},
	StatusRevisionRequested: {StatusDelivered, StatusDisputed},
	StatusDelivered:         {StatusPendingConfirm, StatusRevisionRequested, StatusDisputed},
	StatusPendingConfirm:    {StatusCompleted, StatusRevisionRequested, StatusDisputed},
	// Only the dispute engine leaves disputed.
	StatusDisputed: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPendingAccept, StatusInProgress, StatusRevisionRequested, StatusDelivered,
		StatusPendingConfirm, StatusCompleted, StatusDisputed, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// OpenStatuses are the non-terminal statuses counted against a seller's
// concurrency limit.
var OpenStatuses = []OrderStatus{
	StatusPendingAccept, StatusInProgress, StatusRevisionRequested,
	StatusDelivered, StatusPendingConfirm, StatusDisputed,
}

type Order struct {
	ID                 string
	Number             string
	BuyerID            string
	SellerID           string
	ServiceID          string
	Amount             decimal.Decimal
	Currency           string
	Status             OrderStatus
	RevisionsAllowed   int
	RevisionsUsed      int
	DisputeReason      *string
	DeliveryDeadline   time.Time
	DeliveredAt        *time.Time
	VisibleDeliveredAt *time.Time
	ConfirmDeadline    *time.Time
	// DueAt is the deadline a sweep acts on for the current status.
	DueAt           *time.Time
	DisputedAt      *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
	ResolverID      *string
	ResolutionNotes *string
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Transition moves the order along the state graph. It never skips a
// predecessor and leaves the order untouched on failure.
func (o *Order) Transition(to OrderStatus, now time.Time) error {
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: order %s cannot move from %s to %s", ErrInvalidState, o.ID, o.Status, to)
	}
	o.Status = to
	o.DueAt = nil
	o.UpdatedAt = now
	switch to {
	case StatusCompleted:
		o.CompletedAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
	}
	return nil
}

func (o *Order) IsBuyer(actorID string) bool  { return actorID != "" && actorID == o.BuyerID }
func (o *Order) IsSeller(actorID string) bool { return actorID != "" && actorID == o.SellerID }
func (o *Order) IsParty(actorID string) bool  { return o.IsBuyer(actorID) || o.IsSeller(actorID) }

func (o *Order) RevisionsRemaining() int {
	if left := o.RevisionsAllowed - o.RevisionsUsed; left > 0 {
		return left
	}
	return 0
}

// DeliveryVisible reports whether the buyer can see the latest delivery.
func (o *Order) DeliveryVisible(now time.Time) bool {
	return o.VisibleDeliveredAt != nil && !now.Before(*o.VisibleDeliveredAt)
}

// MarkDelivered records a delivery that becomes visible to the buyer after
// delay. The delivery-reveal sweep picks it up at DueAt. A negative delay
// counts as none.
func (o *Order) MarkDelivered(now time.Time, delay time.Duration) {
	visible := now.Add(max(delay, 0))
	o.DeliveredAt = &now
	o.VisibleDeliveredAt = &visible
	o.ConfirmDeadline = nil
	o.DueAt = &visible
}

// OpenConfirmWindow starts the buyer's confirmation window at the visible
// delivery time.
func (o *Order) OpenConfirmWindow(grace time.Duration) {
	start := o.UpdatedAt
	if o.VisibleDeliveredAt != nil {
		start = *o.VisibleDeliveredAt
	}
	deadline := start.Add(grace)
	o.ConfirmDeadline = &deadline
	o.DueAt = &deadline
}

type OrderTransition struct {
	ID      string
	OrderID string
	From    OrderStatus
	To      OrderStatus
	ActorID string
	Note    string
	At      time.Time
}

type OrderFilter struct {
	BuyerID  string
	SellerID string
	Status   OrderStatus
	Page     int
	Limit    int
}

// OrderStats are a buyer's order outcomes. Total, Completed, Cancelled and
// Disputed count terminal orders only; Disputed counts those that went
// through a dispute. ActiveDisputes counts orders currently disputed.
type OrderStats struct {
	Total          int64
	Completed      int64
	Cancelled      int64
	Disputed       int64
	ActiveDisputes int64
}
