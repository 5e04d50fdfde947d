package orderdto

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderOutput struct {
	ID               string             `json:"id"`
	Number           string             `json:"number"`
	BuyerID          string             `json:"buyer_id"`
	SellerID         string             `json:"seller_id"`
	ServiceID        string             `json:"service_id"`
	Amount           decimal.Decimal    `json:"amount"`
	Currency         string             `json:"currency"`
	Status           domain.OrderStatus `json:"status"`
	RevisionsAllowed int                `json:"revisions_allowed"`
	RevisionsUsed    int                `json:"revisions_used"`
	DisputeReason    *string            `json:"dispute_reason,omitempty"`
	DeliveryDeadline time.Time          `json:"delivery_deadline"`
	DeliveredAt      *time.Time         `json:"delivered_at,omitempty"`
	ConfirmDeadline  *time.Time         `json:"confirm_deadline,omitempty"`
	DisputedAt       *time.Time         `json:"disputed_at,omitempty"`
	CompletedAt      *time.Time         `json:"completed_at,omitempty"`
	CancelledAt      *time.Time         `json:"cancelled_at,omitempty"`
	ResolverID       *string            `json:"resolver_id,omitempty"`
	ResolutionNotes  *string            `json:"resolution_notes,omitempty"`
	Version          int64              `json:"version"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// ToOrderOutput is the view of an order its parties get. DeliveredAt is the
// visible delivery time; the actual one stays internal.
func ToOrderOutput(o *domain.Order) *OrderOutput {
	return &OrderOutput{
		ID:               o.ID,
		Number:           o.Number,
		BuyerID:          o.BuyerID,
		SellerID:         o.SellerID,
		ServiceID:        o.ServiceID,
		Amount:           o.Amount,
		Currency:         o.Currency,
		Status:           o.Status,
		RevisionsAllowed: o.RevisionsAllowed,
		RevisionsUsed:    o.RevisionsUsed,
		DisputeReason:    o.DisputeReason,
		DeliveryDeadline: o.DeliveryDeadline,
		DeliveredAt:      o.VisibleDeliveredAt,
		ConfirmDeadline:  o.ConfirmDeadline,
		DisputedAt:       o.DisputedAt,
		CompletedAt:      o.CompletedAt,
		CancelledAt:      o.CancelledAt,
		ResolverID:       o.ResolverID,
		ResolutionNotes:  o.ResolutionNotes,
		Version:          o.Version,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

type TransitionOutput struct {
	From    domain.OrderStatus `json:"from,omitempty"`
	To      domain.OrderStatus `json:"to"`
	ActorID string             `json:"actor_id"`
	Note    string             `json:"note,omitempty"`
	At      time.Time          `json:"at"`
}

func ToTransitionOutputs(ts []*domain.OrderTransition) []*TransitionOutput {
	out := make([]*TransitionOutput, 0, len(ts))
	for _, t := range ts {
		out = append(out, &TransitionOutput{
			From:    t.From,
			To:      t.To,
			ActorID: t.ActorID,
			Note:    t.Note,
			At:      t.At,
		})
	}
	return out
}

type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}

type GetOrdersOutput struct {
	Orders     []*OrderOutput `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}
