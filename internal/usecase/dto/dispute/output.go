package disputedto

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/order"
	"github.com/shopspring/decimal"
)

type DisputeOutput struct {
	ID                string                    `json:"id"`
	OrderID           string                    `json:"order_id"`
	OpenedBy          string                    `json:"opened_by"`
	Reason            string                    `json:"reason"`
	OrderStatusOpened domain.OrderStatus        `json:"order_status_opened"`
	Status            domain.DisputeStatus      `json:"status"`
	Outcome           *domain.ResolutionOutcome `json:"outcome,omitempty"`
	SellerShare       decimal.Decimal           `json:"seller_share"`
	BuyerShare        decimal.Decimal           `json:"buyer_share"`
	ResolverID        *string                   `json:"resolver_id,omitempty"`
	Notes             *string                   `json:"notes,omitempty"`
	OpenedAt          time.Time                 `json:"opened_at"`
	ResolvedAt        *time.Time                `json:"resolved_at,omitempty"`
}

func ToDisputeOutput(d *domain.Dispute) *DisputeOutput {
	return &DisputeOutput{
		ID:                d.ID,
		OrderID:           d.OrderID,
		OpenedBy:          d.OpenedBy,
		Reason:            d.Reason,
		OrderStatusOpened: d.OrderStatusOpened,
		Status:            d.Status,
		Outcome:           d.Outcome,
		SellerShare:       d.SellerShare,
		BuyerShare:        d.BuyerShare,
		ResolverID:        d.ResolverID,
		Notes:             d.Notes,
		OpenedAt:          d.OpenedAt,
		ResolvedAt:        d.ResolvedAt,
	}
}

type GetDisputesOutput struct {
	Disputes   []*DisputeOutput    `json:"disputes"`
	Pagination orderdto.Pagination `json:"pagination"`
}
