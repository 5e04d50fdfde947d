package orderdto

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateOrderInput struct {
	BuyerID      string
	SellerID     string
	ServiceID    string
	Amount       decimal.Decimal
	Currency     string
	DeliveryDays int
	// nil means the configured default
	RevisionsAllowed *int
	IdempotencyKey   string
}

// ActionInput drives a single state machine step on behalf of ActorID.
type ActionInput struct {
	OrderID        string
	ActorID        string
	Note           string
	IdempotencyKey string
}

type OpenDisputeInput struct {
	OrderID        string
	ActorID        string
	Reason         string
	IdempotencyKey string
}

type GetOrdersInput struct {
	BuyerID  string
	SellerID string
	Status   domain.OrderStatus
	Page     int
	Limit    int
}
