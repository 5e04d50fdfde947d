package request

import "github.com/shopspring/decimal"

type CreateOrderRequest struct {
	SellerID     string          `json:"seller_id" binding:"required"`
	ServiceID    string          `json:"service_id" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency" binding:"required"`
	DeliveryDays int             `json:"delivery_days"`
	// omitted means the configured default
	RevisionsAllowed *int `json:"revisions_allowed"`
}

// ActionRequest is the optional body of a state machine step.
type ActionRequest struct {
	Note string `json:"note"`
}

type OpenDisputeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CapturePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
