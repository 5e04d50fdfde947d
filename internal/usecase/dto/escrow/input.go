package escrowdto

import "github.com/shopspring/decimal"

// CapturePaymentInput reports a payment the gateway captured for an order.
type CapturePaymentInput struct {
	OrderID        string
	Amount         decimal.Decimal
	IdempotencyKey string
}
