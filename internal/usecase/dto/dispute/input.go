package disputedto

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/shopspring/decimal"
)

type ResolveDisputeInput struct {
	OrderID    string
	ResolverID string
	Outcome    domain.ResolutionOutcome
	// SellerShare is required for the split outcome and ignored otherwise.
	SellerShare    *decimal.Decimal
	Notes          string
	IdempotencyKey string
}

type GetDisputesInput struct {
	OrderID string
	Status  domain.DisputeStatus
	Page    int
	Limit   int
}
