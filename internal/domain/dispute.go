package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type DisputeStatus string

const (
	DisputeOpen     DisputeStatus = "open"
	DisputeResolved DisputeStatus = "resolved"
)

type ResolutionOutcome string

const (
	OutcomeSeller ResolutionOutcome = "seller"
	OutcomeBuyer  ResolutionOutcome = "buyer"
	OutcomeSplit  ResolutionOutcome = "split"
)

type Dispute struct {
	ID                string
	OrderID           string
	OpenedBy          string
	Reason            string
	OrderStatusOpened OrderStatus
	Status            DisputeStatus
	Outcome           *ResolutionOutcome
	SellerShare       decimal.Decimal
	BuyerShare        decimal.Decimal
	ResolverID        *string
	Notes             *string
	OpenedAt          time.Time
	ResolvedAt        *time.Time
}

// ResolutionAction is the admin's ruling. SellerShare is read only for
// OutcomeSplit, where it is required.
type ResolutionAction struct {
	Outcome     ResolutionOutcome
	SellerShare *decimal.Decimal
}

// Shares splits held between the parties according to the ruling.
func (a ResolutionAction) Shares(held decimal.Decimal) (seller, buyer decimal.Decimal, err error) {
	switch a.Outcome {
	case OutcomeSeller:
		return held, decimal.Zero, nil
	case OutcomeBuyer:
		return decimal.Zero, held, nil
	case OutcomeSplit:
		if a.SellerShare == nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: split requires seller_share", ErrInvalidInput)
		}
		seller = *a.SellerShare
		buyer = held.Sub(seller)
		if err := ValidateShares(held, seller, buyer); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		return seller, buyer, nil
	default:
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: unknown resolution outcome %q", ErrInvalidInput, a.Outcome)
	}
}

// ResultingStatus is the terminal order status the ruling leads to.
func (a ResolutionAction) ResultingStatus() OrderStatus {
	if a.Outcome == OutcomeBuyer {
		return StatusCancelled
	}
	return StatusCompleted
}

type DisputeFilter struct {
	OrderID string
	Status  DisputeStatus
	Page    int
	Limit   int
}
