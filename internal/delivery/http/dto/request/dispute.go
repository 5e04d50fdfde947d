package request

import "github.com/shopspring/decimal"

type ResolveDisputeRequest struct {
	Outcome     string           `json:"outcome" binding:"required,oneof=seller buyer split"`
	SellerShare *decimal.Decimal `json:"seller_share"`
	Notes       string           `json:"notes"`
}
