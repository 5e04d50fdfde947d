package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits every stored amount keeps.
const MoneyScale int32 = 2

// IsWholeCents reports whether d has no precision below a cent.
func IsWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyScale))
}

func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if !IsWholeCents(amount) {
		return fmt.Errorf("%w: amount %s has sub-cent precision", ErrInvalidInput, amount)
	}
	return nil
}

// ValidateShares checks a split settlement: both shares non-negative, cent
// precise and summing to held exactly.
func ValidateShares(held, sellerShare, buyerShare decimal.Decimal) error {
	if sellerShare.IsNegative() || buyerShare.IsNegative() {
		return fmt.Errorf("%w: shares must not be negative", ErrInvalidInput)
	}
	if !IsWholeCents(sellerShare) || !IsWholeCents(buyerShare) {
		return fmt.Errorf("%w: shares must be whole cents", ErrInvalidInput)
	}
	if !sellerShare.Add(buyerShare).Equal(held) {
		return fmt.Errorf("%w: shares %s + %s do not sum to held %s", ErrAmountMismatch, sellerShare, buyerShare, held)
	}
	return nil
}
