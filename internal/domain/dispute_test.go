package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func share(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestResolutionActionShares(t *testing.T) {
	held := dec("100")
	cases := []struct {
		name    string
		action  ResolutionAction
		seller  string
		buyer   string
		status  OrderStatus
		wantErr error
	}{
		{"seller wins", ResolutionAction{Outcome: OutcomeSeller}, "100", "0", StatusCompleted, nil},
		{"buyer wins", ResolutionAction{Outcome: OutcomeBuyer}, "0", "100", StatusCancelled, nil},
		{"split", ResolutionAction{Outcome: OutcomeSplit, SellerShare: share("60")}, "60", "40", StatusCompleted, nil},
		{"split over held", ResolutionAction{Outcome: OutcomeSplit, SellerShare: share("120")}, "", "", "", ErrInvalidInput},
		{"split sub cent", ResolutionAction{Outcome: OutcomeSplit, SellerShare: share("33.333")}, "", "", "", ErrInvalidInput},
		{"split without share", ResolutionAction{Outcome: OutcomeSplit}, "", "", "", ErrInvalidInput},
		{"split of zero", ResolutionAction{Outcome: OutcomeSplit, SellerShare: share("0")}, "0", "100", StatusCompleted, nil},
		{"unknown", ResolutionAction{Outcome: "coin-flip"}, "", "", "", ErrInvalidInput},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			seller, buyer, err := c.action.Shares(held)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !seller.Equal(dec(c.seller)) || !buyer.Equal(dec(c.buyer)) {
				t.Fatalf("shares = %s/%s, want %s/%s", seller, buyer, c.seller, c.buyer)
			}
			if got := c.action.ResultingStatus(); got != c.status {
				t.Fatalf("ResultingStatus = %s, want %s", got, c.status)
			}
		})
	}
}

func TestAdmissionErrorMatchesSentinel(t *testing.T) {
	err := error(NewAdmissionError(ReasonAccountTooNew))
	if !errors.Is(err, ErrAdmission) {
		t.Fatal("AdmissionError must match ErrAdmission")
	}
	var ae *AdmissionError
	if !errors.As(err, &ae) || ae.Message() != "account too new" {
		t.Fatalf("unexpected admission error: %v", err)
	}
	if err.Error() != "admission rejected: account too new" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
