package usecase

import (
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// errNoLongerDue makes a sweep skip an order that changed after the scan.
var errNoLongerDue = errors.New("order no longer due")

func invalidState(order *domain.Order, reason string) error {
	return fmt.Errorf("%w: order %s: %s", domain.ErrInvalidState, order.ID, reason)
}

func requireStatus(order *domain.Order, allowed ...domain.OrderStatus) error {
	for _, s := range allowed {
		if order.Status == s {
			return nil
		}
	}
	return invalidState(order, "status is "+string(order.Status))
}

func requireSeller(order *domain.Order, actorID string) error {
	if !order.IsSeller(actorID) {
		return fmt.Errorf("%w: %s is not the seller of order %s", domain.ErrForbidden, actorID, order.ID)
	}
	return nil
}

func requireBuyer(order *domain.Order, actorID string) error {
	if !order.IsBuyer(actorID) {
		return fmt.Errorf("%w: %s is not the buyer of order %s", domain.ErrForbidden, actorID, order.ID)
	}
	return nil
}

func requireParty(order *domain.Order, actorID string) error {
	if !order.IsParty(actorID) {
		return fmt.Errorf("%w: %s is not a party of order %s", domain.ErrForbidden, actorID, order.ID)
	}
	return nil
}
