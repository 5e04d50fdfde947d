package memory

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/shopspring/decimal"
)

func (r *repos) CreateEscrow(ctx context.Context, escrow *domain.Escrow) error {
	st, unlock := r.begin()
	defer unlock()
	if _, ok := st.orders[escrow.OrderID]; !ok {
		return fmt.Errorf("escrow for unknown order %s", escrow.OrderID)
	}
	if _, ok := st.escrows[escrow.OrderID]; ok {
		return fmt.Errorf("escrow for order %s already exists", escrow.OrderID)
	}
	st.escrows[escrow.OrderID] = *escrow
	return nil
}

func getEscrow(st *state, orderID string) (*domain.Escrow, error) {
	e, ok := st.escrows[orderID]
	if !ok {
		return nil, fmt.Errorf("escrow %s: %w", orderID, domain.ErrNotFound)
	}
	return &e, nil
}

func (r *repos) GetEscrow(ctx context.Context, orderID string) (*domain.Escrow, error) {
	st, unlock := r.begin()
	defer unlock()
	return getEscrow(st, orderID)
}

func (r *repos) GetEscrowForUpdate(ctx context.Context, orderID string) (*domain.Escrow, error) {
	st, unlock := r.begin()
	defer unlock()
	return getEscrow(st, orderID)
}

func (r *repos) UpdateEscrow(ctx context.Context, escrow *domain.Escrow) error {
	st, unlock := r.begin()
	defer unlock()
	cur, ok := st.escrows[escrow.OrderID]
	if !ok {
		return fmt.Errorf("escrow %s: %w", escrow.OrderID, domain.ErrNotFound)
	}
	if cur.Version != escrow.Version {
		return fmt.Errorf("escrow %s version %d: %w", escrow.OrderID, escrow.Version, domain.ErrConcurrentUpdate)
	}
	escrow.Version++
	st.escrows[escrow.OrderID] = *escrow
	return nil
}

func (r *repos) SumHolding(ctx context.Context) (decimal.Decimal, error) {
	st, unlock := r.begin()
	defer unlock()
	sum := decimal.Zero
	for _, e := range st.escrows {
		if e.Status == domain.EscrowHolding {
			sum = sum.Add(e.HeldAmount)
		}
	}
	return sum, nil
}

func (r *repos) GetBalanceForUpdate(ctx context.Context, userID string) (*domain.Balance, error) {
	st, unlock := r.begin()
	defer unlock()
	b, ok := st.balances[userID]
	if !ok {
		b = domain.Balance{UserID: userID, Available: decimal.Zero, Frozen: decimal.Zero, Version: 1}
		st.balances[userID] = b
	}
	return &b, nil
}

func (r *repos) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	st, unlock := r.begin()
	defer unlock()
	b, ok := st.balances[userID]
	if !ok {
		return nil, fmt.Errorf("balance %s: %w", userID, domain.ErrNotFound)
	}
	return &b, nil
}

func (r *repos) UpdateBalance(ctx context.Context, balance *domain.Balance) error {
	st, unlock := r.begin()
	defer unlock()
	cur, ok := st.balances[balance.UserID]
	if !ok {
		return fmt.Errorf("balance %s: %w", balance.UserID, domain.ErrNotFound)
	}
	if cur.Version != balance.Version {
		return fmt.Errorf("balance %s version %d: %w", balance.UserID, balance.Version, domain.ErrConcurrentUpdate)
	}
	balance.Version++
	st.balances[balance.UserID] = *balance
	return nil
}

func (r *repos) SumFrozen(ctx context.Context) (decimal.Decimal, error) {
	st, unlock := r.begin()
	defer unlock()
	sum := decimal.Zero
	for _, b := range st.balances {
		sum = sum.Add(b.Frozen)
	}
	return sum, nil
}

func (r *repos) AppendEntries(ctx context.Context, entries ...*domain.LedgerEntry) error {
	st, unlock := r.begin()
	defer unlock()
	for _, e := range entries {
		st.ledger = append(st.ledger, *e)
	}
	return nil
}

func (r *repos) ListEntries(ctx context.Context, orderID string) ([]*domain.LedgerEntry, error) {
	st, unlock := r.begin()
	defer unlock()
	var out []*domain.LedgerEntry
	for _, e := range st.ledger {
		if e.OrderID == orderID {
			e := e
			out = append(out, &e)
		}
	}
	return out, nil
}
