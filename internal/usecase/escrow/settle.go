package usecase

import (
	"context"
	"sort"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/shopspring/decimal"
)

// Settlement describes a committed ledger operation for metrics and events.
type Settlement struct {
	Kind        domain.SettlementKind
	Currency    string
	SellerShare decimal.Decimal
	BuyerShare  decimal.Decimal
}

// Release pays the full held amount to the seller. escrow must be locked by
// the caller's transaction.
func (uc *DefaultEscrowUsecase) Release(ctx context.Context, r domain.Repositories, escrow *domain.Escrow, actor, notes string) (*Settlement, error) {
	return uc.settle(ctx, r, escrow, domain.SettlementRelease, escrow.HeldAmount, decimal.Zero, actor, notes)
}

// Refund returns the full held amount to the buyer.
func (uc *DefaultEscrowUsecase) Refund(ctx context.Context, r domain.Repositories, escrow *domain.Escrow, actor, notes string) (*Settlement, error) {
	return uc.settle(ctx, r, escrow, domain.SettlementRefund, decimal.Zero, escrow.HeldAmount, actor, notes)
}

// PartialResolve splits the held amount. The shares must sum to it exactly.
func (uc *DefaultEscrowUsecase) PartialResolve(ctx context.Context, r domain.Repositories, escrow *domain.Escrow, sellerShare, buyerShare decimal.Decimal, actor, notes string) (*Settlement, error) {
	return uc.settle(ctx, r, escrow, domain.SettlementSplit, sellerShare, buyerShare, actor, notes)
}

func (uc *DefaultEscrowUsecase) settle(
	ctx context.Context,
	r domain.Repositories,
	escrow *domain.Escrow,
	kind domain.SettlementKind,
	sellerShare, buyerShare decimal.Decimal,
	actor, notes string,
) (*Settlement, error) {
	now := uc.Now()
	status := domain.EscrowReleased
	if kind == domain.SettlementRefund {
		status = domain.EscrowRefunded
	}
	held := escrow.HeldAmount
	if err := escrow.Settle(status, sellerShare, buyerShare, actor, notes, now); err != nil {
		return nil, err
	}

	balances, err := lockBalances(ctx, r, escrow.BuyerID, escrow.SellerID)
	if err != nil {
		return nil, err
	}
	buyer, seller := balances[escrow.BuyerID], balances[escrow.SellerID]

	if err := buyer.Unfreeze(held, now); err != nil {
		return nil, err
	}
	var entries []*domain.LedgerEntry
	if sellerShare.IsPositive() {
		seller.Credit(sellerShare, now)
		entries = append(entries, newEntry(escrow.OrderID, escrow.SellerID, domain.EntryRelease, sellerShare, now))
	}
	if buyerShare.IsPositive() {
		buyer.Credit(buyerShare, now)
		entries = append(entries, newEntry(escrow.OrderID, escrow.BuyerID, domain.EntryRefund, buyerShare, now))
	}

	for _, id := range sortedKeys(balances) {
		if err := r.Balances().UpdateBalance(ctx, balances[id]); err != nil {
			return nil, err
		}
	}
	if err := r.Escrows().UpdateEscrow(ctx, escrow); err != nil {
		return nil, err
	}
	if err := r.Ledger().AppendEntries(ctx, entries...); err != nil {
		return nil, err
	}

	return &Settlement{
		Kind:        kind,
		Currency:    escrow.Currency,
		SellerShare: sellerShare,
		BuyerShare:  buyerShare,
	}, nil
}

// RecordSettlement exports a committed settlement.
func (uc *DefaultEscrowUsecase) RecordSettlement(s *Settlement) {
	if s == nil {
		return
	}
	uc.Metrics.RecordSettlement(string(s.Kind), s.Currency, s.SellerShare, s.BuyerShare)
}

// lockBalances locks rows in id order so concurrent settlements touching
// the same users cannot deadlock.
func lockBalances(ctx context.Context, r domain.Repositories, userIDs ...string) (map[string]*domain.Balance, error) {
	balances := make(map[string]*domain.Balance, len(userIDs))
	ids := append([]string(nil), userIDs...)
	sort.Strings(ids)
	for _, id := range ids {
		if _, ok := balances[id]; ok {
			continue
		}
		b, err := r.Balances().GetBalanceForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		balances[id] = b
	}
	return balances, nil
}

func sortedKeys(m map[string]*domain.Balance) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
