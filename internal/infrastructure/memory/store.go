package memory

import (
	"context"
	"sync"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

type state struct {
	orders      map[string]domain.Order
	escrows     map[string]domain.Escrow
	balances    map[string]domain.Balance
	ledger      []domain.LedgerEntry
	disputes    []domain.Dispute
	risk        map[string]domain.RiskScore
	policies    map[string]domain.SellerRiskPolicy
	profiles    map[string]domain.UserProfile
	transitions []domain.OrderTransition
	idempotency map[string]domain.IdempotencyRecord
}

func newState() *state {
	return &state{
		orders:      make(map[string]domain.Order),
		escrows:     make(map[string]domain.Escrow),
		balances:    make(map[string]domain.Balance),
		risk:        make(map[string]domain.RiskScore),
		policies:    make(map[string]domain.SellerRiskPolicy),
		profiles:    make(map[string]domain.UserProfile),
		idempotency: make(map[string]domain.IdempotencyRecord),
	}
}

func (s *state) clone() *state {
	c := &state{
		orders:      make(map[string]domain.Order, len(s.orders)),
		escrows:     make(map[string]domain.Escrow, len(s.escrows)),
		balances:    make(map[string]domain.Balance, len(s.balances)),
		ledger:      append([]domain.LedgerEntry(nil), s.ledger...),
		disputes:    append([]domain.Dispute(nil), s.disputes...),
		risk:        make(map[string]domain.RiskScore, len(s.risk)),
		policies:    make(map[string]domain.SellerRiskPolicy, len(s.policies)),
		profiles:    make(map[string]domain.UserProfile, len(s.profiles)),
		transitions: append([]domain.OrderTransition(nil), s.transitions...),
		idempotency: make(map[string]domain.IdempotencyRecord, len(s.idempotency)),
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.escrows {
		c.escrows[k] = v
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.risk {
		c.risk[k] = v
	}
	for k, v := range s.policies {
		c.policies[k] = v
	}
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	return c
}

// Store keeps everything in process memory. Transactions are serialized by
// a single mutex and work on a copy that replaces the live state on commit,
// so a failed transaction leaves no trace.
type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) InTx(ctx context.Context, fn func(r domain.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(&repos{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *Store) view() *repos { return &repos{store: s} }

func (s *Store) Orders() domain.OrderRepository            { return s.view() }
func (s *Store) Escrows() domain.EscrowRepository          { return s.view() }
func (s *Store) Balances() domain.BalanceRepository        { return s.view() }
func (s *Store) Ledger() domain.LedgerRepository           { return s.view() }
func (s *Store) Disputes() domain.DisputeRepository        { return s.view() }
func (s *Store) RiskScores() domain.RiskScoreRepository    { return s.view() }
func (s *Store) Policies() domain.PolicyRepository         { return s.view() }
func (s *Store) Profiles() domain.ProfileRepository        { return s.view() }
func (s *Store) Transitions() domain.TransitionRepository  { return s.view() }
func (s *Store) Idempotency() domain.IdempotencyRepository { return s.view() }

// repos implements every repository. Inside a transaction st is the
// working copy and the store lock is already held; outside, store is set
// and each call locks it for its own duration.
type repos struct {
	st    *state
	store *Store
}

func (r *repos) begin() (*state, func()) {
	if r.store == nil {
		return r.st, func() {}
	}
	r.store.mu.Lock()
	return r.store.st, r.store.mu.Unlock
}

func (r *repos) Orders() domain.OrderRepository            { return r }
func (r *repos) Escrows() domain.EscrowRepository          { return r }
func (r *repos) Balances() domain.BalanceRepository        { return r }
func (r *repos) Ledger() domain.LedgerRepository           { return r }
func (r *repos) Disputes() domain.DisputeRepository        { return r }
func (r *repos) RiskScores() domain.RiskScoreRepository    { return r }
func (r *repos) Policies() domain.PolicyRepository         { return r }
func (r *repos) Profiles() domain.ProfileRepository        { return r }
func (r *repos) Transitions() domain.TransitionRepository  { return r }
func (r *repos) Idempotency() domain.IdempotencyRepository { return r }
