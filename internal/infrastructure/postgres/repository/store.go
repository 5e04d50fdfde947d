package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// repositories binds every repository to one *gorm.DB, either the pool or
// an open transaction.
type repositories struct {
	db *gorm.DB
}

func (r repositories) Orders() domain.OrderRepository         { return &OrderRepository{db: r.db} }
func (r repositories) Escrows() domain.EscrowRepository       { return &EscrowRepository{db: r.db} }
func (r repositories) Balances() domain.BalanceRepository     { return &BalanceRepository{db: r.db} }
func (r repositories) Ledger() domain.LedgerRepository        { return &LedgerRepository{db: r.db} }
func (r repositories) Disputes() domain.DisputeRepository     { return &DisputeRepository{db: r.db} }
func (r repositories) RiskScores() domain.RiskScoreRepository { return &RiskScoreRepository{db: r.db} }
func (r repositories) Policies() domain.PolicyRepository      { return &PolicyRepository{db: r.db} }
func (r repositories) Profiles() domain.ProfileRepository     { return &ProfileRepository{db: r.db} }
func (r repositories) Transitions() domain.TransitionRepository {
	return &TransitionRepository{db: r.db}
}
func (r repositories) Idempotency() domain.IdempotencyRepository {
	return &IdempotencyRepository{db: r.db}
}

// Store is the postgres implementation of domain.Store.
type Store struct {
	repositories
}

func NewStore(db *gorm.DB) *Store {
	return &Store{repositories{db: db}}
}

func (s *Store) InTx(ctx context.Context, fn func(r domain.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repositories{db: tx})
	})
}

func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %s: %w", what, id, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func pageOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
