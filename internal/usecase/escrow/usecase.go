package usecase

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
)

// DefaultEscrowUsecase is the only writer of escrow records, balances and
// ledger entries. Order and dispute usecases call its in-transaction
// methods with their own Repositories.
type DefaultEscrowUsecase struct {
	Store   domain.Store
	Metrics *metrics.EngineMetrics
	Now     func() time.Time
}

func NewDefaultEscrowUsecase(store domain.Store, engineMetrics *metrics.EngineMetrics) *DefaultEscrowUsecase {
	return &DefaultEscrowUsecase{
		Store:   store,
		Metrics: engineMetrics,
		Now:     func() time.Time { return time.Now().UTC() },
	}
}
