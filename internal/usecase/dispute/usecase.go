package usecase

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	escrowusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/escrow"
	riskusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/risk"
)

type DefaultDisputeUsecase struct {
	Store     domain.Store
	Escrow    *escrowusecase.DefaultEscrowUsecase
	Risk      *riskusecase.DefaultRiskUsecase
	Publisher domain.EventPublisher
	Metrics   *metrics.EngineMetrics
	Now       func() time.Time
}

func NewDefaultDisputeUsecase(
	store domain.Store,
	escrowUsecase *escrowusecase.DefaultEscrowUsecase,
	riskUsecase *riskusecase.DefaultRiskUsecase,
	publisher domain.EventPublisher,
	engineMetrics *metrics.EngineMetrics,
) *DefaultDisputeUsecase {
	return &DefaultDisputeUsecase{
		Store:     store,
		Escrow:    escrowUsecase,
		Risk:      riskUsecase,
		Publisher: publisher,
		Metrics:   engineMetrics,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}
