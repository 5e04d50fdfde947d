package usecase

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	escrowusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/escrow"
	policyusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/policy"
	riskusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/risk"
)

type Settings struct {
	ConfirmGracePeriod  time.Duration
	AcceptTimeout       time.Duration
	SweepBatchSize      int
	DefaultRevisions    int
	DefaultDeliveryDays int
}

type DefaultOrderUsecase struct {
	Store     domain.Store
	Escrow    *escrowusecase.DefaultEscrowUsecase
	Policy    *policyusecase.DefaultPolicyUsecase
	Risk      *riskusecase.DefaultRiskUsecase
	Publisher domain.EventPublisher
	Metrics   *metrics.EngineMetrics
	Settings  Settings
	Now       func() time.Time
}

func NewDefaultOrderUsecase(
	store domain.Store,
	escrowUsecase *escrowusecase.DefaultEscrowUsecase,
	policyUsecase *policyusecase.DefaultPolicyUsecase,
	riskUsecase *riskusecase.DefaultRiskUsecase,
	publisher domain.EventPublisher,
	engineMetrics *metrics.EngineMetrics,
	settings Settings,
) *DefaultOrderUsecase {
	return &DefaultOrderUsecase{
		Store:     store,
		Escrow:    escrowUsecase,
		Policy:    policyUsecase,
		Risk:      riskUsecase,
		Publisher: publisher,
		Metrics:   engineMetrics,
		Settings:  settings,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}
