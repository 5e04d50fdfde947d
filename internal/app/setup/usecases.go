package setup

import (
	"github.com/LavaJover/shvark-escrow-service/internal/config"
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	disputeusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/dispute"
	escrowusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/escrow"
	orderusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/order"
	policyusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/policy"
	riskusecase "github.com/LavaJover/shvark-escrow-service/internal/usecase/risk"
	"github.com/shopspring/decimal"
)

type UseCases struct {
	OrderUsecase   *orderusecase.DefaultOrderUsecase
	DisputeUsecase *disputeusecase.DefaultDisputeUsecase
	EscrowUsecase  *escrowusecase.DefaultEscrowUsecase
	RiskUsecase    *riskusecase.DefaultRiskUsecase
	PolicyUsecase  *policyusecase.DefaultPolicyUsecase
}

func InitializeUseCases(deps *Dependencies) *UseCases {
	cfg := deps.Config

	riskUsecase := riskusecase.NewDefaultRiskUsecase(deps.Store, RiskWeights(cfg.Risk))
	policyUsecase := policyusecase.NewDefaultPolicyUsecase(deps.Store)
	escrowUsecase := escrowusecase.NewDefaultEscrowUsecase(deps.Store, deps.Metrics)

	orderUsecase := orderusecase.NewDefaultOrderUsecase(
		deps.Store,
		escrowUsecase,
		policyUsecase,
		riskUsecase,
		deps.Publisher,
		deps.Metrics,
		orderusecase.Settings{
			ConfirmGracePeriod:  cfg.Engine.ConfirmGracePeriod,
			AcceptTimeout:       cfg.Engine.AcceptTimeout,
			SweepBatchSize:      cfg.Engine.SweepBatchSize,
			DefaultRevisions:    cfg.Engine.DefaultRevisions,
			DefaultDeliveryDays: cfg.Engine.DefaultDeliveryDays,
		},
	)

	disputeUsecase := disputeusecase.NewDefaultDisputeUsecase(
		deps.Store,
		escrowUsecase,
		riskUsecase,
		deps.Publisher,
		deps.Metrics,
	)

	return &UseCases{
		OrderUsecase:   orderUsecase,
		DisputeUsecase: disputeUsecase,
		EscrowUsecase:  escrowUsecase,
		RiskUsecase:    riskUsecase,
		PolicyUsecase:  policyUsecase,
	}
}

func RiskWeights(cfg config.Risk) domain.RiskWeights {
	return domain.RiskWeights{
		Dispute:           decimal.NewFromFloat(cfg.DisputeWeight),
		Cancel:            decimal.NewFromFloat(cfg.CancelWeight),
		HighRiskThreshold: decimal.NewFromFloat(cfg.HighRiskThreshold),
	}
}
