package usecase

import (
	"context"
	"log/slog"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
)

// Reconcile compares the total held by open escrows with the total frozen
// on buyer balances. The two must always match.
func (uc *DefaultEscrowUsecase) Reconcile(ctx context.Context) (*domain.Reconciliation, error) {
	var report domain.Reconciliation
	err := uc.Store.InTx(ctx, func(r domain.Repositories) error {
		held, err := r.Escrows().SumHolding(ctx)
		if err != nil {
			return err
		}
		frozen, err := r.Balances().SumFrozen(ctx)
		if err != nil {
			return err
		}
		report.HeldInEscrow = held
		report.FrozenFunds = frozen
		return nil
	})
	if err != nil {
		uc.Metrics.RecordError("reconcile")
		return nil, err
	}

	report.Drift = report.HeldInEscrow.Sub(report.FrozenFunds)
	report.Balanced = report.Drift.IsZero()
	report.CheckedAt = uc.Now()
	uc.Metrics.SetReconciliationDrift(report.Drift)

	if !report.Balanced {
		slog.Error("escrow ledger out of balance",
			"held", report.HeldInEscrow.String(),
			"frozen", report.FrozenFunds.String(),
			"drift", report.Drift.String(),
		)
	}
	return &report, nil
}
