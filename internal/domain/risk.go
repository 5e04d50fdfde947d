package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RiskScore struct {
	BuyerID         string
	TotalOrders     int64
	CompletedOrders int64
	DisputedOrders  int64
	CancelledOrders int64
	Score           decimal.Decimal
	HighRisk        bool
	ComputedAt      time.Time
}

// RiskWeights are policy constants supplied by configuration.
type RiskWeights struct {
	Dispute           decimal.Decimal
	Cancel            decimal.Decimal
	HighRiskThreshold decimal.Decimal
}

var (
	scoreCeiling = decimal.NewFromInt(100)
)

// ComputeRiskScore derives a 0-100 score from a buyer's terminal outcomes.
// A buyer without history scores zero.
func ComputeRiskScore(buyerID string, stats OrderStats, w RiskWeights, now time.Time) RiskScore {
	rs := RiskScore{
		BuyerID:         buyerID,
		TotalOrders:     stats.Total,
		CompletedOrders: stats.Completed,
		DisputedOrders:  stats.Disputed,
		CancelledOrders: stats.Cancelled,
		Score:           decimal.Zero,
		ComputedAt:      now,
	}
	if stats.Total > 0 {
		total := decimal.NewFromInt(stats.Total)
		disputed := decimal.NewFromInt(stats.Disputed).Div(total)
		cancelled := decimal.NewFromInt(stats.Cancelled).Div(total)
		score := w.Dispute.Mul(disputed).Add(w.Cancel.Mul(cancelled)).Mul(scoreCeiling)
		if score.GreaterThan(scoreCeiling) {
			score = scoreCeiling
		}
		if score.IsNegative() {
			score = decimal.Zero
		}
		rs.Score = score.Round(MoneyScale)
	}
	rs.HighRisk = rs.Score.GreaterThanOrEqual(w.HighRiskThreshold)
	return rs
}
