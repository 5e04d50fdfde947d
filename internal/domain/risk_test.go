package domain

import (
	"testing"
	"time"
)

func testWeights() RiskWeights {
	return RiskWeights{Dispute: dec("0.7"), Cancel: dec("0.3"), HighRiskThreshold: dec("50")}
}

func TestComputeRiskScore(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name  string
		stats OrderStats
		score string
		high  bool
	}{
		{"no history", OrderStats{}, "0", false},
		{"clean buyer", OrderStats{Total: 10, Completed: 10}, "0", false},
		{"every order disputed", OrderStats{Total: 4, Disputed: 4, Completed: 2, Cancelled: 2}, "85", true},
		{"mixed", OrderStats{Total: 3, Completed: 2, Disputed: 1}, "23.33", false},
		{"above threshold", OrderStats{Total: 7, Disputed: 5, Completed: 5, Cancelled: 2}, "58.57", true},
		{"exactly threshold", OrderStats{Total: 10, Disputed: 5, Completed: 5, Cancelled: 5}, "50", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rs := ComputeRiskScore("b-1", c.stats, testWeights(), now)
			if !rs.Score.Equal(dec(c.score)) {
				t.Fatalf("score = %s, want %s", rs.Score, c.score)
			}
			if rs.HighRisk != c.high {
				t.Fatalf("HighRisk = %v, want %v", rs.HighRisk, c.high)
			}
			if rs.TotalOrders != c.stats.Total || rs.BuyerID != "b-1" {
				t.Fatalf("counts not copied: %+v", rs)
			}
		})
	}
}

func TestComputeRiskScoreClamps(t *testing.T) {
	w := RiskWeights{Dispute: dec("2"), Cancel: dec("2"), HighRiskThreshold: dec("50")}
	rs := ComputeRiskScore("b", OrderStats{Total: 2, Disputed: 2, Cancelled: 2}, w, time.Now())
	if !rs.Score.Equal(dec("100")) {
		t.Fatalf("score = %s, want 100", rs.Score)
	}
}
