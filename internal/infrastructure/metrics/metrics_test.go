package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

func TestRecordSettlement(t *testing.T) {
	m := NewEngineMetrics(prometheus.NewRegistry())

	m.RecordSettlement("split", "USD", decimal.NewFromInt(60), decimal.NewFromInt(40))
	m.RecordSettlement("release", "USD", decimal.NewFromInt(100), decimal.Zero)

	if got := testutil.ToFloat64(m.SettlementsTotal.WithLabelValues("split")); got != 1 {
		t.Fatalf("split settlements = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SettlementsAmountTotal.WithLabelValues("seller", "USD")); got != 160 {
		t.Fatalf("seller amount = %v, want 160", got)
	}
	if got := testutil.ToFloat64(m.SettlementsAmountTotal.WithLabelValues("buyer", "USD")); got != 40 {
		t.Fatalf("buyer amount = %v, want 40", got)
	}
}

func TestRecordSweepAndDrift(t *testing.T) {
	m := NewEngineMetrics(prometheus.NewRegistry())

	m.RecordSweep("auto_confirm", 3, 1)
	m.SetReconciliationDrift(decimal.RequireFromString("-2.50"))
	m.RecordAdmissionRejected("account_too_new")

	if got := testutil.ToFloat64(m.SweepProcessedTotal.WithLabelValues("auto_confirm")); got != 3 {
		t.Fatalf("processed = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.SweepErrorsTotal.WithLabelValues("auto_confirm")); got != 1 {
		t.Fatalf("errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ReconciliationDrift); got != -2.5 {
		t.Fatalf("drift = %v, want -2.5", got)
	}
	if got := testutil.ToFloat64(m.AdmissionRejectedTotal.WithLabelValues("account_too_new")); got != 1 {
		t.Fatalf("rejections = %v, want 1", got)
	}
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *EngineMetrics
	m.RecordOrderCreated("USD", decimal.NewFromInt(1))
	m.RecordTransition("a", "b")
	m.RecordError("x")
}
