package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// EngineMetrics содержит все метрики escrow-движка
type EngineMetrics struct {
	// Созданные сделки
	OrdersCreatedTotal       *prometheus.CounterVec
	OrdersCreatedAmountTotal *prometheus.CounterVec

	// Переходы по статусам
	OrderTransitionsTotal *prometheus.CounterVec

	// Отказы гейта допуска
	AdmissionRejectedTotal *prometheus.CounterVec

	// Расчеты по escrow (release/refund/split)
	SettlementsTotal       *prometheus.CounterVec
	SettlementsAmountTotal *prometheus.CounterVec

	// Споры
	DisputesOpenedTotal   prometheus.Counter
	DisputesResolvedTotal *prometheus.CounterVec

	// Фоновые задачи
	SweepProcessedTotal *prometheus.CounterVec
	SweepErrorsTotal    *prometheus.CounterVec

	// Сверка: сумма в holding минус замороженные средства
	ReconciliationDrift prometheus.Gauge

	// Ошибки
	ErrorsTotal *prometheus.CounterVec
}

// NewEngineMetrics регистрирует метрики в reg
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	f := promauto.With(reg)
	return &EngineMetrics{
		OrdersCreatedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_orders_created_total",
				Help: "Количество созданных заказов",
			},
			[]string{"currency"},
		),
		OrdersCreatedAmountTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_orders_created_amount_total",
				Help: "Сумма созданных заказов",
			},
			[]string{"currency"},
		),
		OrderTransitionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_order_transitions_total",
				Help: "Количество переходов заказов между статусами",
			},
			[]string{"from", "to"},
		),
		AdmissionRejectedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_admission_rejected_total",
				Help: "Количество заказов, отклоненных политикой продавца",
			},
			[]string{"reason"},
		),
		SettlementsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_settlements_total",
				Help: "Количество закрытых escrow по типу расчета",
			},
			[]string{"kind"},
		),
		SettlementsAmountTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_settlements_amount_total",
				Help: "Суммы, выплаченные сторонам",
			},
			[]string{"party", "currency"},
		),
		DisputesOpenedTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "escrow_disputes_opened_total",
				Help: "Количество открытых споров",
			},
		),
		DisputesResolvedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_disputes_resolved_total",
				Help: "Количество разрешенных споров по исходу",
			},
			[]string{"outcome"},
		),
		SweepProcessedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_sweep_processed_total",
				Help: "Заказы, обработанные фоновыми задачами",
			},
			[]string{"sweep"},
		),
		SweepErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_sweep_errors_total",
				Help: "Ошибки фоновых задач",
			},
			[]string{"sweep"},
		),
		ReconciliationDrift: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "escrow_reconciliation_drift",
				Help: "Разница между суммой в holding и замороженными средствами покупателей",
			},
		),
		ErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_errors_total",
				Help: "Ошибки операций движка",
			},
			[]string{"operation"},
		),
	}
}

// RecordOrderCreated записывает созданный заказ
func (m *EngineMetrics) RecordOrderCreated(currency string, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.OrdersCreatedTotal.WithLabelValues(currency).Inc()
	m.OrdersCreatedAmountTotal.WithLabelValues(currency).Add(amount.InexactFloat64())
}

// RecordTransition записывает переход статуса
func (m *EngineMetrics) RecordTransition(from, to string) {
	if m == nil {
		return
	}
	m.OrderTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordAdmissionRejected записывает отказ в допуске
func (m *EngineMetrics) RecordAdmissionRejected(reason string) {
	if m == nil {
		return
	}
	m.AdmissionRejectedTotal.WithLabelValues(reason).Inc()
}

// RecordSettlement записывает расчет и суммы сторон
func (m *EngineMetrics) RecordSettlement(kind, currency string, sellerShare, buyerShare decimal.Decimal) {
	if m == nil {
		return
	}
	m.SettlementsTotal.WithLabelValues(kind).Inc()
	if sellerShare.IsPositive() {
		m.SettlementsAmountTotal.WithLabelValues("seller", currency).Add(sellerShare.InexactFloat64())
	}
	if buyerShare.IsPositive() {
		m.SettlementsAmountTotal.WithLabelValues("buyer", currency).Add(buyerShare.InexactFloat64())
	}
}

func (m *EngineMetrics) RecordDisputeOpened() {
	if m == nil {
		return
	}
	m.DisputesOpenedTotal.Inc()
}

func (m *EngineMetrics) RecordDisputeResolved(outcome string) {
	if m == nil {
		return
	}
	m.DisputesResolvedTotal.WithLabelValues(outcome).Inc()
}

// RecordSweep записывает результат прохода фоновой задачи
func (m *EngineMetrics) RecordSweep(sweep string, processed, failed int) {
	if m == nil {
		return
	}
	m.SweepProcessedTotal.WithLabelValues(sweep).Add(float64(processed))
	m.SweepErrorsTotal.WithLabelValues(sweep).Add(float64(failed))
}

func (m *EngineMetrics) SetReconciliationDrift(drift decimal.Decimal) {
	if m == nil {
		return
	}
	m.ReconciliationDrift.Set(drift.InexactFloat64())
}

// RecordError записывает ошибку
func (m *EngineMetrics) RecordError(operation string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(operation).Inc()
}
