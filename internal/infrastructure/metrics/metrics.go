package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds the bank's Prometheus metrics.
type Metrics struct {
	// Ledger metrics
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	AccountBalance    *prometheus.GaugeVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
	EventErrors     *prometheus.CounterVec

	// Idempotency metrics
	IdempotencyReplays prometheus.Counter

	// Load shedding metrics
	RateLimitHits prometheus.Counter
	RequestsShed  prometheus.Counter
}

// New creates the metrics and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldenlock_operations_total",
				Help: "Total bank operations by type and outcome",
			},
			[]string{"operation", "status"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goldenlock_operation_duration_seconds",
				Help:    "Duration of bank operations",
				Buckets: []float64{.00001, .0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"operation"},
		),
		AccountBalance: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "goldenlock_account_balance",
				Help: "Current account balance",
			},
			[]string{"account"},
		),

		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldenlock_events_published_total",
				Help: "Total outbox events published",
			},
			[]string{"event_type"},
		),
		EventErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldenlock_event_errors_total",
				Help: "Total outbox events that failed to publish",
			},
			[]string{"event_type"},
		),

		IdempotencyReplays: factory.NewCounter(prometheus.CounterOpts{
			Name: "goldenlock_idempotency_replays_total",
			Help: "Total responses replayed from the idempotency store",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "goldenlock_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
		RequestsShed: factory.NewCounter(prometheus.CounterOpts{
			Name: "goldenlock_requests_shed_total",
			Help: "Total requests rejected while the server was at its in-flight limit",
		}),
	}
}

// RecordOperation counts one bank operation and observes its duration.
func (m *Metrics) RecordOperation(op string, duration time.Duration, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.Operations.WithLabelValues(op, status).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordBalance sets the balance gauge of an account.
func (m *Metrics) RecordBalance(accountNumber string, balance float64) {
	m.AccountBalance.WithLabelValues(accountNumber).Set(balance)
}

// RecordPublished counts a publish attempt for an outbox event.
func (m *Metrics) RecordPublished(eventType string, err error) {
	if err != nil {
		m.EventErrors.WithLabelValues(eventType).Inc()
		return
	}
	m.EventsPublished.WithLabelValues(eventType).Inc()
}
