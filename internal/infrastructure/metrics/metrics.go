package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "moneybook"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Change feed metrics
	ChangeEvents *prometheus.CounterVec

	// Ledger metrics
	AccountBalance  *prometheus.GaugeVec
	TotalBalance    prometheus.Gauge
	DestroyedValue  prometheus.Gauge
	LedgerIssues    prometheus.Gauge
	Projections     *prometheus.CounterVec
	ProjectionDelay prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates the metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ChangeEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "change_events_total",
				Help:      "Committed mutations by entity and kind",
			},
			[]string{"entity", "kind"},
		),

		AccountBalance: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "account_balance",
				Help:      "Current account balance, including unconfirmed adjustments",
			},
			[]string{"account_id"},
		),
		TotalBalance: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_balance",
			Help:      "Sum of all account balances",
		}),
		DestroyedValue: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "destroyed_value",
			Help:      "Value removed from tracked accounts by transfer fees and orphaned transfers",
		}),
		LedgerIssues: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_issues",
			Help:      "Problems reported by the last consistency check",
		}),
		Projections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "projections_total",
				Help:      "Projection refreshes by result",
			},
			[]string{"result"},
		),
		ProjectionDelay: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "projection_duration_seconds",
			Help:      "Duration of a projection refresh",
			Buckets:   prometheus.DefBuckets,
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_duration_seconds",
				Help:      "HTTP request duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_hits_total",
				Help:      "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
