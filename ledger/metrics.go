package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the ledger's prometheus collectors on a private registry so
// several ledgers (tests) never collide on the default one.
type Metrics struct {
	Registry *prometheus.Registry

	calls        *prometheus.CounterVec
	groups       *prometheus.CounterVec
	groupLatency prometheus.Histogram
	appBalance   prometheus.Gauge
	round        prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "council",
			Subsystem: "ledger",
			Name:      "calls_total",
			Help:      "Application calls by action and outcome.",
		}, []string{"action", "outcome"}),
		groups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "council",
			Subsystem: "ledger",
			Name:      "groups_total",
			Help:      "Atomic groups by outcome.",
		}, []string{"outcome"}),
		groupLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "council",
			Subsystem: "ledger",
			Name:      "group_duration_seconds",
			Help:      "Time to evaluate and commit one atomic group.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		appBalance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "council",
			Subsystem: "ledger",
			Name:      "application_balance",
			Help:      "Funds held by the application account after the last commit.",
		}),
		round: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "council",
			Subsystem: "ledger",
			Name:      "round",
			Help:      "Last committed round.",
		}),
	}
	m.Registry.MustRegister(m.calls, m.groups, m.groupLatency, m.appBalance, m.round)
	return m
}

const (
	outcomeCommitted = "committed"
	outcomeRejected  = "rejected"
)

func (m *Metrics) observeCall(action, outcome string) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) observeGroup(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.groups.WithLabelValues(outcome).Inc()
	m.groupLatency.Observe(seconds)
}

func (m *Metrics) setState(round, appBalance uint64) {
	if m == nil {
		return
	}
	m.round.Set(float64(round))
	m.appBalance.Set(float64(appBalance))
}
