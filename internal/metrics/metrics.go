// Package metrics holds the prometheus collectors for the contact form.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const subsystem = "contact"

// Registry is the registry served on /metrics.
var Registry = prometheus.NewRegistry()

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "submissions_total",
			Help:      "Count of contact form submit attempts by outcome.",
		},
		[]string{"outcome"},
	)
	ValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "validation_failures_total",
			Help:      "Count of invalid fields reported on blocked submits.",
		},
		[]string{"field"},
	)
	DeliveredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "delivered_total",
			Help:      "Count of messages handed to the deliverer.",
		},
	)
	DismissedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "notifications_dismissed_total",
			Help:      "Count of success notifications dismissed before they expired.",
		},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Subsystem: subsystem,
			Name:      "active_sessions",
			Help:      "Number of mounted contact forms.",
		},
	)
)

var registerMetrics sync.Once

// Register all metrics.
func Register() {
	registerMetrics.Do(func() {
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		Registry.MustRegister(SubmissionsTotal)
		Registry.MustRegister(ValidationFailuresTotal)
		Registry.MustRegister(DeliveredTotal)
		Registry.MustRegister(DismissedTotal)
		Registry.MustRegister(ActiveSessions)
	})
}
