package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	ReportsReceived      prometheus.Counter
	EventsRegistered     prometheus.Counter
	DuplicatesIgnored    prometheus.Counter
	MisdirectionsRaised  prometheus.Counter
	RegistrationDuration prometheus.Histogram
	ErrorsCount          *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ReportsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handling_reports_received_total",
			Help:      "The total number of raw handling reports received",
		}),
		EventsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handling_events_registered_total",
			Help:      "The total number of handling events appended to cargo histories",
		}),
		DuplicatesIgnored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_events_ignored_total",
			Help:      "The total number of duplicate handling reports suppressed",
		}),
		MisdirectionsRaised: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misdirections_raised_total",
			Help:      "The total number of registrations that newly marked a cargo misdirected",
		}),
		RegistrationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_registration_duration_seconds",
			Help:      "Time taken to register a handling event",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
