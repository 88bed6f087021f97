package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"quinceinvitation/internal/domain"
)

// Metrics holds the RSVP collectors registered on one registry.
type Metrics struct {
	SubmissionsTotal *prometheus.CounterVec
	DeliveriesTotal  *prometheus.CounterVec
	DeliveryDuration prometheus.Histogram
}

// New registers the RSVP collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rsvp_submissions_total",
			Help: "Total number of RSVP submissions, labelled by outcome.",
		}, []string{"outcome"}),
		DeliveriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rsvp_deliveries_total",
			Help: "Total number of form service deliveries, labelled by status.",
		}, []string{"status"}),
		DeliveryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rsvp_delivery_duration_seconds",
			Help:    "Latency of form service deliveries in seconds.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}
}

// Observe implements domain.DeliveryObserver.
func (m *Metrics) Observe(_ context.Context, _ *domain.RSVPSubmission, result domain.DeliveryResult) {
	m.DeliveriesTotal.WithLabelValues(string(result.Status)).Inc()
	m.DeliveryDuration.Observe(result.Duration.Seconds())
}

// CountSubmission records the outcome of one request to the intake endpoint.
func (m *Metrics) CountSubmission(outcome string) {
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
}
