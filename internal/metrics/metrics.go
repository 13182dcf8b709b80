package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "student_portal"

var (
	streamRedirects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_redirects_total",
			Help:      "Stream redirect resolutions by outcome.",
		},
		[]string{"outcome"},
	)
	registrations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Student accounts created through self registration.",
		},
	)
	notificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Registration notifications that could not be handed to the mail queue.",
		},
		[]string{"template"},
	)
	listedStudents = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "listed_students",
			Help:      "Number of students returned per listing request.",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
	)
)

var registerMetrics sync.Once

// Register adds the portal collectors to reg once.
func Register(reg prometheus.Registerer) {
	registerMetrics.Do(func() {
		reg.MustRegister(streamRedirects, registrations, notificationFailures, listedStudents)
	})
}

func RecordStreamRedirect(outcome string) {
	streamRedirects.WithLabelValues(outcome).Inc()
}

func RecordRegistration() {
	registrations.Inc()
}

func RecordNotificationFailure(template string) {
	notificationFailures.WithLabelValues(template).Inc()
}

func RecordListing(n int) {
	listedStudents.Observe(float64(n))
}
