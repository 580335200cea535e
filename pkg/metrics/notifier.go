package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NotifierMetrics records publish outcomes for the realtime notifier.
type NotifierMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewNotifierMetrics registers the notifier metrics on the provided registerer.
func NewNotifierMetrics(reg prometheus.Registerer) *NotifierMetrics {
	if reg == nil {
		return &NotifierMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notifier_publish_duration_seconds",
		Help:    "Duration of realtime event publishes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"event"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifier_publish_success",
		Help: "Successful realtime event publishes.",
	}, []string{"event"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifier_publish_failure",
		Help: "Failed realtime event publishes.",
	}, []string{"event"})
	reg.MustRegister(duration, success, failure)
	return &NotifierMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the publish duration for the named event type.
func (n *NotifierMetrics) ObserveDuration(event string, duration time.Duration) {
	if n == nil || n.duration == nil {
		return
	}
	n.duration.WithLabelValues(normalizeLabel(event)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named event type.
func (n *NotifierMetrics) IncSuccess(event string) {
	if n == nil || n.success == nil {
		return
	}
	n.success.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncFailure increments the failure counter for the named event type.
func (n *NotifierMetrics) IncFailure(event string) {
	if n == nil || n.failure == nil {
		return
	}
	n.failure.WithLabelValues(normalizeLabel(event)).Inc()
}

func normalizeLabel(event string) string {
	if event == "" {
		return "unknown"
	}
	return event
}
