package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	OAuthLogins       prometheus.Counter
	CallbackFailures  prometheus.Counter
	GraphAPIErrors    prometheus.Counter
	PublishRequests   *prometheus.CounterVec
	ProcessingSeconds prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OAuthLogins: factory.NewCounter(prometheus.CounterOpts{
			Name: "igpublisher_oauth_logins_total",
			Help: "Total number of authorization redirects issued",
		}),
		CallbackFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "igpublisher_oauth_callback_failures_total",
			Help: "Total number of OAuth callbacks that did not produce a session",
		}),
		GraphAPIErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "igpublisher_graph_api_errors_total",
			Help: "Total number of Graph API calls answered with an error status",
		}),
		PublishRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "igpublisher_publish_requests_total",
			Help: "Publish pipeline runs by media type and outcome",
		}, []string{"media_type", "outcome"}),
		ProcessingSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "igpublisher_container_processing_seconds",
			Help:    "Time spent waiting for container transcoding to finish",
			Buckets: prometheus.ExponentialBuckets(1, 2, 11),
		}),
	}
}

func (m *Metrics) IncrementLogins() {
	m.OAuthLogins.Inc()
}

func (m *Metrics) IncrementCallbackFailures() {
	m.CallbackFailures.Inc()
}

func (m *Metrics) IncrementGraphErrors() {
	m.GraphAPIErrors.Inc()
}

func (m *Metrics) PublishOutcome(mediaType, outcome string) {
	m.PublishRequests.WithLabelValues(mediaType, outcome).Inc()
}

func (m *Metrics) ObserveProcessing(d time.Duration) {
	m.ProcessingSeconds.Observe(d.Seconds())
}
