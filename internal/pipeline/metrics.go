package pipeline

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes processing counters on a private registry. A nil *Metrics
// records nothing.
type Metrics struct {
	registry  *prometheus.Registry
	documents *prometheus.CounterVec
	fragments prometheus.Counter
	duration  prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docoutline",
			Name:      "documents_processed_total",
			Help:      "Documents processed, by outcome.",
		}, []string{"status"}),
		fragments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docoutline",
			Name:      "fragments_extracted_total",
			Help:      "Text fragments extracted from documents.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "docoutline",
			Name:      "processing_seconds",
			Help:      "Time to extract and outline one document.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
	}
	m.registry.MustRegister(
		m.documents,
		m.fragments,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveDocument records one processed document.
func (m *Metrics) ObserveDocument(status string, fragments int, d time.Duration) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(status).Inc()
	m.fragments.Add(float64(fragments))
	m.duration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
