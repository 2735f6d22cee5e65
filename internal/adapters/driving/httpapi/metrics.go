package httpapi

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/legalchunk/internal/core/domain"
)

// metrics holds the collectors of one server. Each server owns its
// registry so tests can build servers side by side.
type metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	documents *prometheus.CounterVec
	chunks    prometheus.Counter
	quality   prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "legalchunk",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "legalchunk",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "legalchunk",
			Name:      "documents_total",
			Help:      "Chunked documents by detected type.",
		}, []string{"type"}),
		chunks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "legalchunk",
			Name:      "chunks_total",
			Help:      "Chunks produced.",
		}),
		quality: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "legalchunk",
			Name:      "chunk_quality_score",
			Help:      "Distribution of chunk quality scores.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
	}
	m.registry.MustRegister(
		m.requests, m.latency, m.documents, m.chunks, m.quality,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// observeRequest records one finished request.
func (m *metrics) observeRequest(route, method string, code int, seconds float64) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.latency.WithLabelValues(route).Observe(seconds)
}

// observeResult records the output of one chunking call.
func (m *metrics) observeResult(result *domain.ChunkingResult) {
	m.documents.WithLabelValues(string(result.DocumentStats.DocumentType)).Inc()
	m.chunks.Add(float64(len(result.Chunks)))
	for i := range result.Chunks {
		m.quality.Observe(result.Chunks[i].Metadata.QualityScore)
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
