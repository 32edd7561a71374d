package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry
	service  string

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	chatRequestsTotal     prometheus.Counter
	chatRetrievalHitTotal prometheus.Counter
	chatNoContextTotal    prometheus.Counter
	chatRetrievedPassages prometheus.Histogram
	chatDuration          prometheus.Histogram
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nra",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nra",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "nra",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	chatRequestsTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "nra",
			Subsystem:   "chat",
			Name:        "requests_total",
			Help:        "Total successful chat pipeline runs.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	chatRetrievalHitTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "nra",
			Subsystem:   "chat",
			Name:        "retrieval_hit_total",
			Help:        "Total chat requests with at least one retrieved passage.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	chatNoContextTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "nra",
			Subsystem:   "chat",
			Name:        "no_context_total",
			Help:        "Total chat requests answered without retrieved context.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	chatRetrievedPassages := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "nra",
			Subsystem:   "chat",
			Name:        "retrieved_passages",
			Help:        "Distribution of retrieved passages per successful chat request.",
			Buckets:     []float64{0, 1, 2, 3, 5, 8},
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	chatDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "nra",
			Subsystem:   "chat",
			Name:        "duration_seconds",
			Help:        "Chat pipeline duration in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{"service": service},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		chatRequestsTotal,
		chatRetrievalHitTotal,
		chatNoContextTotal,
		chatRetrievedPassages,
		chatDuration,
	)

	return &HTTPServerMetrics{
		registry:              registry,
		service:               service,
		requestTotal:          requestTotal,
		requestDuration:       requestDuration,
		requestInFlight:       requestInFlight,
		chatRequestsTotal:     chatRequestsTotal,
		chatRetrievalHitTotal: chatRetrievalHitTotal,
		chatNoContextTotal:    chatNoContextTotal,
		chatRetrievedPassages: chatRetrievedPassages,
		chatDuration:          chatDuration,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			m.service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(m.service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *HTTPServerMetrics) RecordChatObservation(sourceCount int, duration time.Duration) {
	m.chatRequestsTotal.Inc()
	m.chatRetrievedPassages.Observe(float64(sourceCount))
	m.chatDuration.Observe(duration.Seconds())

	if sourceCount > 0 {
		m.chatRetrievalHitTotal.Inc()
		return
	}
	m.chatNoContextTotal.Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}
