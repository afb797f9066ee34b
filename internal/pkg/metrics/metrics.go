package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics хранит Prometheus-метрики сервиса
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	QuestionsServed   *prometheus.CounterVec
	SessionsExhausted *prometheus.CounterVec
	SessionsStarted   prometheus.Counter
}

// NewMetrics регистрирует метрики в reg (prometheus.DefaultRegisterer в проде,
// prometheus.NewRegistry() в тестах)
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		QuestionsServed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "quiz",
				Name:      "questions_served_total",
				Help:      "Quiz questions handed out, by category filter",
			},
			[]string{"category"},
		),
		SessionsExhausted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "quiz",
				Name:      "exhausted_total",
				Help:      "Next-question calls that found no unseen question left",
			},
			[]string{"category"},
		),
		SessionsStarted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "quiz",
				Name:      "sessions_started_total",
				Help:      "Server-held quiz sessions started",
			},
		),
	}
}

// ObserveQuizDraw учитывает результат выбора вопроса; безопасен для nil
func (m *Metrics) ObserveQuizDraw(category string, exhausted bool) {
	if m == nil {
		return
	}
	if exhausted {
		m.SessionsExhausted.WithLabelValues(category).Inc()
		return
	}
	m.QuestionsServed.WithLabelValues(category).Inc()
}

// ObserveSessionStarted учитывает новую серверную сессию; безопасен для nil
func (m *Metrics) ObserveSessionStarted() {
	if m == nil {
		return
	}
	m.SessionsStarted.Inc()
}
