package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "expungement"

// Исходы обращения к сервису проверки
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeFallback = "fallback"
)

type Metrics struct {
	registry *prometheus.Registry

	InterviewsStarted   prometheus.Counter
	InterviewsCompleted prometheus.Counter
	AnswersAccepted     *prometheus.CounterVec
	EligibilityCalls    *prometheus.CounterVec
	ResultsSaved        *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		InterviewsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interviews_started_total",
			Help:      "Number of questionnaires started.",
		}),
		InterviewsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interviews_completed_total",
			Help:      "Number of questionnaires with every question answered.",
		}),
		AnswersAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_accepted_total",
			Help:      "Number of accepted answers by expected type.",
		}, []string{"type"}),
		EligibilityCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "eligibility_calls_total",
			Help:      "Eligibility evaluations by outcome.",
		}, []string{"outcome"}),
		ResultsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_saved_total",
			Help:      "Result persistence attempts by success.",
		}, []string{"success"}),
	}

	m.registry.MustRegister(
		m.InterviewsStarted,
		m.InterviewsCompleted,
		m.AnswersAccepted,
		m.EligibilityCalls,
		m.ResultsSaved,
	)

	return m
}

func (m *Metrics) IncrementInterviewsStarted() {
	m.InterviewsStarted.Inc()
}

func (m *Metrics) IncrementInterviewsCompleted() {
	m.InterviewsCompleted.Inc()
}

func (m *Metrics) IncrementAnswersAccepted(expectedType string) {
	m.AnswersAccepted.WithLabelValues(expectedType).Inc()
}

func (m *Metrics) IncrementEligibilityCall(outcome string) {
	m.EligibilityCalls.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementResultsSaved(success bool) {
	label := "false"
	if success {
		label = "true"
	}
	m.ResultsSaved.WithLabelValues(label).Inc()
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
