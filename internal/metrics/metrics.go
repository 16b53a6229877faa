package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for promptplay
type Metrics struct {
	// Command execution metrics
	CommandExecutions *prometheus.CounterVec
	CommandDuration   *prometheus.HistogramVec

	// Chat backend metrics
	ModelCalls   *prometheus.CounterVec
	ModelLatency *prometheus.HistogramVec

	// Structured response metrics
	Extractions *prometheus.CounterVec

	// Brainstorm metrics
	BrainstormRounds   prometheus.Counter
	BrainstormSessions *prometheus.CounterVec

	// Persistence metrics
	ResultsPersisted *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		CommandExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promptplay_command_executions_total",
				Help: "Total number of command executions",
			},
			[]string{"command", "success"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "promptplay_command_duration_seconds",
				Help:    "Command execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),

		ModelCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promptplay_model_calls_total",
				Help: "Total number of chat calls sent to an LLM backend",
			},
			[]string{"provider", "workflow", "success"},
		),
		ModelLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "promptplay_model_call_duration_seconds",
				Help:    "Chat call latency in seconds",
				Buckets: []float64{0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0, 120.0},
			},
			[]string{"provider", "workflow"},
		),

		Extractions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promptplay_extractions_total",
				Help: "Structured response extraction outcomes",
			},
			[]string{"workflow", "result"},
		),

		BrainstormRounds: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "promptplay_brainstorm_rounds_total",
				Help: "Total number of brainstorm rounds sent to the model",
			},
		),
		BrainstormSessions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promptplay_brainstorm_sessions_total",
				Help: "Brainstorm sessions by outcome",
			},
			[]string{"outcome"},
		),

		ResultsPersisted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promptplay_results_persisted_total",
				Help: "Structured results written to disk",
			},
			[]string{"workflow"},
		),
	}
}

// RecordCommand records one command execution.
func (m *Metrics) RecordCommand(command string, success bool, d time.Duration) {
	if m == nil {
		return
	}
	m.CommandExecutions.WithLabelValues(command, strconv.FormatBool(success)).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
}

// RecordModelCall records one chat call.
func (m *Metrics) RecordModelCall(provider, workflow string, success bool, d time.Duration) {
	if m == nil {
		return
	}
	m.ModelCalls.WithLabelValues(provider, workflow, strconv.FormatBool(success)).Inc()
	m.ModelLatency.WithLabelValues(provider, workflow).Observe(d.Seconds())
}

// RecordExtraction records an extraction outcome such as "ok",
// "no_json" or "schema_violation".
func (m *Metrics) RecordExtraction(workflow, result string) {
	if m == nil {
		return
	}
	m.Extractions.WithLabelValues(workflow, result).Inc()
}

// RecordRound counts one brainstorm round.
func (m *Metrics) RecordRound() {
	if m == nil {
		return
	}
	m.BrainstormRounds.Inc()
}

// RecordSession records how a brainstorm session ended.
func (m *Metrics) RecordSession(outcome string) {
	if m == nil {
		return
	}
	m.BrainstormSessions.WithLabelValues(outcome).Inc()
}

// RecordPersisted counts a result written for workflow.
func (m *Metrics) RecordPersisted(workflow string) {
	if m == nil {
		return
	}
	m.ResultsPersisted.WithLabelValues(workflow).Inc()
}
