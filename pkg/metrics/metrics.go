package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Work queue metrics
	tasksCreatedTotal      *prometheus.CounterVec
	taskTransitionsTotal   *prometheus.CounterVec
	itemsPickedTotal       prometheus.Counter
	taskAssignmentFailures prometheus.Counter

	// Location metrics
	locationsParsedTotal *prometheus.CounterVec
	voicePromptsTotal    prometheus.Counter

	// Event publishing metrics
	eventsPublishedTotal *prometheus.CounterVec
	circuitBreakerState  *prometheus.GaugeVec
}

// New creates a Metrics instance with its own registry
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: registry,

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),

		httpRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Current number of in-flight HTTP requests",
			ConstLabels: constLabels,
		}),

		tasksCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "work_tasks_created_total",
			Help:        "Total number of work tasks created",
			ConstLabels: constLabels,
		}, []string{"task_type", "required_role"}),

		taskTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "work_task_transitions_total",
			Help:        "Total number of work task status transitions",
			ConstLabels: constLabels,
		}, []string{"from_status", "to_status"}),

		itemsPickedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "items_picked_total",
			Help:        "Total quantity of items picked on completed tasks",
			ConstLabels: constLabels,
		}),

		taskAssignmentFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "work_task_assignment_failures_total",
			Help:        "Total number of assignment attempts lost to a concurrent worker",
			ConstLabels: constLabels,
		}),

		locationsParsedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "locations_parsed_total",
			Help:        "Total number of location code parse attempts",
			ConstLabels: constLabels,
		}, []string{"result"}),

		voicePromptsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "voice_prompts_generated_total",
			Help:        "Total number of voice prompts generated",
			ConstLabels: constLabels,
		}),

		eventsPublishedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "events_published_total",
			Help:        "Total number of domain events published",
			ConstLabels: constLabels,
		}, []string{"event_type", "status"}),

		circuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "circuit_breaker_state",
			Help:        "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			ConstLabels: constLabels,
		}, []string{"name"}),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpRequestsInFlight,
		m.tasksCreatedTotal,
		m.taskTransitionsTotal,
		m.itemsPickedTotal,
		m.taskAssignmentFailures,
		m.locationsParsedTotal,
		m.voicePromptsTotal,
		m.eventsPublishedTotal,
		m.circuitBreakerState,
	)

	return m
}

// Handler returns the Prometheus scrape handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records a completed HTTP request
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncrementHTTPRequestsInFlight increments the in-flight gauge
func (m *Metrics) IncrementHTTPRequestsInFlight() {
	m.httpRequestsInFlight.Inc()
}

// DecrementHTTPRequestsInFlight decrements the in-flight gauge
func (m *Metrics) DecrementHTTPRequestsInFlight() {
	m.httpRequestsInFlight.Dec()
}

// RecordTaskCreated records a new work task
func (m *Metrics) RecordTaskCreated(taskType, requiredRole string) {
	m.tasksCreatedTotal.WithLabelValues(taskType, requiredRole).Inc()
}

// RecordTaskTransition records a work task status transition
func (m *Metrics) RecordTaskTransition(fromStatus, toStatus string) {
	m.taskTransitionsTotal.WithLabelValues(fromStatus, toStatus).Inc()
}

// RecordItemsPicked adds to the picked item counter
func (m *Metrics) RecordItemsPicked(quantity int) {
	if quantity > 0 {
		m.itemsPickedTotal.Add(float64(quantity))
	}
}

// RecordAssignmentFailure records a lost assignment race
func (m *Metrics) RecordAssignmentFailure() {
	m.taskAssignmentFailures.Inc()
}

// RecordLocationParse records a parse attempt outcome
func (m *Metrics) RecordLocationParse(success bool) {
	result := "success"
	if !success {
		result = "invalid"
	}
	m.locationsParsedTotal.WithLabelValues(result).Inc()
}

// RecordVoicePrompt records a generated voice prompt
func (m *Metrics) RecordVoicePrompt() {
	m.voicePromptsTotal.Inc()
}

// RecordEventPublished records a domain event publish attempt
func (m *Metrics) RecordEventPublished(eventType string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.eventsPublishedTotal.WithLabelValues(eventType, status).Inc()
}

// SetCircuitBreakerState records the state of a named circuit breaker
func (m *Metrics) SetCircuitBreakerState(name string, state float64) {
	m.circuitBreakerState.WithLabelValues(name).Set(state)
}
