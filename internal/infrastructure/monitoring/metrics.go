package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Session metrics
	PointsAwarded      prometheus.Counter
	SessionPoints      prometheus.Gauge
	SessionHealth      prometheus.Gauge
	SessionTemperature prometheus.Gauge
	ProfileSaves       *prometheus.CounterVec

	// Process metrics
	ProcessesRunning prometheus.Gauge
	ProcessesSpawned prometheus.Counter

	// Event metrics
	EventsTotal      *prometheus.CounterVec
	EventSubscribers prometheus.Gauge

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalCommands  int64 `json:"total_commands"`
	FailedCommands int64 `json:"failed_commands"`
	PointsAwarded  int64 `json:"points_awarded"`
	TotalRequests  int64 `json:"total_requests"`
}

// NewMetrics creates a metrics collector backed by its own registry, so
// several sessions (or tests) never collide on registration.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minios_commands_total",
				Help: "Total number of dispatched commands",
			},
			[]string{"command", "outcome"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "minios_command_duration_seconds",
				Help:    "Command handler duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5, 30},
			},
			[]string{"command"},
		),

		PointsAwarded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "minios_points_awarded_total",
				Help: "Total number of points awarded",
			},
		),
		SessionPoints: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "minios_session_points",
				Help: "Current point total of the session",
			},
		),
		SessionHealth: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "minios_session_health",
				Help: "Simulated system health (0-100)",
			},
		),
		SessionTemperature: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "minios_session_temperature_celsius",
				Help: "Simulated system temperature (20-80)",
			},
		),
		ProfileSaves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minios_profile_saves_total",
				Help: "Total number of profile writes",
			},
			[]string{"status"},
		),

		ProcessesRunning: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "minios_processes_running",
				Help: "Number of running simulated processes",
			},
		),
		ProcessesSpawned: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "minios_processes_spawned_total",
				Help: "Total number of spawned simulated processes",
			},
		),

		EventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minios_events_total",
				Help: "Total number of broadcast events",
			},
			[]string{"type"},
		),
		EventSubscribers: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "minios_event_subscribers",
				Help: "Number of event subscribers",
			},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minios_http_requests_total",
				Help: "Total number of status API requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "minios_http_request_duration_seconds",
				Help:    "Status API request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "minios_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "minios_uptime_seconds",
			Help: "Session uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus exposition handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordCommand records one dispatched command
func (m *Metrics) RecordCommand(command, outcome string, duration time.Duration) {
	m.CommandsTotal.WithLabelValues(command, outcome).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalCommands++
	if outcome != "ok" {
		m.snapshot.FailedCommands++
	}
	m.mu.Unlock()
}

// RecordAward records awarded points and the new total
func (m *Metrics) RecordAward(points, total int) {
	m.PointsAwarded.Add(float64(points))
	m.SessionPoints.Set(float64(total))

	m.mu.Lock()
	m.snapshot.PointsAwarded += int64(points)
	m.mu.Unlock()
}

// SetPoints sets the current point total, e.g. after loading a profile
func (m *Metrics) SetPoints(total int) {
	m.SessionPoints.Set(float64(total))
}

// SetVitals records the simulated health and temperature
func (m *Metrics) SetVitals(health, temperature int) {
	m.SessionHealth.Set(float64(health))
	m.SessionTemperature.Set(float64(temperature))
}

// RecordProfileSave records a profile write attempt
func (m *Metrics) RecordProfileSave(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.ProfileSaves.WithLabelValues(status).Inc()
}

// SetProcessesRunning sets the number of running processes
func (m *Metrics) SetProcessesRunning(count int) {
	m.ProcessesRunning.Set(float64(count))
}

// IncProcessesSpawned increments the spawned processes counter
func (m *Metrics) IncProcessesSpawned() {
	m.ProcessesSpawned.Inc()
}

// RecordEvent records a broadcast event
func (m *Metrics) RecordEvent(eventType string) {
	m.EventsTotal.WithLabelValues(eventType).Inc()
}

// SetSubscribers sets the number of event subscribers
func (m *Metrics) SetSubscribers(n int) {
	m.EventSubscribers.Set(float64(n))
}

// RecordHTTPRequest records a status API request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.mu.Unlock()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// Snapshot returns the current JSON snapshot
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Uptime returns time since the collector was created
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
