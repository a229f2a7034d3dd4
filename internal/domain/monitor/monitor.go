package monitor

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiniOS/internal/events"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/logging"
)

// ProcessName is the process table name the monitor runs under
const ProcessName = "system_health"

// Defaults
const (
	DefaultInterval    = 30 * time.Second
	DefaultProbability = 0.3
)

// Messages is the fixed set of notifications
var Messages = []string{
	"🔍 System scan: All services normal",
	"💾 Memory usage: Optimal",
	"🔄 Background tasks: Running smoothly",
	"🌡️  System temperature: Stable",
}

// Status reports whether the observed session still runs
type Status interface {
	Active() bool
}

// Publisher receives notifications
type Publisher interface {
	Publish(event events.Event)
}

// Monitor periodically emits status notifications
type Monitor struct {
	interval    time.Duration
	probability float64
	messages    []string
	rng         *rand.Rand
	status      Status
	publisher   Publisher
	logger      *logging.Logger
}

// Option configures a Monitor
type Option func(*Monitor)

// WithInterval sets the tick interval
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithProbability sets the per-tick emission probability, clamped to [0,1]
func WithProbability(p float64) Option {
	return func(m *Monitor) {
		switch {
		case p < 0:
			p = 0
		case p > 1:
			p = 1
		}
		m.probability = p
	}
}

// WithRand injects the randomness source. Only the Run goroutine uses it.
func WithRand(rng *rand.Rand) Option {
	return func(m *Monitor) {
		m.rng = rng
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(m *Monitor) {
		m.logger = l
	}
}

// New creates a monitor observing status and publishing to publisher
func New(status Status, publisher Publisher, opts ...Option) *Monitor {
	m := &Monitor{
		interval:    DefaultInterval,
		probability: DefaultProbability,
		messages:    Messages,
		status:      status,
		publisher:   publisher,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m.logger = m.logger.Named("monitor")
	return m
}

// Run ticks until ctx is cancelled. It has the signature of process work.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Debug("Monitor started",
		zap.Duration("interval", m.interval),
		zap.Float64("probability", m.probability),
	)

	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("Monitor stopped")
			return
		case <-ticker.C:
			if m.status != nil && !m.status.Active() {
				continue
			}
			m.tick()
		}
	}
}

// tick draws once and may emit a notification
func (m *Monitor) tick() {
	if m.rng.Float64() >= m.probability {
		return
	}

	msg := m.messages[m.rng.Intn(len(m.messages))]
	if m.publisher != nil {
		m.publisher.Publish(events.Event{
			Type:    events.TypeNotification,
			Message: msg,
		})
	}
	m.logger.Debug("Notification emitted", zap.String("message", msg))
}
