package session

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiniOS/internal/domain/process"
	"github.com/GriffinCanCode/MiniOS/internal/domain/vfs"
	"github.com/GriffinCanCode/MiniOS/internal/events"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/MiniOS/internal/shared/id"
	"github.com/GriffinCanCode/MiniOS/internal/shared/paths"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAlreadyLoggedIn = errors.New("a user is already logged in")
	ErrShutdown        = errors.New("session is shut down")
)

// DefaultHistorySize is the number of commands kept in history
const DefaultHistorySize = 10

// Vital sign bounds and starting values
const (
	minHealth, maxHealth           = 0, 100
	minTemperature, maxTemperature = 20, 80

	initialHealth      = 100
	initialTemperature = 35
)

// State is the session lifecycle state
type State int

const (
	StateActive State = iota
	StateShutdown
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Session aggregates everything a logged-in shell owns. A single mutex
// guards identity, points, vitals, history and state; the filesystem and
// process table guard their own maps and never call back into the session.
type Session struct {
	mu sync.Mutex

	id       id.SessionID
	bootTime time.Time

	user        string
	home        string
	points      int
	health      int
	temperature int
	history     *History
	state       State

	fs    *vfs.FS
	procs *process.Table

	rng *rand.Rand
	now func() time.Time

	logger  *logging.Logger
	metrics *monitoring.Metrics
	events  *events.Broadcaster
}

// Option configures a Session
type Option func(*Session)

// WithRand injects the randomness source used for vitals and processes
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithHistorySize sets the command history capacity
func WithHistorySize(n int) Option {
	return func(s *Session) {
		s.history = NewHistory(n)
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithMetrics attaches a metrics collector
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithEvents attaches an event broadcaster
func WithEvents(b *events.Broadcaster) Option {
	return func(s *Session) {
		s.events = b
	}
}

// New boots a session: a fresh filesystem with the standard layout and an
// empty process table.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		id:          id.NewSessionID(),
		health:      initialHealth,
		temperature: initialTemperature,
		state:       StateActive,
		now:         time.Now,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.history == nil {
		s.history = NewHistory(DefaultHistorySize)
	}
	s.bootTime = s.now()
	s.logger = s.logger.Named("session").With(logging.Session(s.id.String()))

	s.fs = vfs.New(vfs.WithClock(s.now))
	if err := vfs.Bootstrap(s.fs); err != nil {
		return nil, fmt.Errorf("failed to bootstrap filesystem: %w", err)
	}

	// The table draws from its own source so its lock never nests under ours
	s.procs = process.NewTable(
		process.WithRand(rand.New(rand.NewSource(s.rng.Int63()))),
		process.WithClock(s.now),
	)

	if s.metrics != nil {
		s.metrics.SetVitals(s.health, s.temperature)
		s.metrics.SetPoints(0)
	}

	s.logger.Info("Session booted", zap.Int("nodes", s.fs.Len()))
	return s, nil
}

// ID returns the session identifier
func (s *Session) ID() id.SessionID {
	return s.id
}

// BootTime returns when the session started
func (s *Session) BootTime() time.Time {
	return s.bootTime
}

// FS returns the session filesystem
func (s *Session) FS() *vfs.FS {
	return s.fs
}

// Processes returns the session process table
func (s *Session) Processes() *process.Table {
	return s.procs
}

// Events returns the attached broadcaster, which may be nil
func (s *Session) Events() *events.Broadcaster {
	return s.events
}

// Now returns the session clock's current time
func (s *Session) Now() time.Time {
	return s.now()
}

// Login sets the session identity, creates the user's home directory and
// loads the persisted point total. A missing or malformed profile yields
// zero points.
func (s *Session) Login(username string) error {
	if err := paths.ValidateUsername(username); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return ErrShutdown
	}
	if s.user != "" {
		return ErrAlreadyLoggedIn
	}

	home, err := vfs.EnsureHome(s.fs, username)
	if err != nil {
		return fmt.Errorf("failed to prepare home directory: %w", err)
	}

	s.user = username
	s.home = home
	s.points = s.loadProfile(username)

	if s.metrics != nil {
		s.metrics.SetPoints(s.points)
	}
	s.logger.Info("User logged in", logging.User(username), zap.Int("points", s.points))
	return nil
}

// loadProfile reads the persisted total. Caller holds s.mu.
func (s *Session) loadProfile(username string) int {
	data, err := s.fs.Read(paths.ProfilePath(username))
	if err != nil {
		if !errors.Is(err, vfs.ErrNotFound) {
			s.logger.Warn("Unreadable profile, starting from zero", logging.User(username), zap.Error(err))
		}
		return 0
	}

	profile, err := DecodeProfile([]byte(data))
	if err != nil {
		s.logger.Warn("Malformed profile, starting from zero", logging.User(username), zap.Error(err))
		return 0
	}
	return profile.Points
}

// User returns the logged-in username, if any
func (s *Session) User() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.user != ""
}

// Home returns the working directory used to resolve relative paths:
// the user's home when logged in, root otherwise.
func (s *Session) Home() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.home == "" {
		return paths.Root
	}
	return s.home
}

// Resolve canonicalizes a user-supplied path against Home
func (s *Session) Resolve(p string) string {
	return paths.Resolve(s.Home(), p)
}

// Award adds points to the total, saturating at math.MaxInt, and, when a user is logged in, writes the
// profile through before returning. Awards are applied and persisted in
// call order.
func (s *Session) Award(points int, reason string) (int, error) {
	if points < 0 {
		return 0, fmt.Errorf("%w: negative award %d", ErrInvalidArgument, points)
	}

	s.mu.Lock()
	s.points = addPoints(s.points, points)
	total := s.points
	if s.user != "" {
		if err := s.saveProfileLocked(); err != nil {
			s.logger.Error("Failed to persist profile", zap.Error(err))
		}
	}
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordAward(points, total)
	}
	if s.events != nil && points > 0 {
		s.events.Publish(events.Event{
			Type:    events.TypeAward,
			Message: reason,
			Points:  points,
		})
	}
	s.logger.Debug("Points awarded",
		zap.Int("points", points),
		zap.Int("total", total),
		zap.String("reason", reason),
	)
	return total, nil
}

// Points returns the current total
func (s *Session) Points() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points
}

// SaveProfile persists the current total for the logged-in user.
// It is a no-op when nobody is logged in.
func (s *Session) SaveProfile() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == "" {
		return nil
	}
	return s.saveProfileLocked()
}

// saveProfileLocked writes the profile record. Caller holds s.mu.
func (s *Session) saveProfileLocked() error {
	data, err := EncodeProfile(Profile{Points: s.points, LastSave: s.now()})
	if err == nil {
		err = s.fs.Write(paths.ProfilePath(s.user), string(data))
	}
	if s.metrics != nil {
		s.metrics.RecordProfileSave(err)
	}
	if err != nil {
		return fmt.Errorf("failed to save profile for %s: %w", s.user, err)
	}
	return nil
}

// RecordCommand appends a raw command line to the history
func (s *Session) RecordCommand(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Append(raw)
}

// History returns recorded commands oldest first
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries()
}

// UpdateMetrics applies one step of the vitals random walk:
// health moves by [-2,2] within [0,100], temperature by [-1,1] within [20,80].
func (s *Session) UpdateMetrics() {
	s.mu.Lock()
	s.health = clamp(s.health+s.rng.Intn(5)-2, minHealth, maxHealth)
	s.temperature = clamp(s.temperature+s.rng.Intn(3)-1, minTemperature, maxTemperature)
	health, temperature := s.health, s.temperature
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SetVitals(health, temperature)
	}
}

// Vitals returns the simulated health and temperature
func (s *Session) Vitals() (health, temperature int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.health, s.temperature
}

// Spawn starts a simulated process in the session's table
func (s *Session) Spawn(name string, work process.Work) int {
	pid := s.procs.Spawn(name, work)
	if s.metrics != nil {
		s.metrics.IncProcessesSpawned()
		s.metrics.SetProcessesRunning(len(s.procs.ListRunning()))
	}
	s.logger.Debug("Process spawned", logging.PID(pid), zap.String("name", name))
	return pid
}

// Kill terminates a simulated process
func (s *Session) Kill(pid int) error {
	if err := s.procs.Kill(pid); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.SetProcessesRunning(len(s.procs.ListRunning()))
	}
	s.logger.Debug("Process killed", logging.PID(pid))
	return nil
}

// State returns the lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Active reports whether the session still accepts commands
func (s *Session) Active() bool {
	return s.State() == StateActive
}

// Shutdown moves the session to Shutdown, persists the profile and cancels
// all background work without waiting for it. Repeated calls are no-ops.
func (s *Session) Shutdown() error {
	s.mu.Lock()
	if s.state == StateShutdown {
		s.mu.Unlock()
		return nil
	}
	s.state = StateShutdown

	var err error
	if s.user != "" {
		err = s.saveProfileLocked()
	}
	s.mu.Unlock()

	s.procs.Shutdown()

	if s.events != nil {
		s.events.Publish(events.Event{Type: events.TypeShutdown, Message: "Shutting down system"})
	}
	s.logger.Info("Session shut down", zap.Duration("uptime", s.now().Sub(s.bootTime)))
	return err
}

// addPoints sums two non-negative totals without wrapping
func addPoints(total, points int) int {
	if points > math.MaxInt-total {
		return math.MaxInt
	}
	return total + points
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
