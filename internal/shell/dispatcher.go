package shell

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiniOS/internal/domain/session"
	"github.com/GriffinCanCode/MiniOS/internal/events"
	"github.com/GriffinCanCode/MiniOS/internal/games"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/MiniOS/internal/terminal"
)

// Outcome is the result of executing one line
type Outcome struct {
	Exit   bool
	Points int
	Err    error
}

// reward is what a successful handler earns
type reward struct {
	points int
	reason string
	award  bool
}

type handler func(ctx context.Context, cmd Command) (reward, error)

// Dispatcher routes command lines to handlers for one session
type Dispatcher struct {
	session  *session.Session
	prompter terminal.Prompter
	out      io.Writer
	games    *games.Registry
	rng      *rand.Rand
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	events   *events.Broadcaster
	handlers map[Kind]handler
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithGames sets the game registry
func WithGames(r *games.Registry) Option {
	return func(d *Dispatcher) {
		d.games = r
	}
}

// WithRand injects the randomness used for weather and fortunes
func WithRand(rng *rand.Rand) Option {
	return func(d *Dispatcher) {
		d.rng = rng
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithMetrics attaches a metrics collector
func WithMetrics(m *monitoring.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// NewDispatcher creates a dispatcher bound to a session. Interactive
// input comes from p and all output goes to out.
func NewDispatcher(s *session.Session, p terminal.Prompter, out io.Writer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		session:  s,
		prompter: p,
		out:      out,
		logger:   logging.NewNop(),
		events:   s.Events(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if d.games == nil {
		d.games = games.NewDefaultRegistry(rand.New(rand.NewSource(d.rng.Int63())), s.Now)
	}
	d.logger = d.logger.Named("shell")

	d.handlers = map[Kind]handler{
		KindHelp:    d.help,
		KindInfo:    d.info,
		KindPs:      d.ps,
		KindTop:     d.top,
		KindKill:    d.kill,
		KindLs:      d.ls,
		KindCreate:  d.create,
		KindRead:    d.read,
		KindDelete:  d.delete,
		KindGame:    d.game,
		KindWeather: d.weather,
		KindFortune: d.fortune,
		KindTime:    d.time,
		KindHistory: d.history,
		KindPoints:  d.points,
		KindClear:   d.clear,
		KindExit:    d.exit,
		KindFind:    d.find,
		KindStat:    d.stat,
		KindSpawn:   d.spawn,
		KindExport:  d.export,
	}
	return d
}

// Execute runs one line of input. Blank lines are ignored. Errors are
// rendered to the output and returned in the Outcome; none of them end
// the session.
func (d *Dispatcher) Execute(ctx context.Context, raw string) (outcome Outcome) {
	if strings.TrimSpace(raw) == "" {
		return Outcome{}
	}
	if !d.session.Active() {
		return Outcome{Exit: true, Err: session.ErrShutdown}
	}

	d.session.RecordCommand(raw)
	d.session.UpdateMetrics()

	cmd, err := Parse(raw)
	name := cmd.Name
	if Classify(err) == ErrorUnrecognized {
		// keep user input out of metric labels
		name = "unknown"
	}
	timer := monitoring.NewTimer(d.metrics, name)

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Command panicked",
				logging.Command(name),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			outcome = Outcome{Err: fmt.Errorf("%w: %v", ErrInternal, r)}
		}

		kind := Classify(outcome.Err)
		timer.Stop(kind.String())
		if outcome.Err != nil {
			d.renderError(cmd, outcome.Err)
		}
		d.publish(name, kind, outcome.Points)
	}()

	if err != nil {
		return Outcome{Err: err}
	}

	h, ok := d.handlers[cmd.Kind]
	if !ok {
		return Outcome{Err: fmt.Errorf("%w: %s", ErrUnrecognized, cmd.Name)}
	}

	r, err := h(ctx, cmd)
	if err != nil {
		return Outcome{Err: err}
	}

	outcome = Outcome{Exit: cmd.Kind == KindExit}
	if r.award {
		total, err := d.session.Award(r.points, r.reason)
		if err != nil {
			return Outcome{Err: err}
		}
		outcome.Points = r.points
		fmt.Fprintf(d.out, "🎉 +%d points! %s\n📊 Total points: %d\n", r.points, r.reason, total)
	}
	return outcome
}

// fixed returns the table award of a command
func fixed(cmd Command) reward {
	def := byKind[cmd.Kind]
	if def.award == 0 && def.reason == "" {
		return reward{}
	}
	return reward{points: def.award, reason: def.reason, award: true}
}

func (d *Dispatcher) renderError(cmd Command, err error) {
	switch Classify(err) {
	case ErrorUnrecognized:
		fmt.Fprintf(d.out, "❌ Unknown command: %s\n💡 Type 'help' for available commands\n", cmd.Name)
	case ErrorInternal:
		fmt.Fprintf(d.out, "💥 Error executing command: %v\n", err)
	default:
		fmt.Fprintf(d.out, "❌ %v\n", err)
	}
}

func (d *Dispatcher) publish(name string, kind ErrorKind, points int) {
	if d.events == nil {
		return
	}
	d.events.Publish(events.Event{
		Type:    events.TypeCommand,
		Message: name + ": " + kind.String(),
		Points:  points,
	})
}
