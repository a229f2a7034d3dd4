package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiniOS/internal/auth"
	"github.com/GriffinCanCode/MiniOS/internal/domain/monitor"
	"github.com/GriffinCanCode/MiniOS/internal/domain/session"
	"github.com/GriffinCanCode/MiniOS/internal/events"
	"github.com/GriffinCanCode/MiniOS/internal/games"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/server"
	"github.com/GriffinCanCode/MiniOS/internal/shell"
	"github.com/GriffinCanCode/MiniOS/internal/terminal"
)

// ErrLocked is returned after too many failed logins
var ErrLocked = errors.New("too many failed login attempts")

const eventBuffer = 64

// Shell is one interactive MiniOS run
type Shell struct {
	cfg         *config.Config
	console     *terminal.Console
	logger      *logging.Logger
	metrics     *monitoring.Metrics
	broadcaster *events.Broadcaster
	session     *session.Session
	directory   *auth.Directory
	dispatcher  *shell.Dispatcher
	rng         *rand.Rand

	mu     sync.Mutex
	status *server.Server

	closeOnce sync.Once
	done      chan struct{}
}

// Option configures a Shell
type Option func(*Shell)

// WithDirectory replaces the built-in user directory
func WithDirectory(d *auth.Directory) Option {
	return func(s *Shell) {
		s.directory = d
	}
}

// New boots a session reading from in and writing to out
func New(cfg *config.Config, in io.Reader, out io.Writer, logger *logging.Logger, opts ...Option) (*Shell, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	seed := cfg.Session.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	metrics := monitoring.NewMetrics()
	broadcaster := events.NewBroadcaster(eventBuffer).WithRecorder(metrics)

	s := &Shell{
		cfg:         cfg,
		console:     terminal.NewConsole(in, out, terminal.WithMaxLineBytes(cfg.Session.MaxLineBytes)),
		logger:      logger,
		metrics:     metrics,
		broadcaster: broadcaster,
		rng:         rng,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.directory == nil {
		d, err := auth.NewDefault()
		if err != nil {
			return nil, fmt.Errorf("failed to build user directory: %w", err)
		}
		s.directory = d
	}

	sess, err := session.New(
		session.WithRand(rand.New(rand.NewSource(rng.Int63()))),
		session.WithHistorySize(cfg.Session.HistorySize),
		session.WithLogger(logger),
		session.WithMetrics(metrics),
		session.WithEvents(broadcaster),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to boot session: %w", err)
	}
	s.session = sess

	s.dispatcher = shell.NewDispatcher(sess, s.console, s.console,
		shell.WithRand(rand.New(rand.NewSource(rng.Int63()))),
		shell.WithGames(games.NewDefaultRegistry(rand.New(rand.NewSource(rng.Int63())), sess.Now)),
		shell.WithLogger(logger),
		shell.WithMetrics(metrics),
	)
	return s, nil
}

// Session returns the underlying session
func (s *Shell) Session() *session.Session {
	return s.session
}

// Run shows the banner, logs in and runs the command loop. End of input
// shuts the session down the same way exit does.
func (s *Shell) Run(ctx context.Context) error {
	defer s.Close()

	s.banner()
	if err := s.login(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	sub := s.broadcaster.Subscribe()
	go s.notify(sub)

	mon := monitor.New(s.session, s.broadcaster,
		monitor.WithInterval(s.cfg.Monitor.Interval),
		monitor.WithProbability(s.cfg.Monitor.Probability),
		monitor.WithRand(rand.New(rand.NewSource(s.rng.Int63()))),
		monitor.WithLogger(s.logger),
	)
	pid := s.session.Spawn(monitor.ProcessName, mon.Run)
	fmt.Fprintf(s.console, "🔄 Process '%s' (PID: %d) started\n", monitor.ProcessName, pid)

	if s.cfg.Status.Enabled {
		s.startStatus()
	}

	fmt.Fprintln(s.console, "\n💡 Type 'help' for available commands")
	fmt.Fprintln(s.console, "🎮 Try 'game' to play some games!")
	fmt.Fprintln(s.console, "🏆 Earn points by using the system!")

	return s.loop(ctx)
}

// startStatus runs the status API. Failure to bind is not fatal.
func (s *Shell) startStatus() {
	srv := server.NewServer(s.cfg, s.session, s.broadcaster, s.metrics, s.logger)
	if err := srv.Start(); err != nil {
		s.logger.Warn("Status server unavailable", zap.Error(err))
		return
	}
	s.mu.Lock()
	s.status = srv
	s.mu.Unlock()
	fmt.Fprintf(s.console, "📡 Status API on http://%s\n", srv.Addr())
}

func (s *Shell) loop(ctx context.Context) error {
	user, _ := s.session.User()
	for {
		if ctx.Err() != nil || !s.session.Active() {
			return nil
		}

		line, err := s.console.Prompt(fmt.Sprintf("\n%s@MiniOS[%dpts]$ ", user, s.session.Points()))
		if errors.Is(err, terminal.ErrLineTooLong) {
			s.logger.Warn("Discarded oversized input line", zap.Error(err))
			fmt.Fprintf(s.console, "❌ %v\n", err)
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Error("Input failed", zap.Error(err))
			}
			fmt.Fprintln(s.console, "\n\n👋 Goodbye!")
			return nil
		}

		if out := s.dispatcher.Execute(ctx, strings.TrimSpace(line)); out.Exit {
			return nil
		}
	}
}

func (s *Shell) banner() {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(s.console, "%s\n    MINI OPERATING SYSTEM\n        Version 2.0\n%s\n", rule, rule)
	fmt.Fprintln(s.console, "Initializing file system...")
	fmt.Fprintln(s.console, "Starting system services...")
	fmt.Fprintln(s.console, "Loading user interface...")
	fmt.Fprint(s.console, logo)
	fmt.Fprintln(s.console, "System ready!")
}

const logo = `
   __  __ _       _    _____   _____
  |  \/  (_)     (_)  / ____| / ____|
  | \  / |_ _ __  _  | (___  | (___
  | |\/| | | '_ \| |  \___ \  \___ \
  | |  | | | | | | |  ____) | ____) |
  |_|  |_|_|_| |_|_| |_____/ |_____/

`

var welcomes = []string{
	"🌟 Welcome back, %s!",
	"🚀 Great to see you, %s!",
	"🎯 Ready for adventure, %s?",
	"💫 Hello %s, let's explore!",
}

// login allows auth.MaxAttempts tries before locking
func (s *Shell) login() error {
	fmt.Fprintln(s.console, "🚀 Login to MiniOS 2.0")

	for remaining := auth.MaxAttempts; remaining > 0; {
		username, err := s.prompt("Username: ")
		if err != nil {
			return err
		}
		password, err := s.prompt("Password: ")
		if err != nil {
			return err
		}
		username = strings.TrimSpace(username)
		password = strings.TrimSpace(password)

		if err := s.directory.Verify(username, password); err == nil {
			if err := s.session.Login(username); err != nil {
				return fmt.Errorf("failed to start session for %s: %w", username, err)
			}
			fmt.Fprintf(s.console, welcomes[s.rng.Intn(len(welcomes))]+"\n", username)
			fmt.Fprintf(s.console, "📊 Your current points: %d\n", s.session.Points())
			return nil
		}

		remaining--
		s.logger.Warn("Login failed", logging.User(username), zap.Int("remaining", remaining))
		if remaining > 0 {
			fmt.Fprintf(s.console, "❌ Login failed! %d attempts remaining.\n", remaining)
		}
	}

	fmt.Fprintln(s.console, "💀 Too many failed attempts. System locked.")
	return ErrLocked
}

// prompt reads a login field. An oversized line reads as empty, which
// fails verification and costs an attempt.
func (s *Shell) prompt(label string) (string, error) {
	line, err := s.console.Prompt(label)
	if errors.Is(err, terminal.ErrLineTooLong) {
		return "", nil
	}
	return line, err
}

// notify prints monitor notifications until the subscription closes
func (s *Shell) notify(sub chan events.Event) {
	defer s.broadcaster.Unsubscribe(sub)
	for {
		select {
		case ev, ok := <-sub:
			if !ok {
				return
			}
			if ev.Type == events.TypeNotification {
				s.console.Notify("System", ev.Message)
			}
		case <-s.done:
			return
		}
	}
}

// Close shuts down the session and the status server. Safe to call more
// than once and from a signal handler.
func (s *Shell) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.session.Shutdown()

		s.mu.Lock()
		srv := s.status
		s.mu.Unlock()
		if srv != nil {
			if cerr := srv.Close(); cerr != nil {
				s.logger.Warn("Status server shutdown failed", zap.Error(cerr))
			}
		}
		fmt.Fprintln(s.console, "🛑 System shutdown complete.")
	})
	return err
}
