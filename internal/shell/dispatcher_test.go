package shell

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/MiniOS/internal/domain/session"
	"github.com/GriffinCanCode/MiniOS/internal/events"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/MiniOS/internal/shared/paths"
	"github.com/GriffinCanCode/MiniOS/internal/terminal"
)

type fixture struct {
	session *session.Session
	script  *terminal.Script
	out     *bytes.Buffer
	d       *Dispatcher
	events  chan events.Event
}

func newFixture(t *testing.T, answers ...string) *fixture {
	t.Helper()

	broadcaster := events.NewBroadcaster(256)
	sub := broadcaster.Subscribe()

	s, err := session.New(
		session.WithRand(rand.New(rand.NewSource(11))),
		session.WithEvents(broadcaster),
	)
	require.NoError(t, err)
	require.NoError(t, s.Login("guest"))
	t.Cleanup(func() { _ = s.Shutdown() })

	script := terminal.NewScript(answers...)
	out := &bytes.Buffer{}
	d := NewDispatcher(s, script, out,
		WithRand(rand.New(rand.NewSource(12))),
		WithMetrics(monitoring.NewMetrics()),
	)
	return &fixture{session: s, script: script, out: out, d: d, events: sub}
}

func (f *fixture) run(t *testing.T, line string) Outcome {
	t.Helper()
	return f.d.Execute(context.Background(), line)
}

func TestEmptyLineIgnored(t *testing.T) {
	f := newFixture(t)
	health, temp := f.session.Vitals()

	for _, line := range []string{"", "   ", "\t"} {
		out := f.run(t, line)
		assert.NoError(t, out.Err)
		assert.False(t, out.Exit)
	}

	assert.Empty(t, f.session.History())
	h, tp := f.session.Vitals()
	assert.Equal(t, health, h)
	assert.Equal(t, temp, tp)
	assert.Empty(t, f.out.String())
	assert.Len(t, f.events, 0)
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "frobnicate now")
	assert.ErrorIs(t, out.Err, ErrUnrecognized)
	assert.Equal(t, ErrorUnrecognized, Classify(out.Err))
	assert.Zero(t, f.session.Points())
	assert.Equal(t, []string{"frobnicate now"}, f.session.History())
	assert.Contains(t, f.out.String(), "Unknown command: frobnicate")
}

func TestCommandsAreCaseInsensitive(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "LS /")
	require.NoError(t, out.Err)
	assert.Equal(t, 1, out.Points)
}

func TestFixedAwards(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"help", 1},
		{"info", 1},
		{"ps", 2},
		{"top", 2},
		{"ls", 1},
		{"ls /system", 1},
		{"read /system/readme.txt", 1},
		{"weather", 2},
		{"fortune", 1},
		{"time", 1},
		{"history", 1},
		{"clear", 1},
		{"points", 0},
		{"find **/*.txt", 1},
		{"stat /system/readme.txt", 1},
		{"spawn worker", 2},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			f := newFixture(t)

			out := f.run(t, tt.line)
			require.NoError(t, out.Err)
			assert.Equal(t, tt.want, out.Points)
			assert.Equal(t, tt.want, f.session.Points())
		})
	}
}

func TestPointsSumAcrossCommands(t *testing.T) {
	f := newFixture(t)

	for _, line := range []string{"help", "ps", "ls", "weather", "points", "bogus"} {
		f.run(t, line)
	}
	assert.Equal(t, 6, f.session.Points())
}

func TestCreateReadDelete(t *testing.T) {
	f := newFixture(t, "hello world", "again")

	out := f.run(t, "create notes.txt")
	require.NoError(t, out.Err)
	assert.Equal(t, 3, out.Points)
	assert.Equal(t, []string{"Enter file content: "}, f.script.Prompts())

	content, err := f.session.FS().Read("/home/guest/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", content)

	out = f.run(t, "create /home/guest/notes.txt")
	assert.Equal(t, ErrorAlreadyExists, Classify(out.Err))
	assert.Equal(t, 1, f.script.Remaining(), "no prompt for an existing file")

	out = f.run(t, "read notes.txt")
	require.NoError(t, out.Err)
	assert.Contains(t, f.out.String(), "hello world")

	out = f.run(t, "delete notes.txt")
	require.NoError(t, out.Err)
	assert.Equal(t, 2, out.Points)
	assert.False(t, f.session.FS().Exists("/home/guest/notes.txt"))

	assert.Equal(t, 3+1+2, f.session.Points())
}

func TestFileErrors(t *testing.T) {
	f := newFixture(t, "x")

	tests := []struct {
		line string
		want ErrorKind
	}{
		{"read /nope", ErrorNotFound},
		{"read /system", ErrorWrongKind},
		{"delete /home", ErrorWrongKind},
		{"delete /missing.txt", ErrorNotFound},
		{"ls /system/readme.txt", ErrorWrongKind},
		{"ls /nowhere", ErrorNotFound},
		{"create /nowhere/file.txt", ErrorNotFound},
		{"stat /nowhere", ErrorNotFound},
		{"find [", ErrorInvalidArgument},
	}

	for _, tt := range tests {
		out := f.run(t, tt.line)
		assert.Equal(t, tt.want, Classify(out.Err), tt.line)
		assert.Zero(t, out.Points, tt.line)
	}
	assert.Zero(t, f.session.Points())
}

func TestArity(t *testing.T) {
	f := newFixture(t)

	for _, line := range []string{"read", "kill", "create", "delete", "ls a b", "spawn", "export", "export a json extra"} {
		out := f.run(t, line)
		assert.ErrorIs(t, out.Err, ErrInvalidArgument, line)
	}
	assert.Zero(t, f.session.Points())
	assert.Len(t, f.session.History(), 8)
}

func TestMetricsUpdateOnEveryCommand(t *testing.T) {
	f := newFixture(t)

	reference, err := session.New(session.WithRand(rand.New(rand.NewSource(11))))
	require.NoError(t, err)
	t.Cleanup(func() { _ = reference.Shutdown() })

	// Failing commands walk the vitals exactly once each
	for _, line := range []string{"bogus", "read", "ls /nowhere", "points", "", "help"} {
		f.run(t, line)
		if line != "" {
			reference.UpdateMetrics()
		}
	}

	gotHealth, gotTemp := f.session.Vitals()
	wantHealth, wantTemp := reference.Vitals()
	assert.Equal(t, wantHealth, gotHealth)
	assert.Equal(t, wantTemp, gotTemp)
}

func TestKill(t *testing.T) {
	f := newFixture(t)
	f.run(t, "spawn worker")

	out := f.run(t, "kill 1")
	require.NoError(t, out.Err)
	assert.Equal(t, 3, out.Points)
	assert.Empty(t, f.session.Processes().ListRunning())

	// Killing again is still a success
	out = f.run(t, "kill 1")
	assert.NoError(t, out.Err)

	for _, line := range []string{"kill 99", "kill 0", "kill -3"} {
		out = f.run(t, line)
		assert.Equal(t, ErrorNotFound, Classify(out.Err), line)
		assert.Zero(t, out.Points, line)
	}

	out = f.run(t, "kill abc")
	assert.Equal(t, ErrorInvalidArgument, Classify(out.Err))
	assert.Contains(t, f.out.String(), "invalid PID")
}

func TestTopResamples(t *testing.T) {
	f := newFixture(t)
	f.run(t, "spawn a")
	f.run(t, "spawn b")

	out := f.run(t, "top")
	require.NoError(t, out.Err)
	for _, e := range f.session.Processes().ListRunning() {
		assert.GreaterOrEqual(t, e.CPUPercent, 1)
		assert.LessOrEqual(t, e.CPUPercent, 15)
		assert.GreaterOrEqual(t, e.MemoryMB, 5)
		assert.LessOrEqual(t, e.MemoryMB, 50)
	}
	assert.Contains(t, f.out.String(), "CPU mean")
}

func TestGameByName(t *testing.T) {
	f := newFixture(t, "B", "B", "A")

	out := f.run(t, "game trivia")
	require.NoError(t, out.Err)
	assert.Equal(t, 45, out.Points)
	assert.Equal(t, 45, f.session.Points())
}

func TestGameFromMenu(t *testing.T) {
	f := newFixture(t, "4", "A", "A", "A")

	out := f.run(t, "game")
	require.NoError(t, out.Err)
	assert.Equal(t, 15, out.Points)
	assert.Contains(t, f.out.String(), "Available Games")
}

func TestGameUnknown(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "game chess")
	assert.Equal(t, ErrorInvalidArgument, Classify(out.Err))
	assert.Zero(t, f.session.Points())
}

func TestGameAbortedOnInputEnd(t *testing.T) {
	f := newFixture(t, "B")

	out := f.run(t, "game trivia")
	assert.Error(t, out.Err)
	assert.Zero(t, f.session.Points())
}

func TestPanicIsContained(t *testing.T) {
	f := newFixture(t)
	f.d.handlers[KindFortune] = func(context.Context, Command) (reward, error) {
		panic("boom")
	}

	out := f.run(t, "fortune")
	assert.ErrorIs(t, out.Err, ErrInternal)
	assert.Equal(t, ErrorInternal, Classify(out.Err))
	assert.Contains(t, f.out.String(), "boom")

	// Session still usable
	out = f.run(t, "ls")
	assert.NoError(t, out.Err)
	assert.True(t, f.session.Active())
}

func TestExit(t *testing.T) {
	f := newFixture(t)
	f.run(t, "help")

	out := f.run(t, "exit")
	require.NoError(t, out.Err)
	assert.True(t, out.Exit)
	assert.False(t, f.session.Active())
	assert.True(t, f.session.FS().Exists(paths.ProfilePath("guest")))
	assert.Contains(t, f.out.String(), "Goodbye")

	out = f.run(t, "ls")
	assert.True(t, out.Exit)
	assert.ErrorIs(t, out.Err, session.ErrShutdown)
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	f.run(t, "help")

	out := f.run(t, "export report.yaml yaml")
	require.NoError(t, out.Err)
	assert.Equal(t, 3, out.Points)

	data, err := f.session.FS().Read("/home/guest/report.yaml")
	require.NoError(t, err)
	assert.Contains(t, data, "user: guest")

	out = f.run(t, "export report.json")
	require.NoError(t, out.Err)
	data, err = f.session.FS().Read("/home/guest/report.json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(data, "{"))

	out = f.run(t, "export report.xml xml")
	assert.Equal(t, ErrorInvalidArgument, Classify(out.Err))

	out = f.run(t, "export /home toml")
	assert.Equal(t, ErrorWrongKind, Classify(out.Err))
}

func TestFind(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "find /system/*.txt")
	require.NoError(t, out.Err)
	assert.Contains(t, f.out.String(), paths.Readme)
	assert.Contains(t, f.out.String(), paths.Motd)
}

func TestHistoryCommand(t *testing.T) {
	f := newFixture(t)
	f.run(t, "ls")
	f.run(t, "history")

	assert.Contains(t, f.out.String(), " 1: ls")
	assert.Contains(t, f.out.String(), " 2: history")
}

func TestCommandEvents(t *testing.T) {
	f := newFixture(t)
	f.run(t, "ls")

	var command *events.Event
	for len(f.events) > 0 {
		ev := <-f.events
		if ev.Type == events.TypeCommand {
			command = &ev
		}
	}
	require.NotNil(t, command)
	assert.Equal(t, "ls: ok", command.Message)
	assert.Equal(t, 1, command.Points)
}
