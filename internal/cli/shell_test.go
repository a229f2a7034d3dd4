package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GriffinCanCode/MiniOS/internal/auth"
	"github.com/GriffinCanCode/MiniOS/internal/domain/monitor"
	"github.com/GriffinCanCode/MiniOS/internal/domain/process"
	"github.com/GriffinCanCode/MiniOS/internal/domain/session"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/MiniOS/internal/shared/paths"
)

func newTestShell(t *testing.T, input string, tweaks ...func(*config.Config)) (*Shell, *bytes.Buffer) {
	t.Helper()

	directory, err := auth.NewDefault(auth.WithCost(bcrypt.MinCost))
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Session.RandomSeed = 42
	cfg.Monitor.Interval = time.Hour
	for _, tweak := range tweaks {
		tweak(cfg)
	}

	out := &bytes.Buffer{}
	sh, err := New(cfg, strings.NewReader(input), out, nil, WithDirectory(directory))
	require.NoError(t, err)
	return sh, out
}

func TestRunSessionToExit(t *testing.T) {
	sh, out := newTestShell(t, "guest\nguest\nhelp\nls /home\nexit\nls\n")

	require.NoError(t, sh.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "MINI OPERATING SYSTEM")
	assert.Contains(t, text, "📊 Your current points: 0")
	assert.Contains(t, text, "guest@MiniOS[0pts]$ ")
	assert.Contains(t, text, "guest@MiniOS[1pts]$ ")
	assert.Contains(t, text, "👋 Goodbye!")
	assert.Contains(t, text, "🛑 System shutdown complete.")

	s := sh.Session()
	assert.Equal(t, session.StateShutdown, s.State())
	assert.Equal(t, 2, s.Points())
	assert.Equal(t, []string{"help", "ls /home", "exit"}, s.History())

	data, err := s.FS().Read(paths.ProfilePath("guest"))
	require.NoError(t, err)
	profile, err := session.DecodeProfile([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 2, profile.Points)
}

func TestMonitorRunsAsFirstProcess(t *testing.T) {
	sh, _ := newTestShell(t, "admin\nadmin123\n")

	require.NoError(t, sh.Run(context.Background()))

	entry, err := sh.Session().Processes().Get(1)
	require.NoError(t, err)
	assert.Equal(t, monitor.ProcessName, entry.Name)
	// Entries keep their status after shutdown
	assert.Equal(t, process.StatusRunning, entry.Status)
}

func TestEndOfInputShutsDown(t *testing.T) {
	sh, out := newTestShell(t, "user\nuser123\nweather\n")

	require.NoError(t, sh.Run(context.Background()))

	assert.False(t, sh.Session().Active())
	assert.Contains(t, out.String(), "👋 Goodbye!")
	assert.Equal(t, 2, sh.Session().Points())
	assert.True(t, sh.Session().FS().Exists(paths.ProfilePath("user")))
}

func TestLoginRetries(t *testing.T) {
	sh, out := newTestShell(t, "guest\nwrong\nguest\nguest\nexit\n")

	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "❌ Login failed! 2 attempts remaining.")
	user, ok := sh.Session().User()
	assert.True(t, ok)
	assert.Equal(t, "guest", user)
}

func TestLoginLocks(t *testing.T) {
	sh, out := newTestShell(t, "a\nb\nc\nd\ne\nf\n")

	err := sh.Run(context.Background())
	assert.ErrorIs(t, err, ErrLocked)
	assert.Contains(t, out.String(), "System locked")
	assert.False(t, sh.Session().Active())

	_, ok := sh.Session().User()
	assert.False(t, ok)
}

func TestEndOfInputDuringLogin(t *testing.T) {
	sh, _ := newTestShell(t, "guest\n")

	assert.NoError(t, sh.Run(context.Background()))
	assert.False(t, sh.Session().Active())
}

func TestCloseIsIdempotent(t *testing.T) {
	sh, out := newTestShell(t, "")

	assert.NoError(t, sh.Close())
	assert.NoError(t, sh.Close())
	assert.Equal(t, 1, strings.Count(out.String(), "System shutdown complete"))
}

func TestLargeCommandLineKeepsSession(t *testing.T) {
	long := "ls " + strings.Repeat("a", 70*1024)
	sh, out := newTestShell(t, "guest\nguest\n"+long+"\ntime\nexit\n")

	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "🕒 Current time")
	assert.Equal(t, []string{long, "time", "exit"}, sh.Session().History())
	assert.Equal(t, 1, sh.Session().Points())
}

func TestLargeFileContent(t *testing.T) {
	content := strings.Repeat("b", 70*1024)
	sh, _ := newTestShell(t, "guest\nguest\ncreate big.txt\n"+content+"\ntime\nexit\n")

	require.NoError(t, sh.Run(context.Background()))

	data, err := sh.Session().FS().Read("/home/guest/big.txt")
	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, 4, sh.Session().Points())
}

func limitLines(n int) func(*config.Config) {
	return func(cfg *config.Config) {
		cfg.Session.MaxLineBytes = n
	}
}

func TestOversizedCommandLineIsDiscarded(t *testing.T) {
	long := "ls " + strings.Repeat("a", 200)
	sh, out := newTestShell(t, "guest\nguest\n"+long+"\ntime\nexit\n", limitLines(64))

	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "input line too long")
	assert.Contains(t, out.String(), "🕒 Current time")
	assert.Equal(t, []string{"time", "exit"}, sh.Session().History())
	assert.Equal(t, 1, sh.Session().Points())
}

func TestOversizedFileContentFailsCommandOnly(t *testing.T) {
	content := strings.Repeat("b", 200)
	sh, out := newTestShell(t, "guest\nguest\ncreate big.txt\n"+content+"\ntime\nexit\n", limitLines(64))

	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "input line too long")
	assert.False(t, sh.Session().FS().Exists("/home/guest/big.txt"))
	assert.Equal(t, []string{"create big.txt", "time", "exit"}, sh.Session().History())
	assert.Equal(t, 1, sh.Session().Points())
}

func TestOversizedLoginCostsAnAttempt(t *testing.T) {
	long := strings.Repeat("u", 200)
	sh, out := newTestShell(t, long+"\nx\nguest\nguest\nexit\n", limitLines(64))

	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "❌ Login failed! 2 attempts remaining.")
	user, ok := sh.Session().User()
	assert.True(t, ok)
	assert.Equal(t, "guest", user)
}
