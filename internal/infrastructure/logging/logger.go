package logging

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrStdoutReserved is returned when logs are pointed at the terminal the
// shell is drawing on.
var ErrStdoutReserved = errors.New("stdout is reserved for the shell")

// Logger wraps zap.Logger so components can derive scoped children.
type Logger struct {
	*zap.Logger
}

// Config selects the level, the encoding and a single destination.
type Config struct {
	Level       string // debug, info, warn, error
	Development bool
	Output      string // "stderr" or a file path
}

// New builds a logger. Development mode switches to colored console
// output with stack traces on warnings.
func New(cfg Config) (*Logger, error) {
	name := strings.TrimSpace(cfg.Level)
	if name == "" {
		name = "info"
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	switch output {
	case "":
		output = "stderr"
	case "stdout", "/dev/stdout":
		return nil, ErrStdoutReserved
	}

	encoding := "json"
	if cfg.Development {
		encoding = "console"
	}

	zapCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       cfg.Development,
		Encoding:          encoding,
		EncoderConfig:     encoderConfig(cfg.Development),
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !cfg.Development,
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{Logger: logger}, nil
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named returns a child logger scoped to a component
func (l *Logger) Named(component string) *Logger {
	return &Logger{Logger: l.Logger.Named(component)}
}

// With returns a child logger carrying the given fields
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

// Session tags entries with a session ID
func Session(id string) zap.Field { return zap.String("session_id", id) }

// User tags entries with a username
func User(name string) zap.Field { return zap.String("user", name) }

// Command tags entries with a command name
func Command(name string) zap.Field { return zap.String("command", name) }

// PID tags entries with a simulated process ID
func PID(pid int) zap.Field { return zap.Int("pid", pid) }

func encoderConfig(development bool) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if development {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}
