package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/MiniOS/internal/cli"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/logging"
)

func main() {
	dev := flag.Bool("dev", false, "Development logging (console encoder, debug level)")
	status := flag.Bool("status", false, "Serve the read-only status API")
	seed := flag.Int64("seed", 0, "Random seed (0 uses the clock)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	if *status {
		cfg.Status.Enabled = true
	}
	if *seed != 0 {
		cfg.Session.RandomSeed = *seed
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		Output:      cfg.Logging.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		logger = logging.NewNop()
	}
	defer logger.Sync()

	sh, err := cli.New(cfg, os.Stdin, os.Stdout, logger)
	if err != nil {
		logger.Error("Failed to boot", zap.Error(err))
		fmt.Fprintf(os.Stderr, "💥 Fatal system error: %v\n", err)
		os.Exit(1)
	}

	// Ctrl+C does not end the session; exit does
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	go func() {
		for range interrupts {
			fmt.Fprintln(os.Stdout, "\n\n💡 Use 'exit' command to shutdown the system")
		}
	}()

	terminate := make(chan os.Signal, 1)
	signal.Notify(terminate, syscall.SIGTERM)
	go func() {
		<-terminate
		logger.Info("Terminated, shutting down")
		_ = sh.Close()
		_ = logger.Sync()
		os.Exit(0)
	}()

	if err := sh.Run(context.Background()); err != nil {
		if errors.Is(err, cli.ErrLocked) {
			os.Exit(2)
		}
		logger.Error("Session failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "💥 Fatal system error: %v\n", err)
		os.Exit(1)
	}
}
