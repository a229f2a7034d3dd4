// Package main is the entry point for MiniOS, a simulated operating system
// shell.
//
// MiniOS boots an in-memory filesystem and process table, asks for a login
// and then runs an interactive command loop. Points are earned for using
// the system and persisted per user for the lifetime of the session.
//
// Configuration:
//   - Environment variables (see internal/infrastructure/config)
//   - CLI flags override the environment
//
// Usage:
//
//	# Interactive session
//	./minios
//
//	# Reproducible run with the status API on 127.0.0.1:8077
//	./minios -seed 42 -status
//
//	# Development logging to a file
//	LOG_OUTPUT=/tmp/minios.log ./minios -dev
//
// Signals:
//   - SIGINT: prints a hint; use exit to leave
//   - SIGTERM: saves the profile and exits
package main
