// Package config provides 12-factor configuration management for MiniOS.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - Session: history capacity, randomness seed and input line limit
//   - Monitor: background monitor period and notification probability
//   - Logging: log level, format and output path
//   - Status: optional read-only status server
//   - RateLimit: status server rate limiting
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//
// Environment Variables:
//   - HISTORY_SIZE, RANDOM_SEED, MAX_LINE_BYTES
//   - MONITOR_INTERVAL, MONITOR_PROBABILITY
//   - LOG_LEVEL, LOG_DEV, LOG_OUTPUT
//   - STATUS_ENABLED, STATUS_HOST, STATUS_PORT
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
