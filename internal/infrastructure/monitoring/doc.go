/*
Package monitoring provides metrics collection for a MiniOS session.

# Overview

This package implements Prometheus-based metrics for the shell: command
throughput and latency, the point economy, simulated vitals, the process
table, broadcast events and the optional status API.

Each Metrics value owns a private registry, so creating more than one
collector in a process (for example in tests) never panics on duplicate
registration.

# Usage

	metrics := monitoring.NewMetrics()

	// Time a command
	timer := monitoring.NewTimer(metrics, "ls")
	// ... run handler ...
	timer.Stop("ok")

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
