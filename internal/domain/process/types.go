package process

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("process not found")

// Status is the lifecycle state of a process entry
type Status int

const (
	StatusRunning Status = iota
	StatusTerminated
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Work is the body of a simulated process. It runs in its own goroutine and
// should return once ctx is done.
type Work func(ctx context.Context)

// Entry is a snapshot of one process table row
type Entry struct {
	PID        int       `json:"pid"`
	Name       string    `json:"name"`
	Status     Status    `json:"status"`
	StartedAt  time.Time `json:"started_at"`
	CPUPercent int       `json:"cpu_percent"`
	MemoryMB   int       `json:"memory_mb"`
}

// Uptime returns how long the process has existed
func (e Entry) Uptime(now time.Time) time.Duration {
	return now.Sub(e.StartedAt)
}

// Totals aggregates running processes
type Totals struct {
	Running   int     `json:"running"`
	CPU       int     `json:"cpu_percent"`
	MemoryMB  int     `json:"memory_mb"`
	CPUMean   float64 `json:"cpu_mean"`
	CPUStdDev float64 `json:"cpu_stddev"`
}

// process is the mutable table row
type process struct {
	Entry
	cancel context.CancelFunc
}
