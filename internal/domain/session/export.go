package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format is an export serialization
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat parses a format name; the empty string means JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", ErrInvalidArgument, name)
	}
}

// Report is the exported session summary
type Report struct {
	SessionID     string          `json:"session_id" yaml:"session_id" toml:"session_id"`
	User          string          `json:"user" yaml:"user" toml:"user"`
	Points        int             `json:"points" yaml:"points" toml:"points"`
	Rank          string          `json:"rank" yaml:"rank" toml:"rank"`
	NextMilestone int             `json:"next_milestone" yaml:"next_milestone" toml:"next_milestone"`
	Health        int             `json:"health" yaml:"health" toml:"health"`
	Temperature   int             `json:"temperature" yaml:"temperature" toml:"temperature"`
	BootTime      time.Time       `json:"boot_time" yaml:"boot_time" toml:"boot_time"`
	Uptime        string          `json:"uptime" yaml:"uptime" toml:"uptime"`
	History       []string        `json:"history" yaml:"history" toml:"history"`
	Processes     []ReportProcess `json:"processes" yaml:"processes" toml:"processes"`
}

// ReportProcess is one process table row in a report
type ReportProcess struct {
	PID        int    `json:"pid" yaml:"pid" toml:"pid"`
	Name       string `json:"name" yaml:"name" toml:"name"`
	Status     string `json:"status" yaml:"status" toml:"status"`
	CPUPercent int    `json:"cpu_percent" yaml:"cpu_percent" toml:"cpu_percent"`
	MemoryMB   int    `json:"memory_mb" yaml:"memory_mb" toml:"memory_mb"`
}

// Report builds the export summary, including terminated processes
func (s *Session) Report() Report {
	snap := s.Snapshot()

	report := Report{
		SessionID:     snap.ID,
		User:          snap.User,
		Points:        snap.Points,
		Rank:          snap.Rank,
		NextMilestone: snap.NextMilestone,
		Health:        snap.Health,
		Temperature:   snap.Temperature,
		BootTime:      snap.BootTime,
		Uptime:        snap.Uptime.Truncate(time.Second).String(),
		History:       s.History(),
		Processes:     make([]ReportProcess, 0),
	}
	for _, e := range s.procs.List() {
		report.Processes = append(report.Processes, ReportProcess{
			PID:        e.PID,
			Name:       e.Name,
			Status:     e.Status.String(),
			CPUPercent: e.CPUPercent,
			MemoryMB:   e.MemoryMB,
		})
	}
	return report
}

// Export serializes the session report
func (s *Session) Export(format Format) ([]byte, error) {
	report := s.Report()

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = sonic.MarshalIndent(report, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(report)
	case FormatTOML:
		data, err = toml.Marshal(report)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", ErrInvalidArgument, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", format, err)
	}
	return data, nil
}
