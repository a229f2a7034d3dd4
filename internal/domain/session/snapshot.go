package session

import (
	"time"

	"github.com/GriffinCanCode/MiniOS/internal/domain/process"
)

// Snapshot is a consistent read of the session for display and the
// status API.
type Snapshot struct {
	ID            string         `json:"id"`
	User          string         `json:"user,omitempty"`
	State         string         `json:"state"`
	Points        int            `json:"points"`
	Rank          string         `json:"rank"`
	NextMilestone int            `json:"next_milestone"`
	Health        int            `json:"health"`
	Temperature   int            `json:"temperature"`
	BootTime      time.Time      `json:"boot_time"`
	Uptime        time.Duration  `json:"uptime"`
	Processes     process.Totals `json:"processes"`
	HistorySize   int            `json:"history_size"`
}

// Snapshot captures the current session state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		ID:            s.id.String(),
		User:          s.user,
		State:         s.state.String(),
		Points:        s.points,
		Rank:          Rank(s.points),
		NextMilestone: NextMilestone(s.points),
		Health:        s.health,
		Temperature:   s.temperature,
		BootTime:      s.bootTime,
		Uptime:        s.now().Sub(s.bootTime),
		HistorySize:   s.history.Len(),
	}
	s.mu.Unlock()

	snap.Processes = s.procs.Totals()
	return snap
}
