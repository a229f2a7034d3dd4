package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/MiniOS/internal/domain/process"
	"github.com/GriffinCanCode/MiniOS/internal/domain/session"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/monitoring"
)

// Source is the session state the handlers read
type Source interface {
	Snapshot() session.Snapshot
	Processes() *process.Table
}

// Handlers contains the status HTTP handlers
type Handlers struct {
	source  Source
	metrics *monitoring.Metrics
}

// NewHandlers creates the handlers
func NewHandlers(source Source, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		source:  source,
		metrics: metrics,
	}
}

// Health reports liveness and the session state
func (h *Handlers) Health(c *gin.Context) {
	snap := h.source.Snapshot()
	status := "healthy"
	code := http.StatusOK
	if snap.State != session.StateActive.String() {
		status = "shutting_down"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"session_id": snap.ID,
		"uptime":     snap.Uptime.Seconds(),
	})
}

// Status returns the session snapshot
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.source.Snapshot())
}

// Processes lists the process table. ?all=true includes terminated entries.
func (h *Handlers) Processes(c *gin.Context) {
	table := h.source.Processes()

	var entries []process.Entry
	if c.Query("all") == "true" {
		entries = table.List()
	} else {
		entries = table.ListRunning()
	}

	rows := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, gin.H{
			"pid":         e.PID,
			"name":        e.Name,
			"status":      e.Status.String(),
			"started_at":  e.StartedAt,
			"cpu_percent": e.CPUPercent,
			"memory_mb":   e.MemoryMB,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"processes": rows,
		"totals":    table.Totals(),
	})
}

// Metrics serves the Prometheus exposition
func (h *Handlers) Metrics(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// MetricsSummary returns running counters as JSON
func (h *Handlers) MetricsSummary(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"counters":       h.metrics.Snapshot(),
		"uptime_seconds": h.metrics.Uptime().Seconds(),
	})
}
