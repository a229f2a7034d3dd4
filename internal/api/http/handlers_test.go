package http

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/MiniOS/internal/domain/session"
	"github.com/GriffinCanCode/MiniOS/internal/infrastructure/monitoring"
)

func setup(t *testing.T) (*gin.Engine, *session.Session) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetrics()
	s, err := session.New(
		session.WithRand(rand.New(rand.NewSource(1))),
		session.WithMetrics(metrics),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown() })

	h := NewHandlers(s, metrics)
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/status", h.Status)
	router.GET("/processes", h.Processes)
	router.GET("/metrics", h.Metrics)
	router.GET("/metrics/summary", h.MetricsSummary)
	return router, s
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	router, s := setup(t)

	w := get(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, s.ID().String(), body["session_id"])

	require.NoError(t, s.Shutdown())
	assert.Equal(t, http.StatusServiceUnavailable, get(router, "/health").Code)
}

func TestStatus(t *testing.T) {
	router, s := setup(t)
	require.NoError(t, s.Login("guest"))
	_, _ = s.Award(30, "test")

	w := get(router, "/status")
	assert.Equal(t, http.StatusOK, w.Code)

	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "guest", snap.User)
	assert.Equal(t, 30, snap.Points)
	assert.Equal(t, session.RankExplorer, snap.Rank)
	assert.Equal(t, 50, snap.NextMilestone)
}

func TestProcesses(t *testing.T) {
	router, s := setup(t)
	s.Spawn("system_health", nil)
	pid := s.Spawn("worker", nil)
	require.NoError(t, s.Kill(pid))

	var body struct {
		Processes []map[string]any `json:"processes"`
		Totals    map[string]any   `json:"totals"`
	}

	w := get(router, "/processes")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Processes, 1)
	assert.Equal(t, "system_health", body.Processes[0]["name"])
	assert.EqualValues(t, 1, body.Totals["running"])

	w = get(router, "/processes?all=true")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Processes, 2)
	assert.Equal(t, "terminated", body.Processes[1]["status"])
}

func TestMetrics(t *testing.T) {
	router, s := setup(t)
	_, _ = s.Award(3, "test")

	w := get(router, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "minios_session_points")
}

func TestMetricsSummary(t *testing.T) {
	router, s := setup(t)
	_, _ = s.Award(7, "test")
	_, _ = s.Award(3, "test")

	w := get(router, "/metrics/summary")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Counters      monitoring.MetricsSnapshot `json:"counters"`
		UptimeSeconds float64                    `json:"uptime_seconds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(10), body.Counters.PointsAwarded)
	assert.GreaterOrEqual(t, body.UptimeSeconds, 0.0)
}
