package process

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable() *Table {
	return NewTable(WithRand(rand.New(rand.NewSource(1))))
}

func idle(ctx context.Context) { <-ctx.Done() }

func TestSpawnAllocatesMonotonicPIDs(t *testing.T) {
	table := newTestTable()
	defer table.Shutdown()

	assert.Equal(t, 1, table.Spawn("x", idle))
	assert.Equal(t, 2, table.Spawn("y", idle))

	require.NoError(t, table.Kill(1))
	assert.Equal(t, 3, table.Spawn("z", idle))
}

func TestSpawnInitialMetricRanges(t *testing.T) {
	table := newTestTable()
	defer table.Shutdown()

	for i := 0; i < 200; i++ {
		table.Spawn("p", nil)
	}

	for _, e := range table.List() {
		assert.Equal(t, StatusRunning, e.Status)
		assert.GreaterOrEqual(t, e.CPUPercent, 1)
		assert.LessOrEqual(t, e.CPUPercent, 10)
		assert.GreaterOrEqual(t, e.MemoryMB, 10)
		assert.LessOrEqual(t, e.MemoryMB, 100)
	}
}

func TestKillExcludesFromRunning(t *testing.T) {
	table := newTestTable()
	defer table.Shutdown()

	table.Spawn("x", idle)
	table.Spawn("y", idle)

	require.NoError(t, table.Kill(1))

	running := table.ListRunning()
	require.Len(t, running, 1)
	assert.Equal(t, 2, running[0].PID)

	all := table.List()
	require.Len(t, all, 2)
	assert.Equal(t, StatusTerminated, all[0].Status)
}

func TestKillIsIdempotent(t *testing.T) {
	table := newTestTable()
	defer table.Shutdown()

	pid := table.Spawn("x", idle)
	require.NoError(t, table.Kill(pid))
	assert.NoError(t, table.Kill(pid))

	e, err := table.Get(pid)
	require.NoError(t, err)
	assert.Equal(t, StatusTerminated, e.Status)
}

func TestKillUnknown(t *testing.T) {
	table := newTestTable()

	assert.ErrorIs(t, table.Kill(42), ErrNotFound)
	assert.ErrorIs(t, table.Kill(0), ErrNotFound)
	assert.ErrorIs(t, table.Kill(-3), ErrNotFound)
	_, err := table.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKillCancelsWork(t *testing.T) {
	table := newTestTable()
	defer table.Shutdown()

	done := make(chan struct{})
	pid := table.Spawn("worker", func(ctx context.Context) {
		<-ctx.Done()
		close(done)
	})

	require.NoError(t, table.Kill(pid))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("work context was not cancelled by Kill")
	}
}

func TestShutdownCancelsAllWork(t *testing.T) {
	table := newTestTable()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		table.Spawn("worker", func(ctx context.Context) {
			defer wg.Done()
			<-ctx.Done()
		})
	}

	table.Shutdown()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown did not cancel work contexts")
	}
}

func TestResampleRunningOnly(t *testing.T) {
	table := newTestTable()
	defer table.Shutdown()

	alive := table.Spawn("alive", idle)
	dead := table.Spawn("dead", idle)
	require.NoError(t, table.Kill(dead))
	frozen, err := table.Get(dead)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		table.Resample(alive)
		table.Resample(dead)

		e, err := table.Get(alive)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, e.CPUPercent, 1)
		assert.LessOrEqual(t, e.CPUPercent, 15)
		assert.GreaterOrEqual(t, e.MemoryMB, 5)
		assert.LessOrEqual(t, e.MemoryMB, 50)
	}

	after, err := table.Get(dead)
	require.NoError(t, err)
	assert.Equal(t, frozen, after)

	// Unknown pid is a no-op
	table.Resample(99)
}

func TestTotals(t *testing.T) {
	table := newTestTable()
	defer table.Shutdown()

	assert.Equal(t, Totals{}, table.Totals())

	table.Spawn("a", nil)
	table.Spawn("b", nil)
	table.Spawn("c", nil)
	require.NoError(t, table.Kill(3))

	running := table.ListRunning()
	totals := table.Totals()

	assert.Equal(t, 2, totals.Running)
	assert.Equal(t, running[0].CPUPercent+running[1].CPUPercent, totals.CPU)
	assert.Equal(t, running[0].MemoryMB+running[1].MemoryMB, totals.MemoryMB)
	assert.InDelta(t, float64(totals.CPU)/2, totals.CPUMean, 1e-9)
}

func TestConcurrentSpawnUniquePIDs(t *testing.T) {
	table := newTestTable()
	defer table.Shutdown()

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int]bool)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pid := table.Spawn("p", nil)
			table.ResampleAll()
			mu.Lock()
			seen[pid] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 100)
	for pid := 1; pid <= 100; pid++ {
		assert.True(t, seen[pid], "pid %d missing", pid)
	}
}
