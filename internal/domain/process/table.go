package process

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Initial and resampled metric ranges, inclusive
const (
	spawnCPUMin, spawnCPUMax       = 1, 10
	spawnMemoryMin, spawnMemoryMax = 10, 100
	sampleCPUMin, sampleCPUMax     = 1, 15
	sampleMemMin, sampleMemMax     = 5, 50
)

// Table is the registry of simulated processes. PIDs are allocated from a
// counter that is never rewound; entries are never removed.
type Table struct {
	mu      sync.Mutex
	procs   map[int]*process
	nextPID int
	rng     *rand.Rand
	now     func() time.Time

	// root is the parent of every work context; cancelled by Shutdown
	root       context.Context
	cancelRoot context.CancelFunc
}

// Option configures a Table
type Option func(*Table)

// WithRand injects the randomness source used for simulated metrics
func WithRand(rng *rand.Rand) Option {
	return func(t *Table) {
		t.rng = rng
	}
}

// WithClock overrides the start-time source
func WithClock(now func() time.Time) Option {
	return func(t *Table) {
		t.now = now
	}
}

// NewTable creates an empty process table. The first spawned pid is 1.
func NewTable(opts ...Option) *Table {
	root, cancel := context.WithCancel(context.Background())
	t := &Table{
		procs:      make(map[int]*process),
		nextPID:    1,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
		root:       root,
		cancelRoot: cancel,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Spawn registers a running process and starts work in a new goroutine.
// The goroutine is never joined; work must honor ctx cancellation.
func (t *Table) Spawn(name string, work Work) int {
	t.mu.Lock()
	pid := t.nextPID
	t.nextPID++

	ctx, cancel := context.WithCancel(t.root)
	p := &process{
		Entry: Entry{
			PID:        pid,
			Name:       name,
			Status:     StatusRunning,
			StartedAt:  t.now(),
			CPUPercent: t.between(spawnCPUMin, spawnCPUMax),
			MemoryMB:   t.between(spawnMemoryMin, spawnMemoryMax),
		},
		cancel: cancel,
	}
	t.procs[pid] = p
	t.mu.Unlock()

	if work != nil {
		go work(ctx)
	}
	return pid
}

// Kill terminates a process. Killing an already terminated pid succeeds.
func (t *Table) Kill(pid int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.procs[pid]
	if !ok {
		return fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	}
	if p.Status == StatusTerminated {
		return nil
	}

	p.Status = StatusTerminated
	p.cancel()
	return nil
}

// Get returns a snapshot of one entry
func (t *Table) Get(pid int) (Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.procs[pid]
	if !ok {
		return Entry{}, fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	}
	return p.Entry, nil
}

// ListRunning returns running entries ordered by pid
func (t *Table) ListRunning() []Entry {
	return t.list(func(p *process) bool {
		return p.Status == StatusRunning
	})
}

// List returns every entry, terminated ones included, ordered by pid
func (t *Table) List() []Entry {
	return t.list(func(*process) bool { return true })
}

func (t *Table) list(keep func(*process) bool) []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make([]Entry, 0, len(t.procs))
	for _, p := range t.procs {
		if keep(p) {
			entries = append(entries, p.Entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].PID < entries[j].PID
	})
	return entries
}

// Resample redraws the simulated metrics of a running process.
// Terminated and unknown pids are left alone.
func (t *Table) Resample(pid int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.procs[pid]; ok {
		t.resample(p)
	}
}

// ResampleAll redraws metrics for every running process
func (t *Table) ResampleAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	pids := make([]int, 0, len(t.procs))
	for pid := range t.procs {
		pids = append(pids, pid)
	}
	// Deterministic draw order for seeded sources
	sort.Ints(pids)
	for _, pid := range pids {
		t.resample(t.procs[pid])
	}
}

func (t *Table) resample(p *process) {
	if p.Status != StatusRunning {
		return
	}
	p.CPUPercent = t.between(sampleCPUMin, sampleCPUMax)
	p.MemoryMB = t.between(sampleMemMin, sampleMemMax)
}

// Totals aggregates CPU and memory across running processes
func (t *Table) Totals() Totals {
	running := t.ListRunning()

	totals := Totals{Running: len(running)}
	if len(running) == 0 {
		return totals
	}

	cpu := make([]float64, len(running))
	for i, e := range running {
		totals.CPU += e.CPUPercent
		totals.MemoryMB += e.MemoryMB
		cpu[i] = float64(e.CPUPercent)
	}

	totals.CPUMean = stat.Mean(cpu, nil)
	if len(cpu) > 1 {
		totals.CPUStdDev = stat.StdDev(cpu, nil)
	}
	return totals
}

// Shutdown cancels every work context. Goroutines are abandoned, not joined.
// Entries keep their status.
func (t *Table) Shutdown() {
	t.cancelRoot()
}

// between draws an integer in [lo, hi]. Caller holds t.mu.
func (t *Table) between(lo, hi int) int {
	return lo + t.rng.Intn(hi-lo+1)
}
