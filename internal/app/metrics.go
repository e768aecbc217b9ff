package app

import (
	"math"
	"sync/atomic"
	"time"
)

// Metrics tracks frame pacing and per-stage timing. All methods are safe
// for concurrent use.
type Metrics struct {
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64

	computeCount   atomic.Uint64
	computeTotalNs atomic.Int64

	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64

	commands        atomic.Uint64
	droppedCommands atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.frameMinNs.Store(math.MaxInt64)
	return m
}

// RecordFrame records the time spent on one whole frame.
func (m *Metrics) RecordFrame(d time.Duration) {
	ns := d.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordCompute records one escape matrix computation.
func (m *Metrics) RecordCompute(d time.Duration) {
	m.computeCount.Add(1)
	m.computeTotalNs.Add(d.Nanoseconds())
}

// RecordRender records one draw to the backend.
func (m *Metrics) RecordRender(d time.Duration) {
	m.renderCount.Add(1)
	m.renderTotalNs.Add(d.Nanoseconds())
}

// RecordCommand counts a command applied by the loop.
func (m *Metrics) RecordCommand() {
	m.commands.Add(1)
}

// RecordCommandDropped counts a command lost to a full queue.
func (m *Metrics) RecordCommandDropped() {
	m.droppedCommands.Add(1)
}

// Snapshot returns the cumulative counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	minNs := m.frameMinNs.Load()
	if minNs == math.MaxInt64 {
		minNs = 0
	}
	return MetricsSnapshot{
		Time:            time.Now(),
		Uptime:          time.Since(m.startTime),
		Frames:          m.frameCount.Load(),
		FrameTotal:      time.Duration(m.frameTotalNs.Load()),
		FrameMin:        time.Duration(minNs),
		FrameMax:        time.Duration(m.frameMaxNs.Load()),
		LastFrame:       time.Duration(m.lastFrameNs.Load()),
		Computes:        m.computeCount.Load(),
		ComputeTotal:    time.Duration(m.computeTotalNs.Load()),
		Renders:         m.renderCount.Load(),
		RenderTotal:     time.Duration(m.renderTotalNs.Load()),
		Commands:        m.commands.Load(),
		DroppedCommands: m.droppedCommands.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics. Totals are
// cumulative unless the snapshot came from Sub.
type MetricsSnapshot struct {
	Time   time.Time
	Uptime time.Duration

	Frames     uint64
	FrameTotal time.Duration
	FrameMin   time.Duration
	FrameMax   time.Duration
	LastFrame  time.Duration

	Computes     uint64
	ComputeTotal time.Duration

	Renders     uint64
	RenderTotal time.Duration

	Commands        uint64
	DroppedCommands uint64
}

// Sub returns the activity between prev and s. Min, max and last frame
// times are carried over from s.
func (s MetricsSnapshot) Sub(prev MetricsSnapshot) MetricsSnapshot {
	return MetricsSnapshot{
		Time:            s.Time,
		Uptime:          s.Time.Sub(prev.Time),
		Frames:          s.Frames - prev.Frames,
		FrameTotal:      s.FrameTotal - prev.FrameTotal,
		FrameMin:        s.FrameMin,
		FrameMax:        s.FrameMax,
		LastFrame:       s.LastFrame,
		Computes:        s.Computes - prev.Computes,
		ComputeTotal:    s.ComputeTotal - prev.ComputeTotal,
		Renders:         s.Renders - prev.Renders,
		RenderTotal:     s.RenderTotal - prev.RenderTotal,
		Commands:        s.Commands - prev.Commands,
		DroppedCommands: s.DroppedCommands - prev.DroppedCommands,
	}
}

// FPS returns frames per second of wall time.
func (s MetricsSnapshot) FPS() float64 {
	if s.Uptime <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Uptime.Seconds()
}

// AvgFrame returns the mean frame time.
func (s MetricsSnapshot) AvgFrame() time.Duration {
	return avg(s.FrameTotal, s.Frames)
}

// AvgCompute returns the mean compute time.
func (s MetricsSnapshot) AvgCompute() time.Duration {
	return avg(s.ComputeTotal, s.Computes)
}

// AvgRender returns the mean draw time.
func (s MetricsSnapshot) AvgRender() time.Duration {
	return avg(s.RenderTotal, s.Renders)
}

// DropRate returns the percentage of commands that were dropped.
func (s MetricsSnapshot) DropRate() float64 {
	total := s.Commands + s.DroppedCommands
	if total == 0 {
		return 0
	}
	return float64(s.DroppedCommands) / float64(total) * 100
}

func avg(total time.Duration, n uint64) time.Duration {
	if n == 0 {
		return 0
	}
	return total / time.Duration(n)
}

// Timer measures elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Lap returns the elapsed time and restarts the timer.
func (t *Timer) Lap() time.Duration {
	now := time.Now()
	elapsed := now.Sub(t.start)
	t.start = now
	return elapsed
}
