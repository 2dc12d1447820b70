/*
DESCRIPTION
  metrics.go provides the rolling duration windows, session counters and
  point-in-time snapshot reporting for the governor.

AUTHORS
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package governor

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/camgov/governor/config"
)

// logEvery is the completed analysis count between progress log lines.
const logEvery = 30

// window is a fixed-capacity FIFO of duration samples in milliseconds.
// Oldest samples are dropped first; len never exceeds the capacity.
type window struct {
	samples []float64
	size    int
}

func newWindow(size int) *window {
	return &window{samples: make([]float64, 0, size), size: size}
}

func (w *window) add(v float64) {
	if len(w.samples) == w.size {
		w.samples = append(w.samples[:0], w.samples[1:]...)
	}
	w.samples = append(w.samples, v)
}

// mean returns the average of the samples, or 0 when empty.
func (w *window) mean() float64 {
	if len(w.samples) == 0 {
		return 0
	}
	return stat.Mean(w.samples, nil)
}

func (w *window) full() bool { return len(w.samples) == w.size }

func (w *window) clear() { w.samples = w.samples[:0] }

// metrics accumulates analysis durations and frame counters. It has its
// own lock so that recording never contends with store mutation or
// admission checks.
type metrics struct {
	mu sync.Mutex

	// snapshot feeds Snapshot reporting, adapt feeds the quality
	// controller, throttle feeds the throttling guard.
	snapshot *window
	adapt    *window
	throttle *window

	total     uint64
	dropped   uint64
	completed uint64
}

func (m *metrics) init(snapshotSize, adaptSize, throttleSize int) {
	m.mu.Lock()
	m.snapshot = newWindow(snapshotSize)
	m.adapt = newWindow(adaptSize)
	m.throttle = newWindow(throttleSize)
	m.total, m.dropped, m.completed = 0, 0, 0
	m.mu.Unlock()
}

// record adds an analysis duration to all windows and returns the
// completed analysis count.
func (m *metrics) record(d time.Duration) uint64 {
	ms := float64(d) / float64(time.Millisecond)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot.add(ms)
	m.adapt.add(ms)
	m.throttle.add(ms)
	m.completed++
	return m.completed
}

func (m *metrics) countFrame() {
	m.mu.Lock()
	m.total++
	m.mu.Unlock()
}

func (m *metrics) countDrop() {
	m.mu.Lock()
	m.total++
	m.dropped++
	m.mu.Unlock()
}

// countEvicted counts a queued frame lost to eviction. The frame was
// already counted as seen when it was added, so only dropped moves.
func (m *metrics) countEvicted() {
	m.mu.Lock()
	m.dropped++
	m.mu.Unlock()
}

// adaptMean returns the mean of the adaptive window as a duration.
func (m *metrics) adaptMean() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Duration(m.adapt.mean() * float64(time.Millisecond))
}

// throttleMean returns the mean of the throttle window as a duration.
func (m *metrics) throttleMean() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Duration(m.throttle.mean() * float64(time.Millisecond))
}

// adaptTake returns the adaptive window mean, with false until the
// window holds a full set of samples. Quality decisions wait for a full
// window so that a handful of early samples cannot swing the level.
func (m *metrics) adaptTake() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.adapt.full() {
		return 0, false
	}
	avg := time.Duration(m.adapt.mean() * float64(time.Millisecond))
	return avg, true
}

// adaptClear empties the adaptive window, called after a quality
// transition so the next decision is based on fresh samples only.
func (m *metrics) adaptClear() {
	m.mu.Lock()
	m.adapt.clear()
	m.mu.Unlock()
}

func (m *metrics) reset() {
	m.mu.Lock()
	m.snapshot.clear()
	m.adapt.clear()
	m.throttle.clear()
	m.total, m.dropped, m.completed = 0, 0, 0
	m.mu.Unlock()
}

// Report is a point-in-time snapshot of governor state.
type Report struct {
	// AvgProcessing is the mean analysis duration over the snapshot
	// window; 0 when no analyses have completed.
	AvgProcessing time.Duration

	// FrameRate is the estimated achievable analysis rate, capped at
	// the configured target frame rate; 0 when no analyses have
	// completed.
	FrameRate float64

	// DroppedPercent is dropped frames as a percentage of all frames
	// seen; 0 when no frames have been seen.
	DroppedPercent float64

	MemoryUsage   uint64
	Quality       config.Quality
	Throttling    bool
	InFlight      int
	StoreSize     int
	TotalFrames   uint64
	DroppedFrames uint64
}

// Snapshot assembles a Report from current state. It is safe to call
// from any routine but is intended for the periodic report loop and
// host diagnostics rather than the capture path.
func (g *Governor) Snapshot() Report {
	g.metrics.mu.Lock()
	avgMs := g.metrics.snapshot.mean()
	total := g.metrics.total
	dropped := g.metrics.dropped
	g.metrics.mu.Unlock()

	var rate float64
	if avgMs > 0 {
		rate = 1000 / avgMs
		if limit := float64(g.Config().TargetFrameRate); rate > limit {
			rate = limit
		}
	}

	var droppedPct float64
	if total > 0 {
		droppedPct = float64(dropped) / float64(total) * 100
	}

	return Report{
		AvgProcessing:  time.Duration(avgMs * float64(time.Millisecond)),
		FrameRate:      rate,
		DroppedPercent: droppedPct,
		MemoryUsage:    g.mem.ResidentMemoryBytes(),
		Quality:        g.Quality(),
		Throttling:     g.IsThrottling(),
		InFlight:       g.InFlight(),
		StoreSize:      g.frames().Size(),
		TotalFrames:    total,
		DroppedFrames:  dropped,
	}
}
