/*
NAME
  governor.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package governor provides real-time frame admission control and
// adaptive quality governance for a camera analysis pipeline. It sits
// between a frame producer and a pool of per-frame analyzers, deciding
// many times per second whether an incoming frame is analyzed, queued
// or dropped, while keeping analysis latency and memory bounded.
package governor

import (
	"fmt"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/camgov/framestore"
	"github.com/ausocean/camgov/governor/config"
	"github.com/ausocean/camgov/sysmon"
)

// Adaptive controller thresholds. The band between upFactor and
// downFactor is a hysteresis band; average analysis times inside it
// cause no quality transition.
const (
	downFactor = 1.2
	upFactor   = 0.6
)

// throttleFactor scales the target budget into the latency ceiling that
// trips the throttling guard.
const throttleFactor = 1.5

// Governor provides methods to control a frame admission session;
// admission decisions, quality transitions and throttling are all
// immediate functions of current state, and a background routine
// reports a metrics snapshot periodically.
//
// The governor is constructed explicitly and passed to collaborators;
// there is deliberately no shared process-wide instance.
type Governor struct {
	// mu guards cfg and store against reconfiguration. The frame path
	// takes read locks; Update takes the write lock when it swaps both.
	mu sync.RWMutex

	// cfg holds the governor configuration.
	cfg config.Config

	// log is set at construction and never replaced; reconfiguration
	// adjusts its level but the frame path may use it without locking.
	log logging.Logger

	clock sysmon.Clock
	mem   sysmon.MemoryProber

	// store holds frames admitted but not yet taken for analysis.
	store *framestore.Store

	// Admission state. lastAdmitted and inFlight are read on every
	// arriving frame, so they sit under their own lock rather than
	// contending with metrics recording.
	admission struct {
		sync.Mutex
		lastAdmitted time.Time
		inFlight     int
	}

	// quality holds the current level under its own lock.
	quality struct {
		sync.Mutex
		level config.Quality
	}

	// metrics holds the rolling windows and session counters.
	metrics metrics

	// running is used to keep track of the report routine state between
	// methods.
	running bool

	// wg will be used to wait for the report routine to finish.
	wg sync.WaitGroup

	// stop is used to signal stopping of the report routine.
	stop chan struct{}
}

// New returns a pointer to a new Governor with the desired
// configuration, and/or an error if construction was not successful.
// The clock and memory prober collaborators must be non-nil; use
// sysmon.SystemClock and a sysmon prober in production.
func New(c config.Config, clock sysmon.Clock, mem sysmon.MemoryProber) (*Governor, error) {
	g := Governor{log: c.Logger, clock: clock, mem: mem}
	err := g.setConfig(c)
	if err != nil {
		return nil, fmt.Errorf("could not set config: %w", err)
	}
	return &g, nil
}

// setConfig takes a config, checks its validity and then replaces the
// current governor config, rebuilding dependent state. The frame path
// may be live throughout; the config and store are swapped under the
// write lock, and the replaced store's pending frames are released.
func (g *Governor) setConfig(c config.Config) error {
	err := c.Validate()
	if err != nil {
		return fmt.Errorf("config struct is bad: %w", err)
	}
	g.log.SetLevel(c.LogLevel)

	g.mu.Lock()
	old := g.store
	g.cfg = c
	g.store = framestore.NewStore(int(c.StoreCapacity), g.log)
	g.mu.Unlock()

	// Frames pending in the replaced store will never be taken; release
	// them and surrender their admission slots along with any stale
	// in-flight count, the same as Reset.
	if old != nil {
		old.Clear()
	}
	g.admission.Lock()
	g.admission.lastAdmitted = time.Time{}
	g.admission.inFlight = 0
	g.admission.Unlock()

	g.metrics.init(int(c.SnapshotWindow), int(c.AdaptWindow), int(c.ThrottleWindow))

	g.quality.Lock()
	g.quality.level = c.Quality
	g.quality.Unlock()

	g.log.Info("governor configured", "quality", c.Quality.String(),
		"budget", c.TargetBudget.String(), "capacity", c.StoreCapacity)
	return nil
}

// Config returns a copy of the governor's current config.
func (g *Governor) Config() config.Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cfg
}

// frames returns the current frame store.
func (g *Governor) frames() *framestore.Store {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.store
}

// Start launches the background report routine. Start on a running
// governor logs a warning and is otherwise a no-op.
func (g *Governor) Start() {
	if g.running {
		g.log.Warning("start called, but governor already running")
		return
	}

	g.stop = make(chan struct{})
	g.wg.Add(1)
	go g.report()

	g.running = true
	g.log.Info("governor started")
}

// Stop terminates the report routine and waits for it to finish. The
// frame store is left intact; a stopped governor still admits frames.
func (g *Governor) Stop() {
	if !g.running {
		g.log.Warning("stop called but governor isn't running")
		return
	}

	close(g.stop)
	g.wg.Wait()
	g.running = false
	g.log.Info("governor stopped")
}

// Running returns whether the report routine is running.
func (g *Governor) Running() bool {
	return g.running
}

// Update takes a map of variables and their values and edits the
// current config if the variables are recognised as valid parameters.
// If the governor is running it is stopped first; the caller restarts
// it when ready.
func (g *Governor) Update(vars map[string]string) error {
	if g.running {
		g.log.Debug("governor running; stopping for re-config")
		g.Stop()
		g.log.Info("governor was running; stopped for re-config")
	}

	g.log.Debug("checking vars from host", "vars", vars)
	c := g.Config()
	c.Update(vars)
	err := g.setConfig(c)
	if err != nil {
		return fmt.Errorf("could not apply updated config: %w", err)
	}
	g.log.Info("finished reconfig")
	return nil
}

// SetQuality manually overrides the current quality level. Invalid
// levels are ignored with a warning.
func (g *Governor) SetQuality(q config.Quality) {
	if !q.Valid() {
		g.log.Warning("ignoring invalid quality level", "level", int(q))
		return
	}
	g.quality.Lock()
	prev := g.quality.level
	g.quality.level = q
	g.quality.Unlock()
	if prev != q {
		g.log.Info("quality level overridden", "from", prev.String(), "to", q.String())
	}
}

// Quality returns the current quality level.
func (g *Governor) Quality() config.Quality {
	g.quality.Lock()
	defer g.quality.Unlock()
	return g.quality.level
}

// Reset clears all counters, rolling windows and the frame store,
// releasing any pending frames. The quality level is unchanged.
func (g *Governor) Reset() {
	g.admission.Lock()
	g.admission.lastAdmitted = time.Time{}
	g.admission.inFlight = 0
	g.admission.Unlock()

	g.metrics.reset()
	g.frames().Clear()
	g.log.Info("governor reset")
}
