/*
DESCRIPTION
  sysmon.go provides the clock and resident memory probe collaborators
  consumed by the governor, along with controllable fakes for testing.

AUTHORS
  Trek Hopton <trek@ausocean.org>
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package sysmon provides monotonic time and process memory readings for
// the governor. Memory probes are best effort; a probe that cannot read
// reports 0 rather than an error.
package sysmon

import (
	"runtime"
	"sync"
	"time"
)

// Clock supplies timestamps for admission decisions and analysis timing.
type Clock interface {
	Now() time.Time
}

// MemoryProber supplies the process resident memory usage in bytes.
// Implementations return 0 when a reading cannot be taken.
type MemoryProber interface {
	ResidentMemoryBytes() uint64
}

// SystemClock is the wall clock. Go's time.Time carries a monotonic
// reading, so durations between SystemClock timestamps are immune to
// wall clock steps.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// RuntimeProber reads memory usage from the Go runtime. This reflects
// heap allocation rather than true resident set size, but requires no
// platform support.
type RuntimeProber struct{}

// ResidentMemoryBytes implements MemoryProber.
func (RuntimeProber) ResidentMemoryBytes() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc
}

// ManualClock is a settable clock for tests.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a manual clock starting at t.
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{now: t}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// StubProber reports a fixed memory reading for tests.
type StubProber struct {
	mu    sync.Mutex
	bytes uint64
}

// NewStubProber returns a prober fixed at the given reading.
func NewStubProber(bytes uint64) *StubProber {
	return &StubProber{bytes: bytes}
}

// ResidentMemoryBytes implements MemoryProber.
func (p *StubProber) ResidentMemoryBytes() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bytes
}

// Set changes the reading.
func (p *StubProber) Set(bytes uint64) {
	p.mu.Lock()
	p.bytes = bytes
	p.mu.Unlock()
}
