/*
DESCRIPTION
  sysmon_test.go provides testing of the clock and memory probe
  implementations.

AUTHORS
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sysmon

import (
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(base)
	if !c.Now().Equal(base) {
		t.Errorf("got %v, want %v", c.Now(), base)
	}
	c.Advance(50 * time.Millisecond)
	if got := c.Now().Sub(base); got != 50*time.Millisecond {
		t.Errorf("advance moved clock by %v, want 50ms", got)
	}
}

func TestStubProber(t *testing.T) {
	p := NewStubProber(100 << 20)
	if got := p.ResidentMemoryBytes(); got != 100<<20 {
		t.Errorf("got %d, want %d", got, 100<<20)
	}
	p.Set(250 << 20)
	if got := p.ResidentMemoryBytes(); got != 250<<20 {
		t.Errorf("got %d, want %d", got, 250<<20)
	}
}

func TestRuntimeProber(t *testing.T) {
	if (RuntimeProber{}).ResidentMemoryBytes() == 0 {
		t.Error("expected non-zero heap reading")
	}
}
