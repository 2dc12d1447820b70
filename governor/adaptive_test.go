/*
DESCRIPTION
  adaptive_test.go provides testing of the quality feedback loop:
  hysteresis, single-step transitions, and degrade/recover behaviour.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package governor

import (
	"testing"
	"time"

	"github.com/ausocean/camgov/governor/config"
)

// feed completes n analyses of duration d without raising the in-flight
// count, i.e. as seen by the adaptive controller at zero concurrency.
func feed(g *Governor, n int, d time.Duration) {
	for i := 0; i < n; i++ {
		g.BeginAdmission(time.Now())
		g.EndAnalysis(d)
	}
}

func TestHysteresisHolds(t *testing.T) {
	// 30 durations exactly at the 33ms budget sit inside the hysteresis
	// band and must cause no transition.
	g, _, _ := newTestGovernor(t, config.QualityHigh)

	feed(g, 30, 33*time.Millisecond)
	if got := g.Quality(); got != config.QualityHigh {
		t.Errorf("quality moved to %v on in-band averages, want High", got)
	}
}

func TestDegradeThenRecover(t *testing.T) {
	g, _, _ := newTestGovernor(t, config.QualityHigh)

	// 30 slow analyses (1.5x budget) must cause exactly one decrease.
	feed(g, 30, 50*time.Millisecond)
	if got := g.Quality(); got != config.QualityMedium {
		t.Fatalf("quality %v after sustained overload, want Medium", got)
	}

	// 30 fast analyses (0.3x budget) at low concurrency must cause
	// exactly one increase.
	feed(g, 30, 10*time.Millisecond)
	if got := g.Quality(); got != config.QualityHigh {
		t.Errorf("quality %v after sustained headroom, want High", got)
	}
}

func TestNoTransitionOnPartialWindow(t *testing.T) {
	g, _, _ := newTestGovernor(t, config.QualityHigh)

	// 29 slow samples leave the window short of full; no decision yet.
	feed(g, 29, 50*time.Millisecond)
	if got := g.Quality(); got != config.QualityHigh {
		t.Errorf("quality moved to %v before window filled, want High", got)
	}

	feed(g, 1, 50*time.Millisecond)
	if got := g.Quality(); got != config.QualityMedium {
		t.Errorf("quality %v once window filled, want Medium", got)
	}
}

func TestNoIncreaseUnderConcurrency(t *testing.T) {
	// Fast averages alone must not raise quality while in-flight count
	// is at or above half the concurrency cap.
	g, clock, _ := newTestGovernor(t, config.QualityHigh) // Cap 3, half 1.

	g.BeginAdmission(clock.Now())
	g.BeginAdmission(clock.Now()) // Two in flight throughout.
	for i := 0; i < 30; i++ {
		g.BeginAdmission(clock.Now())
		g.EndAnalysis(5 * time.Millisecond)
	}
	if got := g.Quality(); got != config.QualityHigh {
		t.Errorf("quality %v with analyses in flight, want High", got)
	}
}

func TestClampAtExtremes(t *testing.T) {
	// Sustained overload at Low holds at Low.
	g, _, _ := newTestGovernor(t, config.QualityLow)
	feed(g, 90, 100*time.Millisecond)
	if got := g.Quality(); got != config.QualityLow {
		t.Errorf("quality %v, want clamp at Low", got)
	}

	// Sustained headroom at Ultra holds at Ultra.
	g, _, _ = newTestGovernor(t, config.QualityUltra)
	feed(g, 90, time.Millisecond)
	if got := g.Quality(); got != config.QualityUltra {
		t.Errorf("quality %v, want clamp at Ultra", got)
	}
}

func TestManualOverride(t *testing.T) {
	g, _, _ := newTestGovernor(t, config.QualityHigh)

	g.SetQuality(config.QualityLow)
	if got := g.Quality(); got != config.QualityLow {
		t.Fatalf("quality %v after override, want Low", got)
	}

	g.SetQuality(config.Quality(42))
	if got := g.Quality(); got != config.QualityLow {
		t.Errorf("invalid override changed quality to %v", got)
	}
}
