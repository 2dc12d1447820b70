/*
DESCRIPTION
  admission.go provides the per-frame admission decision and the
  bookkeeping calls that bracket an analysis.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package governor

import (
	"time"

	"github.com/ausocean/camgov/framestore"
)

// ShouldAdmit reports whether a frame arriving at now should be
// admitted for analysis. The decision is a pure function of current
// state; no admission state is mutated. A caller that admits the frame
// must follow with BeginAdmission and AddFrame; a caller that treats
// rejection as a drop records it with RecordDrop. The governor does not
// count rejections itself, since the caller decides whether a rejection
// means drop or retry later.
func (g *Governor) ShouldAdmit(now time.Time) bool {
	set := g.Quality().Settings()

	g.admission.Lock()
	last := g.admission.lastAdmitted
	inFlight := g.admission.inFlight
	g.admission.Unlock()

	if !last.IsZero() && now.Sub(last) < set.MinInterval {
		return false
	}
	if inFlight >= set.MaxAnalyzers {
		return false
	}
	if g.IsThrottling() {
		return false
	}
	return true
}

// BeginAdmission records the admission of a frame at now: the last
// admitted timestamp is updated and the in-flight count incremented.
func (g *Governor) BeginAdmission(now time.Time) {
	g.admission.Lock()
	g.admission.lastAdmitted = now
	g.admission.inFlight++
	g.admission.Unlock()
}

// EndAnalysis records the completion of an analysis that took d. The
// in-flight count is decremented, floored at 0 so an unmatched call
// cannot corrupt state, the duration is recorded in the rolling metric
// windows, and the adaptive controller re-evaluates the quality level.
func (g *Governor) EndAnalysis(d time.Duration) {
	g.admission.Lock()
	if g.admission.inFlight > 0 {
		g.admission.inFlight--
	}
	inFlight := g.admission.inFlight
	g.admission.Unlock()

	completed := g.metrics.record(d)
	g.adapt(inFlight)

	if completed%logEvery == 0 {
		avg := g.metrics.adaptMean()
		g.log.Info("analysis progress", "completed", completed,
			"avgMs", float64(avg)/float64(time.Millisecond), "quality", g.Quality().String())
	}
}

// InFlight returns the number of admitted analyses not yet completed.
func (g *Governor) InFlight() int {
	g.admission.Lock()
	defer g.admission.Unlock()
	return g.admission.inFlight
}

// AddFrame queues an admitted frame for analysis and counts it as seen.
// If the store is at capacity the lowest priority, oldest pending frame
// is evicted and released; the evicted frame will never reach
// EndAnalysis, so its admission slot is surrendered here and the frame
// counted as dropped.
func (g *Governor) AddFrame(f framestore.Frame) {
	g.metrics.countFrame()
	if !g.frames().Add(f) {
		return
	}

	g.admission.Lock()
	if g.admission.inFlight > 0 {
		g.admission.inFlight--
	}
	g.admission.Unlock()
	g.metrics.countEvicted()
}

// TakeNextFrame removes and returns the highest priority, most recent
// pending frame; false when none is pending. The caller owns release of
// the returned frame.
func (g *Governor) TakeNextFrame() (framestore.Frame, bool) {
	return g.frames().TakeNext()
}

// RecordDrop counts a frame that was seen but discarded rather than
// analyzed, whether rejected at admission or abandoned after queuing.
func (g *Governor) RecordDrop() {
	g.metrics.countDrop()
}

// StoreSize returns the number of frames pending analysis.
func (g *Governor) StoreSize() int {
	return g.frames().Size()
}
