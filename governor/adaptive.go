/*
DESCRIPTION
  adaptive.go provides the feedback loop that trims the quality level to
  keep the rolling average analysis time near the target budget.

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

import "time"

// adapt re-evaluates the quality level after a completed analysis. It
// acts only on a full adaptive window and moves at most one level per
// evaluation:
//
//	avg > budget*downFactor                           -> one level down
//	avg < budget*upFactor and concurrency headroom    -> one level up
//	otherwise                                         -> hold
//
// The window is cleared after a transition so the next decision is made
// from samples taken entirely at the new level. Together with the
// hysteresis band this prevents oscillation between adjacent levels
// under noisy timing.
func (g *Governor) adapt(inFlight int) {
	avg, ok := g.metrics.adaptTake()
	if !ok {
		return
	}

	budget := g.Config().TargetBudget
	switch {
	case avg > time.Duration(float64(budget)*downFactor):
		g.stepDown(avg)
	case avg < time.Duration(float64(budget)*upFactor) && inFlight < g.Quality().Settings().MaxAnalyzers/2:
		g.stepUp(avg)
	}
}

// stepDown moves the quality one level down, a no-op at QualityLow.
func (g *Governor) stepDown(avg time.Duration) {
	g.quality.Lock()
	prev := g.quality.level
	g.quality.level = prev.Down()
	cur := g.quality.level
	g.quality.Unlock()

	if cur != prev {
		g.metrics.adaptClear()
		g.log.Info("decreasing analysis quality", "from", prev.String(), "to", cur.String(),
			"avgMs", float64(avg)/float64(time.Millisecond))
	}
}

// stepUp moves the quality one level up, a no-op at QualityUltra.
func (g *Governor) stepUp(avg time.Duration) {
	g.quality.Lock()
	prev := g.quality.level
	g.quality.level = prev.Up()
	cur := g.quality.level
	g.quality.Unlock()

	if cur != prev {
		g.metrics.adaptClear()
		g.log.Info("increasing analysis quality", "from", prev.String(), "to", cur.String(),
			"avgMs", float64(avg)/float64(time.Millisecond))
	}
}
