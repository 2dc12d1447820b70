/*
DESCRIPTION
  throttle.go provides the throttling guard, an emergency brake that
  forces admission rejection under memory or latency pressure.

AUTHORS
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package governor

import "time"

// IsThrottling reports whether the governor is refusing admission due
// to resource pressure: resident memory above the configured ceiling,
// or the short rolling average of analysis time above
// throttleFactor times the target budget.
//
// The guard works from a much shorter window than the adaptive
// controller and is independent of quality level logic; throttling is
// an emergency brake while quality adaptation is a cruise-control trim.
func (g *Governor) IsThrottling() bool {
	c := g.Config()
	if g.mem.ResidentMemoryBytes() > c.MaxMemory {
		return true
	}
	ceiling := time.Duration(float64(c.TargetBudget) * throttleFactor)
	return g.metrics.throttleMean() > ceiling
}
