/*
DESCRIPTION
  report.go provides the background routine that periodically snapshots
  governor state, logs it, and raises warnings on sustained frame loss
  or memory pressure.

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

import "time"

// Report loop warning thresholds.
const (
	warnDroppedPercent = 10.0
	warnMemoryFraction = 0.8
)

// report runs as a routine, taking a snapshot every ReportInterval and
// logging it. Snapshot computation runs here, off the capture path.
func (g *Governor) report() {
	defer g.wg.Done()

	t := time.NewTicker(g.Config().ReportInterval)
	defer t.Stop()

	for {
		select {
		case <-g.stop:
			return
		case <-t.C:
			s := g.Snapshot()
			g.log.Info("governor snapshot",
				"avgMs", float64(s.AvgProcessing)/float64(time.Millisecond),
				"frameRate", s.FrameRate,
				"droppedPct", s.DroppedPercent,
				"memory", s.MemoryUsage,
				"quality", s.Quality.String(),
				"throttling", s.Throttling,
				"inFlight", s.InFlight,
				"pending", s.StoreSize,
			)

			if s.DroppedPercent > warnDroppedPercent {
				g.log.Warning("dropped frame percentage high", "droppedPct", s.DroppedPercent)
			}
			if ceiling := g.Config().MaxMemory; float64(s.MemoryUsage) > warnMemoryFraction*float64(ceiling) {
				g.log.Warning("memory usage approaching ceiling", "memory", s.MemoryUsage,
					"ceiling", ceiling)
			}
		}
	}
}
