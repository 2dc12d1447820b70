/*
DESCRIPTION
  metrics.go exports governor snapshot state as prometheus metrics.

AUTHORS
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ausocean/camgov/governor"
	"github.com/ausocean/utils/logging"
)

var (
	avgProcessing = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "governor_avg_processing_seconds",
		Help: "Mean analysis duration over the snapshot window.",
	})
	frameRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "governor_frame_rate",
		Help: "Estimated achievable analysis rate in frames per second.",
	})
	droppedPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "governor_dropped_percent",
		Help: "Dropped frames as a percentage of all frames seen.",
	})
	memoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "governor_memory_bytes",
		Help: "Resident memory as seen by the governor's prober.",
	})
	qualityLevel = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "governor_quality_level",
		Help: "Current quality level, 1 (Low) through 4 (Ultra).",
	})
	throttling = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "governor_throttling",
		Help: "1 while the throttling guard is active, otherwise 0.",
	})
	inFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "governor_in_flight",
		Help: "Analyses currently in flight.",
	})
	storeSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "governor_store_size",
		Help: "Frames currently held in the store.",
	})
	totalFrames = promauto.NewCounter(prometheus.CounterOpts{
		Name: "governor_frames_total",
		Help: "Total frames seen by the governor.",
	})
	droppedFrames = promauto.NewCounter(prometheus.CounterOpts{
		Name: "governor_frames_dropped_total",
		Help: "Total frames dropped by the governor.",
	})
)

// exportMetrics periodically copies a governor snapshot into the
// prometheus gauges until stop is closed.
func exportMetrics(g *governor.Governor, log logging.Logger, stop chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	var prevTotal, prevDropped uint64
	for {
		select {
		case <-stop:
			return
		case <-time.After(metricsInterval):
		}

		r := g.Snapshot()
		avgProcessing.Set(r.AvgProcessing.Seconds())
		frameRate.Set(r.FrameRate)
		droppedPercent.Set(r.DroppedPercent)
		memoryUsage.Set(float64(r.MemoryUsage))
		qualityLevel.Set(float64(r.Quality))
		inFlight.Set(float64(r.InFlight))
		storeSize.Set(float64(r.StoreSize))
		if r.Throttling {
			throttling.Set(1)
		} else {
			throttling.Set(0)
		}

		// Counters only go up; a governor reset zeroes the snapshot
		// totals, so treat a decrease as a new baseline.
		if r.TotalFrames < prevTotal {
			prevTotal, prevDropped = 0, 0
		}
		totalFrames.Add(float64(r.TotalFrames - prevTotal))
		droppedFrames.Add(float64(r.DroppedFrames - prevDropped))
		prevTotal, prevDropped = r.TotalFrames, r.DroppedFrames
	}
}
