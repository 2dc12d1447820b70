/*
DESCRIPTION
  analyze.go defines the analyzer capability consumed by the worker
  pool. Analyzer algorithms (exposure, focus, composition) live with
  their owners; this package only defines the boundary.

AUTHORS
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package analyze provides the analyzer interface and a worker pool
// that pulls admitted frames from a governor, runs each analyzer over
// them, and reports analysis durations back for quality adaptation.
package analyze

import "github.com/ausocean/camgov/framestore"

// Result is the outcome of one analyzer pass over one frame.
type Result struct {
	Analyzer string
	Value    float64
}

// Analyzer examines a single frame and produces a result. Analyze is
// called from pool worker routines and must be safe for the pool's
// level of concurrency. Implementations run to completion; the pool
// never cancels an analysis in flight.
type Analyzer interface {
	Name() string
	Analyze(f framestore.Frame) (Result, error)
}
