/*
DESCRIPTION
  pool.go provides the analyzer worker pool. Workers pull the freshest
  pending frame from the governor, run every analyzer over it, report
  the elapsed analysis time, and release the frame.

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

package analyze

import (
	"errors"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/camgov/governor"
	"github.com/ausocean/camgov/sysmon"
)

// idlePoll is how long a worker sleeps when the store is empty, so an
// idle pool does not spin.
const idlePoll = 5 * time.Millisecond

// Pool runs a fixed set of worker routines over a governor's frame
// store. Admission decides how many analyses may be in flight; the pool
// size is simply an upper bound on parallelism.
type Pool struct {
	gov       *governor.Governor
	analyzers []Analyzer
	clock     sysmon.Clock
	log       logging.Logger
	workers   int

	running bool
	wg      sync.WaitGroup
	stop    chan struct{}
}

// NewPool returns a pool of the given number of workers. An error is
// returned for a non-positive worker count or an empty analyzer set.
func NewPool(workers int, g *governor.Governor, analyzers []Analyzer, clock sysmon.Clock, l logging.Logger) (*Pool, error) {
	if workers <= 0 {
		return nil, errors.New("worker count must be positive")
	}
	if len(analyzers) == 0 {
		return nil, errors.New("no analyzers given")
	}
	return &Pool{
		gov:       g,
		analyzers: analyzers,
		clock:     clock,
		log:       l,
		workers:   workers,
	}, nil
}

// Start launches the worker routines. Start on a running pool logs a
// warning and is otherwise a no-op.
func (p *Pool) Start() {
	if p.running {
		p.log.Warning("start called, but pool already running")
		return
	}

	p.stop = make(chan struct{})
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(i)
	}
	p.running = true
	p.log.Info("analyzer pool started", "workers", p.workers, "analyzers", len(p.analyzers))
}

// Stop signals the workers and waits for them to finish. Frames already
// taken are analyzed to completion; the governor is not stopped.
func (p *Pool) Stop() {
	if !p.running {
		p.log.Warning("stop called but pool isn't running")
		return
	}

	close(p.stop)
	p.wg.Wait()
	p.running = false
	p.log.Info("analyzer pool stopped")
}

// run is a worker routine. Each taken frame is passed through every
// analyzer in turn; a failing analyzer is logged and the rest still
// run. The total elapsed time is reported as the frame's analysis
// duration, and the frame is released.
func (p *Pool) run(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stop:
			return
		default:
		}

		f, ok := p.gov.TakeNextFrame()
		if !ok {
			select {
			case <-p.stop:
				return
			case <-time.After(idlePoll):
			}
			continue
		}

		start := p.clock.Now()
		for _, a := range p.analyzers {
			_, err := a.Analyze(f)
			if err != nil {
				p.log.Error("analyzer failed", "worker", id, "analyzer", a.Name(), "error", err.Error())
			}
		}
		p.gov.EndAnalysis(p.clock.Now().Sub(start))

		if f.Release != nil {
			f.Release()
		}
	}
}
