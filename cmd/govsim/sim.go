/*
DESCRIPTION
  sim.go provides the synthetic pieces of the simulator: a sinusoidal
  load model, analyzers whose latency follows it, a pooled frame buffer
  source, and the key=value variables file reader.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
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
	"bufio"
	"math"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/ausocean/camgov/analyze"
	"github.com/ausocean/camgov/framestore"
	"github.com/ausocean/camgov/governor/config"
	"github.com/ausocean/camgov/sysmon"
)

// jitterFraction is the random per-frame spread on top of the modelled
// latency.
const jitterFraction = 0.2

// loadModel produces a latency that swings sinusoidally around a base
// value, so the governor is pushed through its degrade and recover
// paths over the course of a cycle.
type loadModel struct {
	base   time.Duration
	swing  float64
	period time.Duration
	clock  sysmon.Clock
	start  time.Time
}

func newLoadModel(base time.Duration, swing float64, period time.Duration, clock sysmon.Clock) *loadModel {
	return &loadModel{base: base, swing: swing, period: period, clock: clock, start: clock.Now()}
}

// latency returns the modelled analysis latency at the current point in
// the load cycle.
func (m *loadModel) latency() time.Duration {
	t := m.clock.Now().Sub(m.start).Seconds()
	phase := 2 * math.Pi * t / m.period.Seconds()
	f := 1 + m.swing*(1+math.Sin(phase))/2
	f *= 1 + jitterFraction*(rand.Float64()-0.5)
	return time.Duration(float64(m.base) * f)
}

// simAnalyzer sleeps for the modelled latency and returns a dummy
// result value.
type simAnalyzer struct {
	name string
	load *loadModel
}

func newSimAnalyzer(name string, load *loadModel) *simAnalyzer {
	return &simAnalyzer{name: name, load: load}
}

func (a *simAnalyzer) Name() string { return a.name }

func (a *simAnalyzer) Analyze(f framestore.Frame) (analyze.Result, error) {
	d := a.load.latency()
	time.Sleep(d)
	return analyze.Result{Analyzer: a.name, Value: rand.Float64()}, nil
}

// bufPool recycles frame buffers so the simulator's resident memory
// reflects outstanding frames rather than allocation churn.
var bufPool = map[config.Quality]*sync.Pool{}
var bufPoolMu sync.Mutex

func getFrameBuf(q config.Quality) []byte {
	set := q.Settings()
	// Approximate NV12 frame size.
	size := int(set.Width) * int(set.Height) * 3 / 2

	bufPoolMu.Lock()
	p, ok := bufPool[q]
	if !ok {
		p = &sync.Pool{New: func() interface{} { return make([]byte, size) }}
		bufPool[q] = p
	}
	bufPoolMu.Unlock()
	return p.Get().([]byte)
}

func putFrameBuf(b []byte) {
	bufPoolMu.Lock()
	defer bufPoolMu.Unlock()
	for q, p := range bufPool {
		set := q.Settings()
		if len(b) == int(set.Width)*int(set.Height)*3/2 {
			p.Put(b)
			return
		}
	}
}

// readVars reads a key=value file into a variables map. Blank lines and
// lines starting with # are ignored.
func readVars(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open vars file")
	}
	defer f.Close()

	vars := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errors.Errorf("malformed vars line: %q", line)
		}
		vars[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return vars, errors.Wrap(sc.Err(), "could not scan vars file")
}
