/*
DESCRIPTION
  govsim exercises the frame governor against a synthetic capture
  source and synthetic analyzers whose latency drifts over time, so
  that admission, throttling and adaptive quality behaviour can be
  observed without camera hardware. Governor variables are hot-reloaded
  from a key=value file, and a snapshot of governor state is exported
  as prometheus metrics.

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

// Package main is a simulator for the frame governor.
package main

import (
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/camgov/analyze"
	"github.com/ausocean/camgov/framestore"
	"github.com/ausocean/camgov/governor"
	"github.com/ausocean/camgov/governor/config"
	"github.com/ausocean/camgov/sysmon"
	"github.com/ausocean/utils/logging"
)

// Current software version.
const version = "v0.1.0"

// Logging configuration.
const (
	logPath      = "/var/log/govsim/govsim.log"
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

// Misc constants.
const (
	pkg             = "govsim: "
	metricsInterval = time.Second
	keyframeEvery   = 30
)

func main() {
	var (
		varsPath    = flag.String("vars", "", "path to key=value governor variables file, watched for changes")
		metricsAddr = flag.String("metrics", ":2112", "address to serve prometheus metrics on")
		workers     = flag.Int("workers", 4, "analyzer pool worker count")
		baseLatency = flag.Duration("latency", 20*time.Millisecond, "base analysis latency per frame")
		swing       = flag.Float64("swing", 1.5, "fractional latency swing over a load cycle")
		period      = flag.Duration("period", 2*time.Minute, "load cycle period")
	)
	flag.Parse()

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}

	// Create logger that we call methods on to log, which in turn writes
	// to the lumberjack logger and stdout.
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stdout), logSuppress)

	log.Info("starting govsim", "version", version)

	clock := sysmon.SystemClock{}
	g, err := governor.New(config.Config{Logger: log}, clock, memProber(log))
	if err != nil {
		log.Fatal(pkg + "could not create governor: " + err.Error())
	}

	if *varsPath != "" {
		vars, err := readVars(*varsPath)
		if err != nil {
			log.Fatal(pkg + "could not read vars file: " + err.Error())
		}
		err = g.Update(vars)
		if err != nil {
			log.Fatal(pkg + "could not apply vars: " + err.Error())
		}
	}

	load := newLoadModel(*baseLatency, *swing, *period, clock)
	pool, err := analyze.NewPool(*workers, g, []analyze.Analyzer{
		newSimAnalyzer("exposure", load),
		newSimAnalyzer("focus", load),
		newSimAnalyzer("motion", load),
	}, clock, log)
	if err != nil {
		log.Fatal(pkg + "could not create analyzer pool: " + err.Error())
	}

	g.Start()
	pool.Start()

	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go capture(g, clock, log, stop, &wg)

	wg.Add(1)
	go exportMetrics(g, log, stop, &wg)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		err := http.ListenAndServe(*metricsAddr, nil)
		if err != nil {
			log.Error(pkg+"metrics server stopped", "error", err.Error())
		}
	}()
	log.Info("serving metrics", "addr", *metricsAddr)

	if *varsPath != "" {
		wg.Add(1)
		go watchVars(*varsPath, g, log, stop, &wg)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Info("got signal, shutting down", "signal", s.String())

	close(stop)
	wg.Wait()
	pool.Stop()
	g.Stop()
}

// capture emulates a camera delivering frames at the configured target
// rate. Each frame is offered to the governor; rejected frames are
// recorded as drops. Every keyframeEvery-th frame is marked high
// priority the way an encoder marks keyframes.
func capture(g *governor.Governor, clock sysmon.Clock, log logging.Logger, stop chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	var seq uint64
	for {
		interval := time.Second / time.Duration(g.Config().TargetFrameRate)
		select {
		case <-stop:
			return
		case <-time.After(interval):
		}

		seq++
		now := clock.Now()
		if !g.ShouldAdmit(now) {
			g.RecordDrop()
			continue
		}
		g.BeginAdmission(now)

		pr := framestore.PriorityNormal
		if seq%keyframeEvery == 0 {
			pr = framestore.PriorityHigh
		}
		buf := getFrameBuf(g.Quality())
		g.AddFrame(framestore.Frame{
			Handle:    buf,
			Timestamp: now,
			Priority:  pr,
			Release:   func() { putFrameBuf(buf) },
		})
	}
}

// watchVars re-applies the variables file whenever it changes. Update
// stops a running governor, so it is restarted after a successful
// reload.
func watchVars(path string, g *governor.Governor, log logging.Logger, stop chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error(pkg+"could not create watcher, vars will not reload", "error", err.Error())
		return
	}
	defer w.Close()

	err = w.Add(path)
	if err != nil {
		log.Error(pkg+"could not watch vars file", "path", path, "error", err.Error())
		return
	}

	for {
		select {
		case <-stop:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			vars, err := readVars(path)
			if err != nil {
				log.Warning("could not re-read vars file", "error", err.Error())
				continue
			}
			err = g.Update(vars)
			if err != nil {
				log.Warning("could not apply updated vars", "error", err.Error())
				continue
			}
			g.Start()
			log.Info("vars reloaded", "path", path)

			// Editors replace rather than write in place; re-add the
			// path so subsequent saves are still seen.
			if ev.Has(fsnotify.Create) {
				continue
			}
			w.Remove(path)
			err = w.Add(path)
			if err != nil {
				log.Warning("could not re-watch vars file", "error", err.Error())
				return
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warning("vars watcher error", "error", err.Error())
		}
	}
}
