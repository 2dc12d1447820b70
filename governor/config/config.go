/*
NAME
  config.go

DESCRIPTION
  Package config contains the configuration settings for the frame
  admission governor.

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

// Package config contains the configuration settings for the governor.
package config

import (
	"errors"
	"time"

	"github.com/ausocean/utils/logging"
)

// Config provides parameters relevant to a governor instance. A new
// config must be passed to the constructor. Default values for fields
// are defined as consts in variables.go; zero fields are defaulted by
// Validate.
type Config struct {
	// Logger holds an implementation of the logging.Logger interface.
	// This must be set for the governor to work correctly.
	Logger logging.Logger

	// LogLevel is the governor logging verbosity level. Valid values are
	// defined by enums from the logging package: logging.Debug,
	// logging.Info, logging.Warning, logging.Error, logging.Fatal.
	LogLevel int8

	Suppress bool // Holds logger suppression state.

	// TargetFrameRate is the preview frame rate the governor aims to
	// keep up with, in frames per second. The estimated frame rate
	// reported in snapshots is capped at this value.
	TargetFrameRate uint

	// TargetBudget is the per-frame analysis time budget. The adaptive
	// controller trims the quality level to keep the rolling average
	// analysis time near this value.
	TargetBudget time.Duration

	// MaxMemory is the resident memory ceiling in bytes. Readings above
	// this trip the throttling guard; readings above 80% of it raise a
	// periodic warning.
	MaxMemory uint64

	// StoreCapacity is the maximum number of frames held pending
	// analysis.
	StoreCapacity uint

	// Quality is the initial quality level. This defaults to
	// QualityHigh rather than QualityUltra so that startup, when the
	// adaptive controller has no timing data yet, does not begin with a
	// latency spike.
	Quality Quality

	// ReportInterval is the period of the background snapshot report.
	ReportInterval time.Duration

	// Rolling window sizes. AdaptWindow feeds the quality controller,
	// ThrottleWindow feeds the throttling guard, and SnapshotWindow
	// feeds snapshot reporting. The throttle window is deliberately
	// much shorter than the adapt window; the guard is an emergency
	// brake and must react faster than the quality trim.
	AdaptWindow    uint
	ThrottleWindow uint
	SnapshotWindow uint
}

// Validate checks for any errors in the config fields and defaults
// settings if particular parameters have not been defined.
func (c *Config) Validate() error {
	if c.Logger == nil {
		return errors.New("no logger set in config")
	}
	if c.TargetBudget < 0 || c.ReportInterval < 0 {
		return errors.New("negative duration in config")
	}
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}
	return nil
}

// Update takes a map of configuration variable names and their
// corresponding values, parses the string values converting into the
// correct type, and then sets the config struct fields as appropriate.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}

// LogInvalidField logs and defaults a bad or unset config field.
func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}
