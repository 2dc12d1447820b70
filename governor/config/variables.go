/*
DESCRIPTION
  variables.go contains a list of structs that provide a variable Name,
  type in a string format, a function for updating the variable in the
  Config struct from a string, and finally, a validation function to
  check the validity of the corresponding field value in the Config.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"strconv"
	"time"

	"github.com/ausocean/utils/logging"
)

// Config map keys.
const (
	KeyLogging         = "logging"
	KeyTargetFrameRate = "TargetFrameRate"
	KeyTargetBudget    = "TargetBudget"
	KeyMaxMemory       = "MaxMemory"
	KeyStoreCapacity   = "StoreCapacity"
	KeyQuality         = "Quality"
	KeyReportInterval  = "ReportInterval"
	KeyAdaptWindow     = "AdaptWindow"
	KeyThrottleWindow  = "ThrottleWindow"
	KeySnapshotWindow  = "SnapshotWindow"
	KeySuppress        = "Suppress"
)

// Config map parameter types.
const (
	typeString = "string"
	typeUint   = "uint"
	typeBool   = "bool"
)

// Default variable values.
const (
	defaultVerbosity       = logging.Error
	defaultTargetFrameRate = 30
	defaultTargetBudget    = 33 * time.Millisecond
	defaultMaxMemory       = 200 << 20 // 200MB.
	defaultStoreCapacity   = 5
	defaultQuality         = QualityHigh
	defaultReportInterval  = 5 * time.Second
	defaultAdaptWindow     = 30
	defaultThrottleWindow  = 10
	defaultSnapshotWindow  = 100
)

// Variables describes the variables that can be used for governor
// control. These structs provide the name and type of variable, a
// function for updating this variable in a Config, and a function for
// validating the value of the variable.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name: KeyLogging,
		Type: typeString,
		Update: func(c *Config, v string) {
			switch v {
			case "Debug":
				c.LogLevel = logging.Debug
			case "Info":
				c.LogLevel = logging.Info
			case "Warning":
				c.LogLevel = logging.Warning
			case "Error":
				c.LogLevel = logging.Error
			case "Fatal":
				c.LogLevel = logging.Fatal
			default:
				c.LogInvalidField(KeyLogging, defaultVerbosity)
				c.LogLevel = defaultVerbosity
			}
		},
	},
	{
		Name:   KeyTargetFrameRate,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.TargetFrameRate = parseUint(c, KeyTargetFrameRate, v) },
		Validate: func(c *Config) {
			if c.TargetFrameRate == 0 {
				c.LogInvalidField(KeyTargetFrameRate, defaultTargetFrameRate)
				c.TargetFrameRate = defaultTargetFrameRate
			}
		},
	},
	{
		Name: KeyTargetBudget,
		Type: typeUint,
		Update: func(c *Config, v string) {
			// Value is given in milliseconds.
			c.TargetBudget = time.Duration(parseUint(c, KeyTargetBudget, v)) * time.Millisecond
		},
		Validate: func(c *Config) {
			if c.TargetBudget <= 0 {
				c.LogInvalidField(KeyTargetBudget, defaultTargetBudget)
				c.TargetBudget = defaultTargetBudget
			}
		},
	},
	{
		Name: KeyMaxMemory,
		Type: typeUint,
		Update: func(c *Config, v string) {
			p, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				c.Logger.Warning("invalid MaxMemory param", "value", v)
				return
			}
			c.MaxMemory = p
		},
		Validate: func(c *Config) {
			if c.MaxMemory == 0 {
				c.LogInvalidField(KeyMaxMemory, defaultMaxMemory)
				c.MaxMemory = defaultMaxMemory
			}
		},
	},
	{
		Name:   KeyStoreCapacity,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.StoreCapacity = parseUint(c, KeyStoreCapacity, v) },
		Validate: func(c *Config) {
			if c.StoreCapacity == 0 {
				c.LogInvalidField(KeyStoreCapacity, defaultStoreCapacity)
				c.StoreCapacity = defaultStoreCapacity
			}
		},
	},
	{
		Name: KeyQuality,
		Type: typeString,
		Update: func(c *Config, v string) {
			switch v {
			case "Low":
				c.Quality = QualityLow
			case "Medium":
				c.Quality = QualityMedium
			case "High":
				c.Quality = QualityHigh
			case "Ultra":
				c.Quality = QualityUltra
			default:
				c.LogInvalidField(KeyQuality, defaultQuality.String())
				c.Quality = defaultQuality
			}
		},
		Validate: func(c *Config) {
			if !c.Quality.Valid() {
				c.LogInvalidField(KeyQuality, defaultQuality.String())
				c.Quality = defaultQuality
			}
		},
	},
	{
		Name: KeyReportInterval,
		Type: typeUint,
		Update: func(c *Config, v string) {
			// Value is given in seconds.
			c.ReportInterval = time.Duration(parseUint(c, KeyReportInterval, v)) * time.Second
		},
		Validate: func(c *Config) {
			if c.ReportInterval <= 0 {
				c.LogInvalidField(KeyReportInterval, defaultReportInterval)
				c.ReportInterval = defaultReportInterval
			}
		},
	},
	{
		Name:   KeyAdaptWindow,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.AdaptWindow = parseUint(c, KeyAdaptWindow, v) },
		Validate: func(c *Config) {
			if c.AdaptWindow == 0 {
				c.LogInvalidField(KeyAdaptWindow, defaultAdaptWindow)
				c.AdaptWindow = defaultAdaptWindow
			}
		},
	},
	{
		Name:   KeyThrottleWindow,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.ThrottleWindow = parseUint(c, KeyThrottleWindow, v) },
		Validate: func(c *Config) {
			if c.ThrottleWindow == 0 {
				c.LogInvalidField(KeyThrottleWindow, defaultThrottleWindow)
				c.ThrottleWindow = defaultThrottleWindow
			}
		},
	},
	{
		Name:   KeySnapshotWindow,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.SnapshotWindow = parseUint(c, KeySnapshotWindow, v) },
		Validate: func(c *Config) {
			if c.SnapshotWindow == 0 {
				c.LogInvalidField(KeySnapshotWindow, defaultSnapshotWindow)
				c.SnapshotWindow = defaultSnapshotWindow
			}
		},
	},
	{
		Name: KeySuppress,
		Type: typeBool,
		Update: func(c *Config, v string) {
			switch v {
			case "true":
				c.Suppress = true
			case "false":
				c.Suppress = false
			default:
				c.Logger.Warning("invalid Suppress param", "value", v)
			}
		},
	},
}

// parseUint parses v as a uint, logging a warning and returning 0 on
// failure; Validate re-defaults zeroed fields afterwards.
func parseUint(c *Config, name, v string) uint {
	p, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		c.Logger.Warning("invalid "+name+" param", "value", v)
		return 0
	}
	return uint(p)
}
