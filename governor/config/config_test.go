/*
DESCRIPTION
  config_test.go provides testing for the Config struct methods
  (Validate and Update) and the quality level transitions.

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
	"testing"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/google/go-cmp/cmp"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestValidate(t *testing.T) {
	dl := &dumbLogger{}

	want := Config{
		Logger:          dl,
		TargetFrameRate: defaultTargetFrameRate,
		TargetBudget:    defaultTargetBudget,
		MaxMemory:       defaultMaxMemory,
		StoreCapacity:   defaultStoreCapacity,
		Quality:         defaultQuality,
		ReportInterval:  defaultReportInterval,
		AdaptWindow:     defaultAdaptWindow,
		ThrottleWindow:  defaultThrottleWindow,
		SnapshotWindow:  defaultSnapshotWindow,
	}

	got := Config{Logger: dl}
	err := (&got).Validate()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if !cmp.Equal(got, want) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "no logger", cfg: Config{}},
		{name: "negative budget", cfg: Config{Logger: &dumbLogger{}, TargetBudget: -time.Millisecond}},
		{name: "negative report interval", cfg: Config{Logger: &dumbLogger{}, ReportInterval: -time.Second}},
	}

	for _, test := range tests {
		if err := test.cfg.Validate(); err == nil {
			t.Errorf("%s: expected error from Validate", test.name)
		}
	}
}

func TestUpdate(t *testing.T) {
	updateMap := map[string]string{
		"logging":         "Debug",
		"TargetFrameRate": "24",
		"TargetBudget":    "40",
		"MaxMemory":       "104857600",
		"StoreCapacity":   "8",
		"Quality":         "Medium",
		"ReportInterval":  "10",
		"AdaptWindow":     "20",
		"ThrottleWindow":  "5",
		"SnapshotWindow":  "50",
		"Suppress":        "true",
	}

	dl := &dumbLogger{}

	want := Config{
		Logger:          dl,
		LogLevel:        logging.Debug,
		TargetFrameRate: 24,
		TargetBudget:    40 * time.Millisecond,
		MaxMemory:       100 << 20,
		StoreCapacity:   8,
		Quality:         QualityMedium,
		ReportInterval:  10 * time.Second,
		AdaptWindow:     20,
		ThrottleWindow:  5,
		SnapshotWindow:  50,
		Suppress:        true,
	}

	got := Config{Logger: dl}
	got.Update(updateMap)
	if !cmp.Equal(want, got) {
		t.Errorf("configs not equal\nwant: %v\ngot: %v", want, got)
	}
}

func TestQualityTransitions(t *testing.T) {
	tests := []struct {
		q        Quality
		up, down Quality
	}{
		{QualityLow, QualityMedium, QualityLow},
		{QualityMedium, QualityHigh, QualityLow},
		{QualityHigh, QualityUltra, QualityMedium},
		{QualityUltra, QualityUltra, QualityHigh},
	}

	for _, test := range tests {
		if got := test.q.Up(); got != test.up {
			t.Errorf("%v.Up() = %v, want %v", test.q, got, test.up)
		}
		if got := test.q.Down(); got != test.down {
			t.Errorf("%v.Down() = %v, want %v", test.q, got, test.down)
		}
	}
}

func TestQualitySettingsOrdered(t *testing.T) {
	// Higher levels admit more concurrency and shorter intervals.
	for q := QualityLow; q < QualityUltra; q++ {
		lo, hi := q.Settings(), q.Up().Settings()
		if hi.MaxAnalyzers <= lo.MaxAnalyzers {
			t.Errorf("%v max analyzers %d not above %v's %d", q.Up(), hi.MaxAnalyzers, q, lo.MaxAnalyzers)
		}
		if hi.MinInterval >= lo.MinInterval {
			t.Errorf("%v min interval %v not below %v's %v", q.Up(), hi.MinInterval, q, lo.MinInterval)
		}
	}
}
