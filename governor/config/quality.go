/*
DESCRIPTION
  quality.go defines the ordered analysis quality levels and the fixed
  settings bundle each level carries.

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

import "time"

// Quality represents an analysis quality level. Levels are strictly
// ordered; the adaptive controller only ever moves between adjacent
// levels.
type Quality int

// The analysis quality levels, lowest first. The zero value is not a
// valid level so that an unset config field can be detected and
// defaulted.
const (
	QualityLow Quality = iota + 1
	QualityMedium
	QualityHigh
	QualityUltra
)

// QualitySettings is the fixed configuration a quality level carries:
// the resolution frames are downsampled to before analysis, the number
// of analyses that may run concurrently, and the minimum interval
// between admitted frames.
type QualitySettings struct {
	Width        uint
	Height       uint
	MaxAnalyzers int
	MinInterval  time.Duration
}

var qualitySettings = [QualityUltra + 1]QualitySettings{
	QualityLow:    {Width: 640, Height: 360, MaxAnalyzers: 1, MinInterval: 200 * time.Millisecond},
	QualityMedium: {Width: 960, Height: 540, MaxAnalyzers: 2, MinInterval: 100 * time.Millisecond},
	QualityHigh:   {Width: 1280, Height: 720, MaxAnalyzers: 3, MinInterval: 50 * time.Millisecond},
	QualityUltra:  {Width: 1920, Height: 1080, MaxAnalyzers: 4, MinInterval: 33 * time.Millisecond},
}

// Settings returns the configuration bundle for the level. Out of range
// levels return the QualityLow settings.
func (q Quality) Settings() QualitySettings {
	if !q.Valid() {
		return qualitySettings[QualityLow]
	}
	return qualitySettings[q]
}

// Up returns the next level up, or the same level at QualityUltra.
func (q Quality) Up() Quality {
	if q >= QualityUltra {
		return QualityUltra
	}
	return q + 1
}

// Down returns the next level down, or the same level at QualityLow.
func (q Quality) Down() Quality {
	if q <= QualityLow {
		return QualityLow
	}
	return q - 1
}

// Valid reports whether q is one of the defined levels.
func (q Quality) Valid() bool {
	return q >= QualityLow && q <= QualityUltra
}

// String implements fmt.Stringer.
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "Low"
	case QualityMedium:
		return "Medium"
	case QualityHigh:
		return "High"
	case QualityUltra:
		return "Ultra"
	}
	return "Unknown"
}
