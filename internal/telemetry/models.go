package telemetry

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// TrackPoint is one recorded sample along an uploaded route. Elevation is
// nil when the source file carries no elevation for the point.
type TrackPoint struct {
	Lat       float64
	Lon       float64
	Elevation *float64
	Time      time.Time
}

// Track is a decoded track file: the points in file order plus the name the
// file declared, if any.
type Track struct {
	Name   string
	Points []TrackPoint
}

type Difficulty string

const (
	DifficultyEasy          Difficulty = "easy"
	DifficultyModerate      Difficulty = "moderate"
	DifficultyDifficult     Difficulty = "difficult"
	DifficultyVeryDifficult Difficulty = "very_difficult"
)

// ElevationProfile holds the full elevation summary. It exists only when
// every decoded point carried elevation; a route is either fully analyzed
// for elevation or not at all.
type ElevationProfile struct {
	GainM float64 `json:"gain_m"`
	LossM float64 `json:"loss_m"`
	MaxM  float64 `json:"max_m"`
	MinM  float64 `json:"min_m"`
}

// Result is the single record the trip wizard consumes for one upload.
// HasElevation is true exactly when Elevation is non-nil.
type Result struct {
	DistanceKm     float64           `json:"distance_km"`
	HasElevation   bool              `json:"has_elevation"`
	Elevation      *ElevationProfile `json:"elevation,omitempty"`
	Difficulty     Difficulty        `json:"difficulty"`
	SuggestedTitle string            `json:"suggested_title"`
	PointCount     int               `json:"point_count"`
	Preview        *geojson.Feature  `json:"preview,omitempty"`
}
