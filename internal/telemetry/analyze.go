package telemetry

import (
	"fmt"
	"math"

	"backend-contravento/internal/shared/geo"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Analyze decodes an uploaded track file and assembles the telemetry the
// trip wizard shows: distance, elevation profile, difficulty tier and a
// suggested title. The only failure mode is a decode failure; a track
// without elevation is a valid result with HasElevation=false.
func Analyze(data []byte) (Result, error) {
	track, err := Decode(data)
	if err != nil {
		return Result{}, err
	}
	return AnalyzeTrack(track), nil
}

// AnalyzeTrack assembles telemetry from an already-decoded track, so
// callers that also need the points only parse the upload once.
func AnalyzeTrack(track Track) Result {
	dist := distanceKm(track.Points)
	profile := elevationProfile(track.Points)

	var gain *float64
	if profile != nil {
		gain = &profile.GainM
	}

	return Result{
		// Distance accumulates at full precision; only the reported
		// value is rounded.
		DistanceKm:     math.Round(dist*10) / 10,
		HasElevation:   profile != nil,
		Elevation:      profile,
		Difficulty:     Classify(dist, gain),
		SuggestedTitle: suggestedTitle(track.Name, dist),
		PointCount:     len(track.Points),
		Preview:        preview(track.Points),
	}
}

func distanceKm(points []TrackPoint) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += geo.HaversineKm(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
	}
	return total
}

// elevationProfile returns nil unless every point carries elevation.
func elevationProfile(points []TrackPoint) *ElevationProfile {
	for i := range points {
		if points[i].Elevation == nil {
			return nil
		}
	}
	if len(points) == 0 {
		return nil
	}

	first := *points[0].Elevation
	profile := ElevationProfile{MaxM: first, MinM: first}
	prev := first
	for _, p := range points[1:] {
		elev := *p.Elevation
		delta := elev - prev
		if delta > 0 {
			profile.GainM += delta
		} else {
			profile.LossM += -delta
		}
		if elev > profile.MaxM {
			profile.MaxM = elev
		}
		if elev < profile.MinM {
			profile.MinM = elev
		}
		prev = elev
	}
	return &profile
}

func suggestedTitle(name string, distanceKm float64) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%.1f km ride", distanceKm)
}

// preview builds the GeoJSON line the wizard map draws.
func preview(points []TrackPoint) *geojson.Feature {
	if len(points) < 2 {
		return nil
	}
	line := make(orb.LineString, 0, len(points))
	for _, p := range points {
		line = append(line, orb.Point{p.Lon, p.Lat})
	}
	return geojson.NewFeature(line)
}
