package telemetry

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/tkrajina/gpxgo/gpx"
	"github.com/tormoder/fit"
)

// ErrInvalidTrackFile is returned when an upload cannot be parsed as a
// supported track file or parses to zero usable points. No partial
// recovery is attempted.
var ErrInvalidTrackFile = errors.New("invalid track file")

// Decode parses raw track-file bytes into an ordered point sequence.
// GPX and FIT are supported; anything else fails closed.
func Decode(data []byte) (Track, error) {
	if len(data) == 0 {
		return Track{}, fmt.Errorf("%w: empty upload", ErrInvalidTrackFile)
	}
	if isFIT(data) {
		return decodeFIT(data)
	}
	return decodeGPX(data)
}

// FIT file headers carry ".FIT" at bytes 8-11.
func isFIT(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT"))
}

func decodeGPX(data []byte) (Track, error) {
	g, err := gpx.ParseBytes(data)
	if err != nil {
		return Track{}, fmt.Errorf("%w: %v", ErrInvalidTrackFile, err)
	}

	track := Track{Name: g.Name}
	for _, trk := range g.Tracks {
		if track.Name == "" {
			track.Name = trk.Name
		}
		for _, seg := range trk.Segments {
			for i := range seg.Points {
				track.Points = append(track.Points, fromGPXPoint(&seg.Points[i]))
			}
		}
	}

	// Planner exports sometimes carry only a <rte> block.
	if len(track.Points) == 0 {
		for _, rte := range g.Routes {
			if track.Name == "" {
				track.Name = rte.Name
			}
			for i := range rte.Points {
				track.Points = append(track.Points, fromGPXPoint(&rte.Points[i]))
			}
		}
	}

	if len(track.Points) == 0 {
		return Track{}, fmt.Errorf("%w: no track points", ErrInvalidTrackFile)
	}
	return track, nil
}

func fromGPXPoint(p *gpx.GPXPoint) TrackPoint {
	tp := TrackPoint{Lat: p.Latitude, Lon: p.Longitude, Time: p.Timestamp}
	if p.Elevation.NotNull() {
		elev := p.Elevation.Value()
		tp.Elevation = &elev
	}
	return tp
}

func decodeFIT(data []byte) (Track, error) {
	f, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return Track{}, fmt.Errorf("%w: %v", ErrInvalidTrackFile, err)
	}
	activity, err := f.Activity()
	if err != nil {
		return Track{}, fmt.Errorf("%w: %v", ErrInvalidTrackFile, err)
	}

	var track Track
	for _, rec := range activity.Records {
		lat := rec.PositionLat.Degrees()
		lon := rec.PositionLong.Degrees()
		if math.IsNaN(lat) || math.IsNaN(lon) {
			continue
		}
		tp := TrackPoint{Lat: lat, Lon: lon, Time: rec.Timestamp}
		if alt := rec.GetAltitudeScaled(); !math.IsNaN(alt) {
			elev := alt
			tp.Elevation = &elev
		}
		track.Points = append(track.Points, tp)
	}

	if len(track.Points) == 0 {
		return Track{}, fmt.Errorf("%w: no position records", ErrInvalidTrackFile)
	}
	return track, nil
}
