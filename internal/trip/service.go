package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"backend-contravento/internal/db"
	"backend-contravento/internal/stream"
	"backend-contravento/internal/telemetry"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrForbidden is returned when a trip's visibility excludes the viewer.
var ErrForbidden = errors.New("trip not visible to viewer")

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

func (s *Service) CreateTrip(ctx context.Context, input Trip) (Trip, error) {
	input.ID = uuid.NewString()
	if input.Visibility == "" {
		input.Visibility = "public"
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (id, title, description, start_date, end_date, distance_km,
		                   elevation_gain_m, elevation_loss_m, has_elevation, difficulty, visibility, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at
	`, input.ID, input.Title, input.Description, input.StartDate, input.EndDate,
		input.DistanceKm, input.ElevationGainM, input.ElevationLossM, input.HasElevation,
		input.Difficulty, input.Visibility, input.CreatedBy)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Trip{}, err
	}

	s.announce(input)
	return input, nil
}

// CreateFromTrack runs the wizard: analyze the uploaded track file, create
// the trip from the telemetry and store the route geometry. The file is
// decoded once; telemetry and the route geometry come from the same pass.
func (s *Service) CreateFromTrack(ctx context.Context, userID, title, visibility string, data []byte) (Trip, telemetry.Result, error) {
	track, err := telemetry.Decode(data)
	if err != nil {
		return Trip{}, telemetry.Result{}, err
	}
	result := telemetry.AnalyzeTrack(track)

	if title == "" {
		title = result.SuggestedTitle
	}
	input := Trip{
		Title:        title,
		DistanceKm:   result.DistanceKm,
		HasElevation: result.HasElevation,
		Difficulty:   string(result.Difficulty),
		Visibility:   visibility,
		CreatedBy:    userID,
	}
	if result.Elevation != nil {
		input.ElevationGainM = result.Elevation.GainM
		input.ElevationLossM = result.Elevation.LossM
	}

	trip, err := s.CreateTrip(ctx, input)
	if err != nil {
		return Trip{}, telemetry.Result{}, err
	}

	if wkt := lineWKT(track.Points); wkt != "" {
		if _, err := s.AddRoute(ctx, Route{TripID: trip.ID, RouteWKT: wkt, UploadedBy: userID}); err != nil {
			return Trip{}, telemetry.Result{}, err
		}
	}
	return trip, result, nil
}

func (s *Service) GetTrip(ctx context.Context, id, viewerID string) (Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, description, start_date, end_date, distance_km,
		       elevation_gain_m, elevation_loss_m, has_elevation, difficulty, visibility, created_by, created_at
		FROM trips WHERE id=$1
	`, id)
	var trip Trip
	if err := row.Scan(&trip.ID, &trip.Title, &trip.Description, &trip.StartDate, &trip.EndDate,
		&trip.DistanceKm, &trip.ElevationGainM, &trip.ElevationLossM, &trip.HasElevation,
		&trip.Difficulty, &trip.Visibility, &trip.CreatedBy, &trip.CreatedAt); err != nil {
		return Trip{}, err
	}

	if trip.CreatedBy == viewerID {
		return trip, nil
	}
	switch trip.Visibility {
	case "private":
		return Trip{}, ErrForbidden
	case "followers":
		var follows bool
		if err := s.db.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM user_follows WHERE follower_id=$1 AND following_id=$2
			)
		`, viewerID, trip.CreatedBy).Scan(&follows); err != nil {
			return Trip{}, err
		}
		if !follows {
			return Trip{}, ErrForbidden
		}
	}
	return trip, nil
}

func (s *Service) UpdateTrip(ctx context.Context, id, userID string, patch Trip) (Trip, error) {
	trip, err := s.GetTrip(ctx, id, userID)
	if err != nil {
		return Trip{}, err
	}
	if trip.CreatedBy != userID {
		return Trip{}, ErrForbidden
	}
	if patch.Title != "" {
		trip.Title = patch.Title
	}
	if patch.Description != "" {
		trip.Description = patch.Description
	}
	if patch.StartDate != nil {
		trip.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		trip.EndDate = patch.EndDate
	}
	if patch.Visibility != "" {
		trip.Visibility = patch.Visibility
	}

	_, err = s.db.Exec(ctx, `
		UPDATE trips
		SET title=$2, description=$3, start_date=$4, end_date=$5, visibility=$6
		WHERE id=$1
	`, trip.ID, trip.Title, trip.Description, trip.StartDate, trip.EndDate, trip.Visibility)
	if err != nil {
		return Trip{}, err
	}
	return trip, nil
}

func (s *Service) DeleteTrip(ctx context.Context, id, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id=$1 AND created_by=$2`, id, userID)
	return err
}

// PublicFeed lists public trips, newest first.
func (s *Service) PublicFeed(ctx context.Context, limit, offset int) ([]Trip, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, title, description, start_date, end_date, distance_km,
		       elevation_gain_m, elevation_loss_m, has_elevation, difficulty, visibility, created_by, created_at
		FROM trips
		WHERE visibility='public'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrips(rows)
}

// FollowingFeed lists the viewer's own trips plus trips of riders they
// follow, excluding private trips of others.
func (s *Service) FollowingFeed(ctx context.Context, userID string, limit, offset int) ([]Trip, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, title, description, start_date, end_date, distance_km,
		       elevation_gain_m, elevation_loss_m, has_elevation, difficulty, visibility, created_by, created_at
		FROM trips
		WHERE created_by=$1
		   OR (created_by IN (SELECT following_id FROM user_follows WHERE follower_id=$1)
		       AND visibility IN ('public','followers'))
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrips(rows)
}

func (s *Service) AddPhoto(ctx context.Context, tripID, url, caption string) (TripPhoto, error) {
	photo := TripPhoto{
		ID:      uuid.NewString(),
		TripID:  tripID,
		URL:     url,
		Caption: caption,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trip_photos (id, trip_id, photo_url, caption)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, photo.ID, photo.TripID, photo.URL, photo.Caption)
	if err := row.Scan(&photo.CreatedAt); err != nil {
		return TripPhoto{}, err
	}
	return photo, nil
}

func (s *Service) Photos(ctx context.Context, tripID string) ([]TripPhoto, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, trip_id, photo_url, caption, created_at
		FROM trip_photos WHERE trip_id=$1
		ORDER BY created_at
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []TripPhoto
	for rows.Next() {
		var p TripPhoto
		if err := rows.Scan(&p.ID, &p.TripID, &p.URL, &p.Caption, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, nil
}

func (s *Service) AddRoute(ctx context.Context, route Route) (Route, error) {
	if route.ID == "" {
		route.ID = uuid.NewString()
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO trip_routes (id, trip_id, route, uploaded_by)
		VALUES ($1,$2, ST_GeogFromText($3), $4)
		RETURNING created_at
	`, route.ID, route.TripID, route.RouteWKT, route.UploadedBy)
	if err := row.Scan(&route.CreatedAt); err != nil {
		return Route{}, err
	}
	return route, nil
}

func (s *Service) Routes(ctx context.Context, tripID string) ([]Route, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, trip_id, ST_AsText(route), uploaded_by, created_at
		FROM trip_routes WHERE trip_id=$1
		ORDER BY created_at DESC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.TripID, &r.RouteWKT, &r.UploadedBy, &r.CreatedAt); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (s *Service) announce(trip Trip) {
	if s.hub == nil || trip.Visibility == "private" {
		return
	}
	payload, _ := json.Marshal(feedEvent{Type: "trip_created", Trip: trip})
	s.hub.Broadcast(trip.CreatedBy, payload)
}

type feedEvent struct {
	Type string `json:"type"`
	Trip Trip   `json:"trip"`
}

func lineWKT(points []telemetry.TrackPoint) string {
	if len(points) < 2 {
		return ""
	}
	var b strings.Builder
	b.WriteString("LINESTRING(")
	for i, p := range points {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%g %g", p.Lon, p.Lat)
	}
	b.WriteByte(')')
	return b.String()
}

func scanTrips(rows pgx.Rows) ([]Trip, error) {
	var trips []Trip
	for rows.Next() {
		var t Trip
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.StartDate, &t.EndDate,
			&t.DistanceKm, &t.ElevationGainM, &t.ElevationLossM, &t.HasElevation,
			&t.Difficulty, &t.Visibility, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}
