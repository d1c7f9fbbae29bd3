package location

import (
	"context"
	"fmt"

	"backend-contravento/internal/db"
)

type Service struct {
	db       db.Querier
	geocoder *Geocoder
}

func NewService(q db.Querier, geocoder *Geocoder) *Service {
	return &Service{db: q, geocoder: geocoder}
}

// SaveLocation stores a named point for the user (home base, favourite
// cafe, trailhead). The geography column is derived from lat/lng so the
// nearby search can use the spatial index.
func (s *Service) SaveLocation(ctx context.Context, userID, name string, lat, lng float64) (SavedLocation, error) {
	var loc SavedLocation
	err := s.db.QueryRow(ctx, `
		INSERT INTO saved_locations (user_id, name, lat, lng, geog)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($4, $3), 4326)::geography)
		RETURNING id, user_id, name, lat, lng, created_at
	`, userID, name, lat, lng).Scan(&loc.ID, &loc.UserID, &loc.Name, &loc.Lat, &loc.Lng, &loc.CreatedAt)
	if err != nil {
		return SavedLocation{}, fmt.Errorf("save location: %w", err)
	}
	return loc, nil
}

func (s *Service) Locations(ctx context.Context, userID string) ([]SavedLocation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, lat, lng, created_at
		FROM saved_locations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := []SavedLocation{}
	for rows.Next() {
		var loc SavedLocation
		if err := rows.Scan(&loc.ID, &loc.UserID, &loc.Name, &loc.Lat, &loc.Lng, &loc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

// Nearby returns the user's saved locations within radiusKm of the given
// point, closest first.
func (s *Service) Nearby(ctx context.Context, userID string, lat, lng, radiusKm float64) ([]SavedLocation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, lat, lng, created_at
		FROM saved_locations
		WHERE user_id = $1
		  AND ST_DWithin(geog, ST_SetSRID(ST_MakePoint($3, $2), 4326)::geography, $4)
		ORDER BY geog <-> ST_SetSRID(ST_MakePoint($3, $2), 4326)::geography
	`, userID, lat, lng, radiusKm*1000)
	if err != nil {
		return nil, fmt.Errorf("nearby locations: %w", err)
	}
	defer rows.Close()

	locations := []SavedLocation{}
	for rows.Next() {
		var loc SavedLocation
		if err := rows.Scan(&loc.ID, &loc.UserID, &loc.Name, &loc.Lat, &loc.Lng, &loc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (s *Service) ReverseGeocode(ctx context.Context, lat, lng float64) (Place, error) {
	return s.geocoder.Reverse(ctx, lat, lng)
}
