package trip

import "time"

type Trip struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	DistanceKm     float64    `json:"distance_km"`
	ElevationGainM float64    `json:"elevation_gain_m"`
	ElevationLossM float64    `json:"elevation_loss_m"`
	HasElevation   bool       `json:"has_elevation"`
	Difficulty     string     `json:"difficulty"`
	Visibility     string     `json:"visibility"`
	CreatedBy      string     `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
}

type TripPhoto struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	URL       string    `json:"photo_url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

type Route struct {
	ID         string    `json:"id"`
	TripID     string    `json:"trip_id"`
	RouteWKT   string    `json:"route"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
