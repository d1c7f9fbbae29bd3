package profile

import "time"

type Profile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	AvatarURL      string    `json:"avatar_url"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	Visibility     string    `json:"visibility"`
	ShowLocation   bool      `json:"show_location"`
	ShowStats      bool      `json:"show_stats"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	TripsCount     int       `json:"trips_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type PrivacySettings struct {
	Visibility   string `json:"visibility"`
	ShowLocation bool   `json:"show_location"`
	ShowStats    bool   `json:"show_stats"`
}

const (
	VisibilityPublic    = "public"
	VisibilityFollowers = "followers"
	VisibilityPrivate   = "private"
)
