package social

import "time"

type Follow struct {
	FollowerID  string `json:"follower_id"`
	FollowingID string `json:"following_id"`
}

type FollowUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	Since     time.Time `json:"since"`
}

type Counts struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}
