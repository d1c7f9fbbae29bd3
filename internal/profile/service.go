package profile

import (
	"context"
	"errors"

	"backend-contravento/internal/db"
)

// ErrPrivate is returned when the viewer is not allowed to see a profile.
var ErrPrivate = errors.New("profile is private")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// GetProfile loads a rider profile by username and enforces the owner's
// privacy settings against the viewer.
func (s *Service) GetProfile(ctx context.Context, username, viewerID string) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT u.id, u.username, u.full_name, u.avatar_url, COALESCE(u.bio,''), COALESCE(u.location,''),
		       COALESCE(u.visibility,'public'), COALESCE(u.show_location,true), COALESCE(u.show_stats,true), u.created_at,
		       (SELECT COUNT(*) FROM user_follows WHERE following_id=u.id),
		       (SELECT COUNT(*) FROM user_follows WHERE follower_id=u.id),
		       (SELECT COUNT(*) FROM trips WHERE created_by=u.id)
		FROM users u WHERE u.username=$1
	`, username)

	var p Profile
	if err := row.Scan(&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.Bio, &p.Location,
		&p.Visibility, &p.ShowLocation, &p.ShowStats, &p.CreatedAt,
		&p.FollowersCount, &p.FollowingCount, &p.TripsCount); err != nil {
		return Profile{}, err
	}

	if viewerID == p.ID {
		return p, nil
	}

	switch p.Visibility {
	case VisibilityPrivate:
		return Profile{}, ErrPrivate
	case VisibilityFollowers:
		follows, err := s.isFollower(ctx, viewerID, p.ID)
		if err != nil {
			return Profile{}, err
		}
		if !follows {
			return Profile{}, ErrPrivate
		}
	}

	if !p.ShowLocation {
		p.Location = ""
	}
	if !p.ShowStats {
		p.FollowersCount = 0
		p.FollowingCount = 0
		p.TripsCount = 0
	}
	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, patch Profile) (Profile, error) {
	_, err := s.db.Exec(ctx, `
		UPDATE users
		SET full_name=COALESCE(NULLIF($2,''), full_name),
		    avatar_url=COALESCE(NULLIF($3,''), avatar_url),
		    bio=COALESCE(NULLIF($4,''), bio),
		    location=COALESCE(NULLIF($5,''), location),
		    updated_at=now()
		WHERE id=$1
	`, userID, patch.FullName, patch.AvatarURL, patch.Bio, patch.Location)
	if err != nil {
		return Profile{}, err
	}
	return s.getByID(ctx, userID)
}

func (s *Service) UpdatePrivacy(ctx context.Context, userID string, settings PrivacySettings) error {
	switch settings.Visibility {
	case VisibilityPublic, VisibilityFollowers, VisibilityPrivate:
	default:
		return errors.New("invalid visibility")
	}
	_, err := s.db.Exec(ctx, `
		UPDATE users
		SET visibility=$2, show_location=$3, show_stats=$4, updated_at=now()
		WHERE id=$1
	`, userID, settings.Visibility, settings.ShowLocation, settings.ShowStats)
	return err
}

func (s *Service) getByID(ctx context.Context, userID string) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, full_name, avatar_url, COALESCE(bio,''), COALESCE(location,''),
		       COALESCE(visibility,'public'), COALESCE(show_location,true), COALESCE(show_stats,true), created_at
		FROM users WHERE id=$1
	`, userID)
	var p Profile
	if err := row.Scan(&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.Bio, &p.Location,
		&p.Visibility, &p.ShowLocation, &p.ShowStats, &p.CreatedAt); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) isFollower(ctx context.Context, followerID, followingID string) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_follows WHERE follower_id=$1 AND following_id=$2
		)
	`, followerID, followingID).Scan(&ok)
	return ok, err
}
