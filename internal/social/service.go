package social

import (
	"context"
	"errors"

	"backend-contravento/internal/db"

	"github.com/jackc/pgx/v5"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Follow is idempotent; following yourself is rejected.
func (s *Service) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return errors.New("cannot follow yourself")
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO user_follows (follower_id, following_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, followerID, followingID)
	return err
}

func (s *Service) Unfollow(ctx context.Context, followerID, followingID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM user_follows
		WHERE follower_id=$1 AND following_id=$2
	`, followerID, followingID)
	return err
}

func (s *Service) Followers(ctx context.Context, userID string) ([]FollowUser, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.username, u.full_name, u.avatar_url, f.created_at
		FROM user_follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id=$1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (s *Service) Following(ctx context.Context, userID string) ([]FollowUser, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.id, u.username, u.full_name, u.avatar_url, f.created_at
		FROM user_follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id=$1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (s *Service) Counts(ctx context.Context, userID string) (Counts, error) {
	var counts Counts
	err := s.db.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM user_follows WHERE following_id=$1),
		       (SELECT COUNT(*) FROM user_follows WHERE follower_id=$1)
	`, userID).Scan(&counts.Followers, &counts.Following)
	return counts, err
}

func scanUsers(rows pgx.Rows) ([]FollowUser, error) {
	var users []FollowUser
	for rows.Next() {
		var u FollowUser
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.AvatarURL, &u.Since); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
