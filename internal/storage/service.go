package storage

import (
	"context"
	"strings"
	"time"

	"backend-contravento/internal/db"

	"github.com/google/uuid"
)

type Object struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	URL       string    `json:"url"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	db      db.Querier
	baseURL string
}

func NewService(q db.Querier, baseURL string) *Service {
	return &Service{db: q, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *Service) SaveObject(ctx context.Context, userID, fileName, kind string) (Object, error) {
	obj := Object{
		ID:        uuid.NewString(),
		UserID:    userID,
		URL:       s.baseURL + "/" + fileName,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, user_id, url, kind)
		VALUES ($1,$2,$3,$4)
	`, obj.ID, obj.UserID, obj.URL, obj.Kind)
	if err != nil {
		return Object{}, err
	}
	return obj, nil
}

func (s *Service) Objects(ctx context.Context, userID string) ([]Object, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, url, kind, created_at
		FROM storage_objects
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	objects := []Object{}
	for rows.Next() {
		var obj Object
		if err := rows.Scan(&obj.ID, &obj.UserID, &obj.URL, &obj.Kind, &obj.CreatedAt); err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, rows.Err()
}
