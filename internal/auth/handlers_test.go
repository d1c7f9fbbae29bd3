package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func TestAuthHandlersRegisterLoginRefresh(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	svc := NewService("secret", mock)
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), svc)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "rider@example.com", "rider", pgxmock.AnyArg(), "", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	body, _ := json.Marshal(RegisterRequest{Email: "rider@example.com", Username: "rider", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status: %v", err)
	}

	var registered struct {
		Tokens TokenResponse `json:"tokens"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		t.Fatalf("decode register: %v", err)
	}

	mock.ExpectQuery(`SELECT user_id, expires_at`).
		WithArgs(registered.Tokens.RefreshToken).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "expires_at"}).
			AddRow(claimsUserID(t, svc, registered.Tokens.RefreshToken), time.Now().Add(time.Hour)))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	refreshBody, _ := json.Marshal(RefreshRequest{RefreshToken: registered.Tokens.RefreshToken})
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(refreshBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil)
	req.Header.Set("Authorization", "Bearer "+registered.Tokens.AccessToken)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status: %v", err)
	}
}

func claimsUserID(t *testing.T, svc *Service, token string) string {
	t.Helper()
	claims, err := svc.parseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	return claims.UserID
}

func TestAuthHandlersBadRequests(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("secret", nil))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for empty login")
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for empty refresh")
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized without token")
	}
}
