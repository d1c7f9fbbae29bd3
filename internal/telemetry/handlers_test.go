package telemetry

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/telemetry"), func(c *fiber.Ctx) error { return c.Next() })
	return app
}

func TestAnalyzeHandlerMultipart(t *testing.T) {
	app := newTestApp()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("track", "ride.gpx")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write([]byte(twoPointGPX)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/telemetry/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("analyze status: %v", err)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !result.HasElevation || result.Elevation == nil || result.Elevation.GainM != 50 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestAnalyzeHandlerRawBody(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/telemetry/analyze", strings.NewReader(twoPointGPX))
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("analyze status: %v", err)
	}
}

func TestAnalyzeHandlerInvalidFile(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/telemetry/analyze", strings.NewReader("corrupt"))
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected unprocessable entity, got %v", resp.StatusCode)
	}
}
