package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReverseGeocodeCaching(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("format") != "jsonv2" {
			t.Errorf("expected jsonv2 format, got %s", r.URL.Query().Get("format"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"display_name": "Casa de Campo, Madrid, Spain",
			"address": {"city": "Madrid", "state": "Community of Madrid", "country": "Spain"}
		}`))
	}))
	defer server.Close()

	g := NewGeocoder(server.URL)

	place, err := g.Reverse(context.Background(), 40.4168, -3.7038)
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if place.City != "Madrid" || place.Country != "Spain" {
		t.Fatalf("unexpected place: %+v", place)
	}

	// A second lookup for the same rounded coordinates must hit the cache.
	if _, err := g.Reverse(context.Background(), 40.41681, -3.70379); err != nil {
		t.Fatalf("cached reverse: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls)
	}

	// A materially different point goes upstream again.
	if _, err := g.Reverse(context.Background(), 41.3874, 2.1686); err != nil {
		t.Fatalf("second reverse: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", calls)
	}
}

func TestReverseGeocodeTownFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"display_name": "Cercedilla, Madrid, Spain",
			"address": {"town": "Cercedilla", "state": "Community of Madrid", "country": "Spain"}
		}`))
	}))
	defer server.Close()

	g := NewGeocoder(server.URL)
	place, err := g.Reverse(context.Background(), 40.7397, -4.0563)
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if place.City != "Cercedilla" {
		t.Fatalf("expected town fallback, got %q", place.City)
	}
}

func TestReverseGeocodeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := NewGeocoder(server.URL)
	if _, err := g.Reverse(context.Background(), 40.0, -3.0); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
