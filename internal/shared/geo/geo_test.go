package geo

import "testing"

func TestHaversineKm(t *testing.T) {
	// Madrid (40.4168, -3.7038) to Toledo (39.8628, -4.0273) ~ 67 km
	d := HaversineKm(40.4168, -3.7038, 39.8628, -4.0273)
	if d < 55 || d > 80 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineKmZero(t *testing.T) {
	if d := HaversineKm(40.0, -3.0, 40.0, -3.0); d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}
}
