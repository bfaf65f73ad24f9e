package geo

import (
	"math"
	"testing"
)

func TestDistanceKmKnownPairs(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		tolKm                  float64
	}{
		{"paris-london", 48.8566, 2.3522, 51.5074, -0.1278, 343.5, 1.0},
		{"ny-la", 40.7128, -74.0060, 34.0522, -118.2437, 3935.7, 5.0},
		{"one-degree-lat", 0, 0, 1, 0, 111.19, 0.1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := DistanceKm(c.lat1, c.lon1, c.lat2, c.lon2)
			if math.Abs(got-c.wantKm) > c.tolKm {
				t.Errorf("DistanceKm = %.2f, want %.2f ± %.1f", got, c.wantKm, c.tolKm)
			}
		})
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{48.8566, 2.3522, 51.5074, -0.1278},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{10, -170, -10, 170},
	}
	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1], p[2], p[3])
		ba := DistanceKm(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestDistanceKmIdenticalPoints(t *testing.T) {
	if d := DistanceKm(45.5, -73.6, 45.5, -73.6); d != 0 {
		t.Errorf("identical points: got %v, want 0", d)
	}
}
