package utils

import (
	"math"
	"testing"
)

func TestCalculateHaversineDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		{"same point", 18.5204, 73.8567, 18.5204, 73.8567, 0, 0.001},
		{"across town", 18.5204, 73.8567, 18.6000, 73.9000, 9900, 300},
		{"pune to mumbai", 18.5204, 73.8567, 19.0760, 72.8777, 120000, 5000},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := CalculateHaversineDistance(c.lat1, c.lon1, c.lat2, c.lon2)
			if math.Abs(got-c.want) > c.tolerance {
				t.Errorf("distance = %.1f m, want %.1f ± %.1f", got, c.want, c.tolerance)
			}
		})
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := CalculateHaversineDistance(18.5204, 73.8567, 19.0760, 72.8777)
	b := CalculateHaversineDistance(19.0760, 72.8777, 18.5204, 73.8567)
	if math.Abs(a-b) > 0.001 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}
