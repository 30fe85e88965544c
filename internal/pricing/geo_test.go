package pricing

import (
	"math"
	"testing"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Coordinates
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         Coordinates{48.8566, 2.3522},
			b:         Coordinates{48.8566, 2.3522},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "Paris to Orly (~15km)",
			a:         Coordinates{48.8566, 2.3522},
			b:         Coordinates{48.7262, 2.3652},
			wantKm:    14.5,
			tolerance: 1.0,
		},
		{
			name:      "Paris to Lyon (~390km)",
			a:         Coordinates{48.8566, 2.3522},
			b:         Coordinates{45.7640, 4.8357},
			wantKm:    392,
			tolerance: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("haversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a := Coordinates{48.8566, 2.3522}
	b := Coordinates{45.7640, 4.8357}
	d1 := haversineKm(a, b)
	d2 := haversineKm(b, a)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestCoordsMatch_ToleranceBoundary(t *testing.T) {
	base := Coordinates{48.8566, 2.3522}

	tests := []struct {
		name   string
		offset float64
		want   bool
	}{
		{"identical", 0, true},
		{"inside tolerance", 0.00009, true},
		{"outside tolerance", 0.00011, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := Coordinates{base.Lat + tt.offset, base.Lon}
			if got := coordsMatch(base, other); got != tt.want {
				t.Errorf("coordsMatch(offset=%v) = %v, want %v", tt.offset, got, tt.want)
			}

			// Each axis is checked independently.
			other = Coordinates{base.Lat, base.Lon + tt.offset}
			if got := coordsMatch(base, other); got != tt.want {
				t.Errorf("coordsMatch(lon offset=%v) = %v, want %v", tt.offset, got, tt.want)
			}
		})
	}
}
