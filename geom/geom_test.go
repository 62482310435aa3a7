package geom

import "testing"

func TestEpsilonComparisons(t *testing.T) {
	for _, tc := range []struct {
		a, b float64
		want bool
	}{
		{1, 1, true},
		{1, 1 + Epsilon/2, true},
		{1, 1 - Epsilon/2, true},
		{1, 1 + 2*Epsilon, false},
		{0, -2 * Epsilon, false},
		{1e6, 1e6 + 1e-3, false},
	} {
		if got := almostEqual(tc.a, tc.b); got != tc.want {
			t.Errorf("almostEqual(%v, %v): got %v want %v", tc.a, tc.b, got, tc.want)
		}
		if got := almostZero(tc.a - tc.b); got != tc.want {
			t.Errorf("almostZero(%v - %v): got %v want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
