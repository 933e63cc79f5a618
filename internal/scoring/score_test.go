package scoring

import (
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	cases := []struct {
		name    string
		correct bool
		budget  float64
		used    float64
		want    int
	}{
		{"incorrect ignores timing", false, 60, 5, 0},
		{"incorrect with zero budget", false, 0, 0, 0},
		{"overtime clamps remaining", true, 60, 70, 600},
		{"instant answer doubles budget", true, 60, 0, 1200},
		{"partial time", true, 30, 10, 500},
		{"fractions are floored", true, 10.9, 4.2, 160},
		{"negative inputs become zero", true, -5, -3, 0},
		{"negative used is clamped", true, 20, -10, 400},
		{"nan budget", true, math.NaN(), 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.correct, tc.budget, tc.used); got != tc.want {
				t.Fatalf("Score(%v, %v, %v) = %d, want %d", tc.correct, tc.budget, tc.used, got, tc.want)
			}
		})
	}
}
