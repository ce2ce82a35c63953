package scoring

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name     string
		value    float64
		lo, hi   float64
		expected float64
	}{
		{name: "below", value: -5, lo: 0, hi: 100, expected: 0},
		{name: "inside", value: 42.5, lo: 0, hi: 100, expected: 42.5},
		{name: "above", value: 120, lo: 0, hi: 100, expected: 100},
		{name: "at_lower_bound", value: 0, lo: 0, hi: 100, expected: 0},
		{name: "at_upper_bound", value: 100, lo: 0, hi: 100, expected: 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.value, tc.lo, tc.hi); got != tc.expected {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tc.value, tc.lo, tc.hi, got, tc.expected)
			}
		})
	}
}

func TestDiminishingCurveZeroAndNegative(t *testing.T) {
	for _, x := range []float64{0, -1, -100} {
		if got := DiminishingCurve(x, 20); got != 0 {
			t.Fatalf("DiminishingCurve(%v, 20) = %v, want 0", x, got)
		}
	}
}

func TestDiminishingCurveMonotonicAndBounded(t *testing.T) {
	prev := 0.0
	for x := 1.0; x <= 1000; x *= 2 {
		got := DiminishingCurve(x, 30)
		if got < prev {
			t.Fatalf("curve decreased at x=%v: %v < %v", x, got, prev)
		}
		if got > 1 {
			t.Fatalf("curve exceeded 1 at x=%v: %v", x, got)
		}
		prev = got
	}
}

func TestDiminishingCurveSaturatesAtScale(t *testing.T) {
	if got := DiminishingCurve(20, 20); math.Abs(got-1) > 1e-12 {
		t.Fatalf("DiminishingCurve(scale, scale) = %v, want 1", got)
	}
	if got := DiminishingCurve(500, 20); got != 1 {
		t.Fatalf("DiminishingCurve above scale = %v, want 1", got)
	}
}
