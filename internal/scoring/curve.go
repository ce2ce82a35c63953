package scoring

import "math"

// Clamp bounds value to [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}

// DiminishingCurve maps an unbounded non-negative count to [0, 1] on a
// log curve. scale is the value at which credit saturates; low values still
// earn meaningful credit, so one prolific outlier cannot dominate a score.
func DiminishingCurve(x, scale float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Min(1, math.Log1p(x)/math.Log1p(scale))
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
