package utils

import "math"

// RoundHalfUp rounds to the nearest integer, with halves rounded toward
// positive infinity (2.5 -> 3, -2.5 -> -2).
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// SaturatingSub returns a-b floored at zero.
func SaturatingSub(a, b float64) float64 {
	if b >= a {
		return 0
	}
	return a - b
}

// NonNegative clamps x to zero when it is negative.
func NonNegative(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// Min returns the smaller of two quantities.
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two quantities.
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
