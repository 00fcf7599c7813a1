package core

import "math"

// Interval is a closed range [Min, Max] on the real line, used to bound
// valid hit distances along a ray and to clamp color channels.
type Interval struct {
	Min, Max float64
}

// NewInterval creates an interval with the given bounds
func NewInterval(minVal, maxVal float64) Interval {
	return Interval{Min: minVal, Max: maxVal}
}

// EmptyInterval is the unsatisfiable interval (Min > Max), representing
// "no valid range".
var EmptyInterval = Interval{Min: math.Inf(1), Max: math.Inf(-1)}

// UniverseInterval spans the entire real line
var UniverseInterval = Interval{Min: math.Inf(-1), Max: math.Inf(1)}

// Size returns the length of the interval
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether x lies within the interval, bounds included
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether x lies strictly between the bounds. Hit tests
// accept roots with this so intersections exactly on a boundary (e.g. t=0)
// are rejected, preventing self-intersection artifacts.
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp saturates x to [Min, Max]
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}
