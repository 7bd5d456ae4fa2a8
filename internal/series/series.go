package series

import "math"

// Sample is one (time, value) record from a data file.
type Sample struct {
	Time  float64
	Value float64
}

// Series is an ordered sequence of samples in file order.
type Series []Sample

// Len returns the number of samples.
func (s Series) Len() int { return len(s) }

// Times returns a copy of the time column.
func (s Series) Times() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Time
	}
	return out
}

// Values returns a copy of the value column.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Zip builds a Series from parallel columns. It panics if the lengths differ.
func Zip(times, values []float64) Series {
	if len(times) != len(values) {
		panic("series: Zip called with columns of different length")
	}
	out := make(Series, len(times))
	for i := range times {
		out[i] = Sample{Time: times[i], Value: values[i]}
	}
	return out
}

// Bounds returns the minimum and maximum of xs.
// Both are NaN when xs is empty.
func Bounds(xs []float64) (lo, hi float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}
