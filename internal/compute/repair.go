package compute

// DefaultOffset is the time increment added per repeat to break a tie.
const DefaultOffset = 0.05

// Repaired is the outcome of Repair.
type Repaired struct {
	// Times holds the adjusted timestamps, aligned 1:1 with the input.
	Times []float64

	// Changed counts the samples whose timestamp was moved.
	Changed int
}

// Repair makes ties and backward steps in times strictly increasing.
//
// Each time t[i] that is not greater than the (already repaired) t[i-1] is
// replaced with base + count*offset, where base = t[i-1] and count is the
// length of the contiguous run of samples ending at i-1 that equal base.
// A run of k equal timestamps t therefore becomes t, t+offset, ...,
// t+(k-1)*offset.
//
// Only the immediately preceding run is consulted, so an input whose repaired
// values collide with samples further back is not guaranteed to be fully
// monotonic. The input slice is not modified.
func Repair(times []float64, offset float64) Repaired {
	out := make([]float64, len(times))
	copy(out, times)

	changed := 0
	for i := 1; i < len(out); i++ {
		if out[i] > out[i-1] {
			continue
		}
		base := out[i-1]
		count := 0
		for j := i - 1; j >= 0 && out[j] == base; j-- {
			count++
		}
		out[i] = base + float64(count)*offset
		changed++
	}
	return Repaired{Times: out, Changed: changed}
}

// Monotonic reports whether times is strictly increasing.
func Monotonic(times []float64) bool {
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return false
		}
	}
	return true
}
