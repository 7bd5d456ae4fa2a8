package compute

// MinWindow is the smallest moving-average window ever used.
const MinWindow = 3

// WindowSize picks the moving-average window for a series of n samples.
//
// After a timestamp repair the request shrinks with the data (n/10, capped
// at maxWindow); otherwise maxWindow is requested directly. The request then
// goes through EffectiveWindow.
func WindowSize(n int, repaired bool, maxWindow int) int {
	requested := maxWindow
	if repaired && n/10 < requested {
		requested = n / 10
	}
	return EffectiveWindow(requested, n)
}

// EffectiveWindow clamps requested to at most n and then to at least
// MinWindow. For n < MinWindow the lower bound wins; Smooth averages partial
// windows, so an oversized window is harmless.
func EffectiveWindow(requested, n int) int {
	w := requested
	if w > n {
		w = n
	}
	if w < MinWindow {
		w = MinWindow
	}
	return w
}

// Smooth returns the centered moving average of values over window w.
//
// Position i averages values[i-w/2 : i+(w-1)/2+1], clipped to the slice, so
// edges use partial windows and the output has the same length as the input.
// For even w the extra element sits on the left.
func Smooth(values []float64, w int) []float64 {
	if w < 1 {
		w = 1
	}
	left, right := w/2, (w-1)/2

	out := make([]float64, len(values))
	for i := range values {
		lo := i - left
		if lo < 0 {
			lo = 0
		}
		hi := i + right + 1
		if hi > len(values) {
			hi = len(values)
		}
		var sum float64
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}
