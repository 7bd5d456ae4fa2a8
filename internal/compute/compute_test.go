package compute

import (
	"math"
	"testing"

	"github.com/sensorplot/sensorplot/internal/series"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func assertFloats(t *testing.T, what string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d", what, len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-9) {
			t.Errorf("%s[%d] = %v, want %v", what, i, got[i], want[i])
		}
	}
}

// --- Repair ---

func TestRepair_StrictlyIncreasingIsNoop(t *testing.T) {
	in := []float64{0, 0.1, 0.2, 1.5, 7}
	got := Repair(in, DefaultOffset)
	if got.Changed != 0 {
		t.Errorf("Changed = %d, want 0", got.Changed)
	}
	for i := range in {
		if got.Times[i] != in[i] {
			t.Errorf("Times[%d] = %v, want %v (exact)", i, got.Times[i], in[i])
		}
	}
}

func TestRepair_RunOfEqualTimestamps(t *testing.T) {
	for k := 2; k <= 6; k++ {
		in := make([]float64, k)
		for i := range in {
			in[i] = 3
		}
		got := Repair(in, DefaultOffset)

		want := make([]float64, k)
		for i := range want {
			want[i] = 3 + float64(i)*DefaultOffset
		}
		assertFloats(t, "Times", got.Times, want)
		if got.Changed != k-1 {
			t.Errorf("k=%d: Changed = %d, want %d", k, got.Changed, k-1)
		}
	}
}

func TestRepair_RunFollowedByNextSecond(t *testing.T) {
	got := Repair([]float64{0, 0, 0.1, 1, 1, 1, 2}, DefaultOffset)
	assertFloats(t, "Times", got.Times, []float64{0, 0.05, 0.1, 1, 1.05, 1.1, 2})
	if !Monotonic(got.Times) {
		t.Error("repaired times should be strictly increasing")
	}
}

func TestRepair_BackwardStep(t *testing.T) {
	got := Repair([]float64{0, 1, 0.5, 2}, DefaultOffset)
	assertFloats(t, "Times", got.Times, []float64{0, 1, 1.05, 2})
	if got.Changed != 1 {
		t.Errorf("Changed = %d, want 1", got.Changed)
	}
}

func TestRepair_DoesNotModifyInput(t *testing.T) {
	in := []float64{1, 1}
	Repair(in, DefaultOffset)
	if in[1] != 1 {
		t.Errorf("input mutated: %v", in)
	}
}

func TestRepair_PrecisionLimitIsNotMonotonic(t *testing.T) {
	// At this magnitude the offset is below float64 resolution, so the
	// repaired value collides with its predecessor.
	got := Repair([]float64{1e17, 1e17}, DefaultOffset)
	if Monotonic(got.Times) {
		t.Errorf("expected non-monotonic result at 1e17, got %v", got.Times)
	}
}

func TestMonotonic(t *testing.T) {
	tests := []struct {
		in   []float64
		want bool
	}{
		{nil, true},
		{[]float64{1}, true},
		{[]float64{1, 2, 3}, true},
		{[]float64{1, 1}, false},
		{[]float64{2, 1}, false},
	}
	for _, tc := range tests {
		if got := Monotonic(tc.in); got != tc.want {
			t.Errorf("Monotonic(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// --- Window selection ---

func TestWindowSize(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		repaired bool
		max      int
		want     int
	}{
		{"short repaired series", 3, true, 5, 3},
		{"repaired shrinks with n", 40, true, 5, 4},
		{"repaired capped at max", 1000, true, 5, 5},
		{"repaired larger max", 1000, true, 7, 7},
		{"unrepaired uses max", 40, false, 5, 5},
		{"unrepaired clamped to n", 4, false, 5, 4},
		{"tiny series floor", 2, false, 5, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WindowSize(tc.n, tc.repaired, tc.max); got != tc.want {
				t.Errorf("WindowSize(%d, %v, %d) = %d, want %d", tc.n, tc.repaired, tc.max, got, tc.want)
			}
		})
	}
}

func TestEffectiveWindow_Bounds(t *testing.T) {
	for n := 3; n < 50; n++ {
		for req := 0; req < 80; req++ {
			w := EffectiveWindow(req, n)
			if w < MinWindow || w > n {
				t.Fatalf("EffectiveWindow(%d, %d) = %d, outside [3, n]", req, n, w)
			}
			if req >= MinWindow && req <= n && w != req {
				t.Fatalf("EffectiveWindow(%d, %d) = %d, want request unchanged", req, n, w)
			}
		}
	}
}

// --- Smoothing ---

func TestSmooth_CenteredPartialWindows(t *testing.T) {
	got := Smooth([]float64{1, 2, 3, 4, 5}, 3)
	assertFloats(t, "Smooth", got, []float64{1.5, 2, 3, 4, 4.5})
}

func TestSmooth_EvenWindowLeansLeft(t *testing.T) {
	got := Smooth([]float64{1, 2, 3, 4}, 4)
	assertFloats(t, "Smooth", got, []float64{1.5, 2, 2.5, 3})
}

func TestSmooth_WindowWiderThanSeries(t *testing.T) {
	got := Smooth([]float64{1, 2, 3}, 5)
	assertFloats(t, "Smooth", got, []float64{2, 2, 2})
}

func TestSmooth_PreservesLength(t *testing.T) {
	for n := 0; n < 30; n++ {
		values := make([]float64, n)
		for i := range values {
			values[i] = float64(i * i)
		}
		for w := 1; w < 10; w++ {
			if got := Smooth(values, w); len(got) != n {
				t.Fatalf("len(Smooth(n=%d, w=%d)) = %d", n, w, len(got))
			}
		}
	}
}

func TestSmooth_ConstantSignal(t *testing.T) {
	got := Smooth([]float64{7, 7, 7, 7, 7, 7}, 5)
	assertFloats(t, "Smooth", got, []float64{7, 7, 7, 7, 7, 7})
}

// --- Analysis ---

func TestAnalyze(t *testing.T) {
	s := series.Zip(
		[]float64{0, 0, 0.1, 0.1, 0.1, 0.2, 0.15},
		[]float64{1, 2, 3, 4, 5, 6, 7},
	)
	a := Analyze(s)

	if a.Samples != 7 {
		t.Errorf("Samples = %d, want 7", a.Samples)
	}
	if a.Unique != 4 {
		t.Errorf("Unique = %d, want 4", a.Unique)
	}
	if a.ConsecutiveDuplicates != 3 {
		t.Errorf("ConsecutiveDuplicates = %d, want 3", a.ConsecutiveDuplicates)
	}
	if a.Backward != 1 {
		t.Errorf("Backward = %d, want 1", a.Backward)
	}
	if !a.NeedsRepair() {
		t.Error("NeedsRepair() = false, want true")
	}
	want := []Repeat{{Time: 0.1, Count: 3}, {Time: 0, Count: 2}}
	if len(a.Repeats) != len(want) {
		t.Fatalf("Repeats = %v, want %v", a.Repeats, want)
	}
	for i := range want {
		if a.Repeats[i] != want[i] {
			t.Errorf("Repeats[%d] = %+v, want %+v", i, a.Repeats[i], want[i])
		}
	}
}

func TestAnalyze_RepeatTiesOrderedByTime(t *testing.T) {
	s := series.Zip([]float64{5, 5, 1, 1, 3, 3}, []float64{0, 0, 0, 0, 0, 0})
	a := Analyze(s)
	if len(a.Repeats) != 3 || a.Repeats[0].Time != 1 || a.Repeats[1].Time != 3 || a.Repeats[2].Time != 5 {
		t.Errorf("Repeats = %v, want ordered 1, 3, 5", a.Repeats)
	}
}

func TestAnalyze_Clean(t *testing.T) {
	a := Analyze(series.Zip([]float64{0, 1, 2}, []float64{0, 0, 0}))
	if a.NeedsRepair() || len(a.Repeats) != 0 || a.Unique != 3 {
		t.Errorf("clean series analysed as %+v", a)
	}
}

// --- Process ---

func TestProcess_EndToEndScenario(t *testing.T) {
	s := series.Series{{Time: 0, Value: 1}, {Time: 0, Value: 2}, {Time: 0.1, Value: 3}}
	res := Process(s, Options{Offset: DefaultOffset, MaxWindow: 5})

	if !res.Repaired() || res.Changed != 1 {
		t.Errorf("Changed = %d, want 1", res.Changed)
	}
	if res.Window != 3 {
		t.Errorf("Window = %d, want 3", res.Window)
	}
	assertFloats(t, "Times", res.Smoothed.Times(), []float64{0, 0.05, 0.1})
	assertFloats(t, "Values", res.Smoothed.Values(), []float64{1.5, 2, 2.5})
	if res.Raw.Len() != 3 {
		t.Errorf("Raw.Len() = %d, want 3", res.Raw.Len())
	}
}

func TestProcess_CleanInputKeepsTimes(t *testing.T) {
	s := series.Zip([]float64{0, 1, 2, 3, 4, 5}, []float64{1, 1, 1, 1, 1, 7})
	res := Process(s, Options{Offset: DefaultOffset, MaxWindow: 5})

	if res.Repaired() {
		t.Error("Repaired() = true for a strictly increasing series")
	}
	if res.Window != 5 {
		t.Errorf("Window = %d, want 5", res.Window)
	}
	assertFloats(t, "Times", res.Smoothed.Times(), s.Times())
}

func TestProcess_DefaultsOptions(t *testing.T) {
	res := Process(series.Series{{Time: 1, Value: 1}, {Time: 1, Value: 1}}, Options{})
	if res.Offset != DefaultOffset {
		t.Errorf("Offset = %v, want default", res.Offset)
	}
	assertFloats(t, "Times", res.Smoothed.Times(), []float64{1, 1.05})
}
