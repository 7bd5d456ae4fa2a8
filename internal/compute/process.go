package compute

import (
	"log/slog"

	"github.com/sensorplot/sensorplot/internal/series"
)

// Options tunes Process.
type Options struct {
	Offset    float64
	MaxWindow int
}

// Result is the cleaned series plus the facts needed to name and label the
// outputs.
type Result struct {
	// Raw is the input as parsed.
	Raw series.Series

	// Smoothed pairs repaired times with moving-average values.
	Smoothed series.Series

	// Changed counts samples whose timestamp Repair moved.
	Changed int

	// Window is the effective moving-average window.
	Window int

	Offset float64
}

// Repaired reports whether any timestamp was adjusted.
func (r *Result) Repaired() bool { return r.Changed > 0 }

// Process repairs the timestamps of s and smooths its values.
func Process(s series.Series, opts Options) *Result {
	if opts.Offset <= 0 {
		opts.Offset = DefaultOffset
	}
	if opts.MaxWindow < MinWindow {
		opts.MaxWindow = MinWindow
	}

	fixed := Repair(s.Times(), opts.Offset)
	window := WindowSize(len(s), fixed.Changed > 0, opts.MaxWindow)
	smoothed := Smooth(s.Values(), window)

	if fixed.Changed > 0 && !Monotonic(fixed.Times) {
		slog.Warn("compute: repaired timestamps are still not strictly increasing",
			"samples", len(s), "changed", fixed.Changed)
	}
	slog.Debug("compute: processed series",
		"samples", len(s), "changed", fixed.Changed, "window", window)

	return &Result{
		Raw:      s,
		Smoothed: series.Zip(fixed.Times, smoothed),
		Changed:  fixed.Changed,
		Window:   window,
		Offset:   opts.Offset,
	}
}
