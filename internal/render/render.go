package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sensorplot/sensorplot/internal/compute"
	"github.com/sensorplot/sensorplot/internal/config"
	"github.com/sensorplot/sensorplot/internal/series"
)

// Renderer turns a Chart into PNG bytes.
type Renderer interface {
	Render(ctx context.Context, c *Chart) ([]byte, error)
}

var (
	// ErrToolMissing means the external plotting program could not be found.
	ErrToolMissing = errors.New("plotting tool not found")

	// ErrTimeout means rendering did not finish within the configured timeout.
	ErrTimeout = errors.New("rendering timed out")

	// ErrNotPNG means the backend returned something other than a PNG image.
	ErrNotPNG = errors.New("output is not a PNG image")
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// IsPNG reports whether b starts with the PNG file signature.
func IsPNG(b []byte) bool {
	return bytes.HasPrefix(b, pngMagic)
}

// New returns the Renderer selected by cfg.Backend.
func New(cfg config.RendererConfig) (Renderer, error) {
	switch cfg.Backend {
	case config.BackendGnuplot:
		return &gnuplot{path: cfg.GnuplotPath, timeout: cfg.Timeout}, nil
	case config.BackendBuiltin:
		return &builtin{}, nil
	default:
		return nil, fmt.Errorf("render: unsupported backend %q", cfg.Backend)
	}
}

// Range is a closed axis interval.
type Range struct {
	Min, Max float64
}

// Chart is everything a backend needs to draw one line series.
type Chart struct {
	Title      string
	XLabel     string
	YLabel     string
	SeriesName string
	Width      int
	Height     int
	XRange     Range
	YRange     Range
	Points     series.Series
}

// Labels used on every chart.
const (
	XLabel     = "Time (s)"
	YLabel     = "SensorValue"
	SeriesName = "Smoothed data"
)

// NewChart builds the chart for a processed file. The X range spans the
// repaired times; the Y range spans the raw values padded by 10%.
func NewChart(base string, res *compute.Result, width, height int) *Chart {
	title := "Processed data: " + base
	if res.Repaired() {
		title += fmt.Sprintf(" (offset: %gs)", res.Offset)
	}

	xlo, xhi := series.Bounds(res.Smoothed.Times())
	ylo, yhi := series.Bounds(res.Raw.Values())

	return &Chart{
		Title:      title,
		XLabel:     XLabel,
		YLabel:     YLabel,
		SeriesName: SeriesName,
		Width:      width,
		Height:     height,
		XRange:     nonEmpty(Range{Min: xlo, Max: xhi}),
		YRange:     nonEmpty(pad(Range{Min: ylo, Max: yhi}, 0.1)),
		Points:     res.Smoothed,
	}
}

// pad widens r by frac of each bound's magnitude.
func pad(r Range, frac float64) Range {
	return Range{
		Min: r.Min - math.Abs(r.Min)*frac,
		Max: r.Max + math.Abs(r.Max)*frac,
	}
}

// nonEmpty widens a zero-width range so backends accept it.
func nonEmpty(r Range) Range {
	if r.Max > r.Min {
		return r
	}
	half := math.Abs(r.Min) * 0.05
	if half == 0 {
		half = 0.5
	}
	return Range{Min: r.Min - half, Max: r.Max + half}
}
