package render

import (
	"bytes"
	"context"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// builtin draws the chart in-process with go-chart, for hosts without gnuplot.
type builtin struct{}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 3,
	}
}

func (b *builtin) Render(ctx context.Context, c *Chart) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render: builtin: %w", err)
	}
	if len(c.Points) == 0 {
		return nil, fmt.Errorf("render: builtin: no points to draw")
	}

	xs, ys := c.Points.Times(), c.Points.Values()
	if len(xs) == 1 {
		// go-chart needs two points to draw a line.
		xs = []float64{xs[0], xs[0]}
		ys = []float64{ys[0], ys[0]}
	}

	grid := chart.Style{StrokeColor: chart.ColorAlternateGray, StrokeWidth: 1}
	ch := chart.Chart{
		Title:      c.Title,
		Width:      c.Width,
		Height:     c.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           c.XLabel,
			Range:          &chart.ContinuousRange{Min: c.XRange.Min, Max: c.XRange.Max},
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           c.YLabel,
			Range:          &chart.ContinuousRange{Min: c.YRange.Min, Max: c.YRange.Max},
			GridMajorStyle: grid,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.SeriesName,
				XValues: xs,
				YValues: ys,
				Style:   lineStyle(chart.ColorBlue),
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.LegendLeft(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: builtin: %w", err)
	}
	return buf.Bytes(), nil
}
