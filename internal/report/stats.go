package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// metricPrefix namespaces every emitted metric.
const metricPrefix = "sensorplot_"

// Stats describes one processing run.
type Stats struct {
	File       string // input file name, used as the "file" label
	Samples    int
	Unique     int
	Duplicates int // adjacent pairs with equal timestamps
	Repaired   int // samples whose timestamp moved
	Window     int
	TimeMin    float64
	TimeMax    float64
	Rendered   bool
}

// gauge is one metric of the stats file.
type gauge struct {
	name  string
	help  string
	value float64
}

func (s Stats) gauges() []gauge {
	rendered := 0.0
	if s.Rendered {
		rendered = 1
	}
	return []gauge{
		{"samples", "Samples read from the input file.", float64(s.Samples)},
		{"unique_timestamps", "Distinct timestamps in the input file.", float64(s.Unique)},
		{"duplicate_timestamps", "Adjacent samples sharing a timestamp before repair.", float64(s.Duplicates)},
		{"repaired_samples", "Samples whose timestamp was shifted.", float64(s.Repaired)},
		{"smoothing_window", "Effective moving-average window.", float64(s.Window)},
		{"time_min_seconds", "Earliest timestamp after repair.", s.TimeMin},
		{"time_max_seconds", "Latest timestamp after repair.", s.TimeMax},
		{"render_success", "1 if the chart was rendered, 0 otherwise.", rendered},
	}
}

// families converts s to Prometheus metric families, one gauge each,
// labelled with the input file name.
func (s Stats) families() []*dto.MetricFamily {
	gs := s.gauges()
	out := make([]*dto.MetricFamily, 0, len(gs))
	for _, g := range gs {
		out = append(out, &dto.MetricFamily{
			Name: ptr(metricPrefix + g.name),
			Help: ptr(g.help),
			Type: dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{
				Label: []*dto.LabelPair{{Name: ptr("file"), Value: ptr(s.File)}},
				Gauge: &dto.Gauge{Value: ptr(g.value)},
			}},
		})
	}
	return out
}

// WriteStats encodes s in the Prometheus text exposition format.
func WriteStats(w io.Writer, s Stats) error {
	bw := bufio.NewWriter(w)
	for _, mf := range s.families() {
		if _, err := expfmt.MetricFamilyToText(bw, mf); err != nil {
			return fmt.Errorf("report: encode %s: %w", mf.GetName(), err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("report: flush stats: %w", err)
	}
	return nil
}

// WriteStatsFile writes s to path, suitable for node_exporter's textfile
// collector.
func WriteStatsFile(path string, s Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	if err := WriteStats(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close %s: %w", path, err)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
