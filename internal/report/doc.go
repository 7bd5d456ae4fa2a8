// Package report covers what a run shows and leaves behind besides the data
// and the chart.
//
// console.go: Console prints sections, ok/warn/fail lines and the final file
// listing, colored with fatih/color.
//
// stats.go: WriteStats encodes a Stats value as Prometheus gauges
// (sensorplot_samples, sensorplot_repaired_samples, ...) in the text
// exposition format, labelled file="<input>".
package report
