// Package render draws the processed series as a PNG line chart.
//
// Renderer is the narrow seam between the workflow and a plotting backend:
// Render(ctx, *Chart) returns PNG bytes or an error. New(config) picks one of:
//   - gnuplot: pipes a generated script (Script) into the gnuplot binary and
//     reads the PNG from its stdout, bounded by the configured timeout.
//     Failures map to ErrToolMissing, ErrTimeout, ErrNotPNG or the exit error
//     with gnuplot's first stderr line.
//   - builtin: draws the same chart in-process with go-chart.
//
// NewChart derives title, labels and axis ranges from a compute.Result.
package render
