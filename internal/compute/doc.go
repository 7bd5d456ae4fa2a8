// Package compute turns a parsed series into its cleaned form.
//
// repair.go breaks timestamp ties by adding a fixed offset (0.05 by default)
// per repeat within the run that precedes each offending sample.
//
// smooth.go chooses the moving-average window (WindowSize, EffectiveWindow)
// and computes a centered average with partial windows at the edges.
//
// analysis.go reports duplicate and backward timestamps before repair.
//
// Process chains repair, window selection and smoothing into one Result.
package compute
