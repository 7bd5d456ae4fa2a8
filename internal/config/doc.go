// Package config loads and watches the optional sensorplot.yaml file.
//
// Top-level types:
//   - Config — extensions, offset, max_window, stats_file, log_level, renderer
//   - RendererConfig — backend (gnuplot|builtin), gnuplot_path, timeout,
//     width, height
//
// Load(path) reads the YAML file, applies defaults (0.05 offset, window 5,
// gnuplot with a 30s timeout on a 1400x800 canvas), then validates ranges and
// enums. LoadOrDefault(path) returns the defaults when the file is absent, so
// the tool runs without any configuration at all.
//
// Watch(ctx, path, onChange) uses fsnotify on the file's directory and calls
// onChange with the newly parsed Config when the file is written, created or
// renamed over, so atomic-save editors and late-created files are seen.
package config
