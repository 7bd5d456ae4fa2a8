package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultOffset        = 0.05
	DefaultMaxWindow     = 5
	DefaultBackend       = BackendGnuplot
	DefaultGnuplotPath   = "gnuplot"
	DefaultRenderTimeout = 30 * time.Second
	DefaultWidth         = 1400
	DefaultHeight        = 800
	DefaultLogLevel      = "warn"
)

// Renderer backends.
const (
	BackendGnuplot = "gnuplot"
	BackendBuiltin = "builtin"
)

// DefaultExtensions are the data file extensions offered at the prompt.
var DefaultExtensions = []string{".txt", ".csv", ".dat"}

// Config is the full sensorplot configuration.
// Fields map 1:1 to sensorplot.example.yaml.
type Config struct {
	// Extensions lists the file extensions shown as candidate data files.
	Extensions []string `yaml:"extensions"`

	// Offset is the time increment used to break timestamp ties.
	Offset float64 `yaml:"offset"`

	// MaxWindow is the largest moving-average window ever requested.
	MaxWindow int `yaml:"max_window"`

	// StatsFile enables writing <base>_stats.prom next to the outputs.
	StatsFile bool `yaml:"stats_file"`

	// LogLevel is one of: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`

	Renderer RendererConfig `yaml:"renderer"`
}

// RendererConfig selects and tunes the chart backend.
type RendererConfig struct {
	// Backend is one of: gnuplot | builtin.
	Backend string `yaml:"backend"`

	// GnuplotPath is the gnuplot executable, looked up on PATH when not absolute.
	GnuplotPath string `yaml:"gnuplot_path"`

	// Timeout bounds a single render call.
	Timeout time.Duration `yaml:"timeout"`

	// Width and Height are the PNG canvas size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Level converts LogLevel to a slog.Level. Unknown values map to warn.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default() when path does not
// exist. The boolean reports whether the file was found.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// Default returns a Config pre-populated with default values.
func Default() *Config {
	return &Config{
		Extensions: append([]string(nil), DefaultExtensions...),
		Offset:     DefaultOffset,
		MaxWindow:  DefaultMaxWindow,
		StatsFile:  true,
		LogLevel:   DefaultLogLevel,
		Renderer: RendererConfig{
			Backend:     DefaultBackend,
			GnuplotPath: DefaultGnuplotPath,
			Timeout:     DefaultRenderTimeout,
			Width:       DefaultWidth,
			Height:      DefaultHeight,
		},
	}
}

// validate checks structural constraints and normalises extensions.
func validate(cfg *Config) error {
	if len(cfg.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	for i, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			return fmt.Errorf("extensions[%d]: empty extension", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Extensions[i] = ext
	}
	if cfg.Offset <= 0 {
		return fmt.Errorf("offset must be positive")
	}
	if cfg.MaxWindow < 3 {
		return fmt.Errorf("max_window must be at least 3")
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	switch cfg.Renderer.Backend {
	case BackendGnuplot, BackendBuiltin:
	default:
		return fmt.Errorf("renderer: unknown backend %q", cfg.Renderer.Backend)
	}
	if cfg.Renderer.Backend == BackendGnuplot && cfg.Renderer.GnuplotPath == "" {
		return fmt.Errorf("renderer.gnuplot_path is required for the gnuplot backend")
	}
	if cfg.Renderer.Timeout <= 0 {
		return fmt.Errorf("renderer.timeout must be positive")
	}
	if cfg.Renderer.Width <= 0 || cfg.Renderer.Height <= 0 {
		return fmt.Errorf("renderer: width and height must be positive")
	}
	return nil
}
