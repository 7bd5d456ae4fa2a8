package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sensorplot/sensorplot/internal/compute"
	"github.com/sensorplot/sensorplot/internal/config"
	"github.com/sensorplot/sensorplot/internal/render"
	"github.com/sensorplot/sensorplot/internal/report"
	"github.com/sensorplot/sensorplot/internal/series"
	"github.com/sensorplot/sensorplot/internal/workspace"
)

// maxRepeatsShown caps the repeated-timestamp listing.
const maxRepeatsShown = 5

// Outcome summarises a finished run.
type Outcome struct {
	Input     string
	Base      string
	Found     bool // the named file existed
	Processed bool // parsing, repair, smoothing and the data file all succeeded
	Rendered  bool
	Files     []workspace.File
}

// Runner drives one interactive session: prompt, process, summarise.
type Runner struct {
	dir     string
	in      *bufio.Reader
	console *report.Console
	cfg     atomic.Pointer[config.Config]
}

// New returns a Runner working in dir, reading the filename from in and
// printing to out.
func New(dir string, cfg *config.Config, in io.Reader, out io.Writer, noColor bool) *Runner {
	r := &Runner{
		dir:     dir,
		in:      bufio.NewReader(in),
		console: report.NewConsole(out, noColor),
	}
	r.cfg.Store(cfg)
	return r
}

// UpdateConfig swaps the configuration used by runs that have not yet
// started processing. Safe to call from another goroutine.
func (r *Runner) UpdateConfig(cfg *config.Config) {
	r.cfg.Store(cfg)
}

// Run executes the workflow once. User-input, parse and render failures are
// printed and reflected in the Outcome; the returned error is reserved for
// failures that leave nothing to report, such as unreadable input.
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	c := r.console
	c.Section(fmt.Sprintf("TIMESTAMP REPAIR - %gs OFFSET", r.cfg.Load().Offset))

	name, err := r.selectFile(ctx)
	if err != nil {
		return nil, err
	}
	out := &Outcome{Input: name}

	// Snapshot the config once the user has chosen a file.
	cfg := r.cfg.Load()
	ws := workspace.New(r.dir, cfg.Extensions)

	path, err := ws.Resolve(name)
	if errors.Is(err, workspace.ErrNotFound) {
		c.Fail("file %q not found", name)
		c.Printf("Check the name and run the program again.")
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	out.Found = true
	out.Base = workspace.BaseName(name)

	if removed := ws.Cleanup(out.Base); len(removed) > 0 {
		c.Printf("Removing old files...")
		for _, f := range removed {
			c.Item("removed %s", f)
		}
	}

	c.Section("PROCESSING FILE: " + name)
	stats, err := r.process(ctx, cfg, ws, path, out)
	if err != nil {
		c.Fail("processing error: %v", err)
		slog.Warn("runner: processing aborted", "file", name, "err", err)
	} else {
		out.Processed = true
		if cfg.StatsFile {
			statsPath := ws.Outputs(out.Base).Stats
			if err := report.WriteStatsFile(statsPath, stats); err != nil {
				c.Warn("could not write statistics: %v", err)
			}
		}
	}

	c.Section("PROCESSING COMPLETE")
	c.Printf("Created files:")
	files, err := ws.Produced(out.Base)
	if err != nil {
		slog.Warn("runner: listing outputs failed", "err", err)
	}
	out.Files = files
	c.Files(files)
	c.Printf("")
	c.Printf("Done. Run the program again to process another file.")
	return out, nil
}

// selectFile lists candidate data files and reads the chosen name. It
// returns early with ctx's error if ctx ends while waiting for input.
func (r *Runner) selectFile(ctx context.Context) (string, error) {
	c := r.console
	ws := workspace.New(r.dir, r.cfg.Load().Extensions)

	abs, err := filepath.Abs(r.dir)
	if err != nil {
		abs = r.dir
	}
	c.Printf("Files in %s:", abs)
	files, err := ws.DataFiles()
	if err != nil {
		return "", fmt.Errorf("runner: %w", err)
	}
	if len(files) == 0 {
		c.Fail("no data files found")
	} else {
		c.Printf("Available data files:")
		for _, f := range files {
			c.Item("%s", f)
		}
	}
	c.Printf("")
	c.Rule()
	c.Prompt("Enter the data file name (e.g. zapis_04_09.txt): ")

	type readResult struct {
		line string
		err  error
	}
	done := make(chan readResult, 1)
	go func() {
		line, err := r.in.ReadString('\n')
		done <- readResult{line, err}
	}()

	select {
	case <-ctx.Done():
		c.Printf("")
		return "", fmt.Errorf("runner: waiting for filename: %w", ctx.Err())
	case res := <-done:
		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.line != "") {
			return "", fmt.Errorf("runner: read filename: %w", res.err)
		}
		return strings.TrimSpace(res.line), nil
	}
}

// process parses, analyses, repairs, smooths, writes and renders one file.
// A returned error aborts processing; render failures are printed only.
func (r *Runner) process(ctx context.Context, cfg *config.Config, ws *workspace.Workspace, path string, out *Outcome) (report.Stats, error) {
	c := r.console
	outputs := ws.Outputs(out.Base)

	raw, delim, err := series.Load(path)
	if err != nil {
		return report.Stats{}, err
	}
	slog.Debug("runner: parsed input", "file", out.Input, "delimiter", delim, "samples", raw.Len())

	a := compute.Analyze(raw)
	c.OK("source data: %d records (%s-separated)", a.Samples, delim)
	c.Printf("Unique timestamps: %d", a.Unique)
	c.Printf("Repeated timestamp points: %d", a.ConsecutiveDuplicates)
	if a.Backward > 0 {
		c.Printf("Backward timestamp steps: %d", a.Backward)
	}
	if len(a.Repeats) > 0 {
		c.Printf("Repeated timestamps:")
		for _, rep := range a.Repeats[:min(len(a.Repeats), maxRepeatsShown)] {
			c.Item("time %.2fs repeats %d times", rep.Time, rep.Count)
		}
		if extra := len(a.Repeats) - maxRepeatsShown; extra > 0 {
			c.Item("... and %d more repeated times", extra)
		}
	}

	if a.NeedsRepair() {
		c.Warn("non-increasing timestamps found, adding a %gs offset...", cfg.Offset)
	} else {
		c.OK("timestamps are unique, smoothing only")
	}

	res := compute.Process(raw, compute.Options{Offset: cfg.Offset, MaxWindow: cfg.MaxWindow})
	dataPath := outputs.Smoothed
	if res.Repaired() {
		dataPath = outputs.Processed
		c.Printf("Offset of %gs applied to %d samples", res.Offset, res.Changed)
	}
	c.Printf("Smoothing window: %d", res.Window)

	if err := series.WriteFile(dataPath, res.Smoothed); err != nil {
		return report.Stats{}, err
	}
	c.OK("data saved: %s", filepath.Base(dataPath))

	tmin, tmax := series.Bounds(res.Smoothed.Times())
	out.Rendered = r.render(ctx, cfg, res, outputs.Image, out.Base)
	if out.Rendered {
		c.Printf("Time range: %.2f - %.2f s", tmin, tmax)
	}

	return report.Stats{
		File:       out.Input,
		Samples:    a.Samples,
		Unique:     a.Unique,
		Duplicates: a.ConsecutiveDuplicates,
		Repaired:   res.Changed,
		Window:     res.Window,
		TimeMin:    tmin,
		TimeMax:    tmax,
		Rendered:   out.Rendered,
	}, nil
}

// render draws the chart and writes it to imagePath. Failures are printed
// and reported as false; they never abort the run.
func (r *Runner) render(ctx context.Context, cfg *config.Config, res *compute.Result, imagePath, base string) bool {
	c := r.console
	backend := cfg.Renderer.Backend

	rd, err := render.New(cfg.Renderer)
	if err != nil {
		c.Fail("%s error: %v", backend, err)
		return false
	}

	chart := render.NewChart(base, res, cfg.Renderer.Width, cfg.Renderer.Height)
	img, err := rd.Render(ctx, chart)
	if err != nil {
		c.Fail("%s error: %v", backend, err)
		slog.Warn("runner: render failed", "backend", backend, "err", err)
		return false
	}
	if err := os.WriteFile(imagePath, img, 0o644); err != nil {
		c.Fail("could not save chart: %v", err)
		return false
	}
	c.OK("chart created: %s", filepath.Base(imagePath))
	return true
}
