package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// waitDelay bounds how long Render waits for output pipes after gnuplot is
// killed.
const waitDelay = time.Second

type gnuplot struct {
	path    string
	timeout time.Duration
}

// Render runs gnuplot with the generated script on stdin and returns the PNG
// it writes to stdout.
func (g *gnuplot) Render(ctx context.Context, c *Chart) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, g.path)
	cmd.Stdin = strings.NewReader(Script(c))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	slog.Debug("render: gnuplot finished",
		"path", g.path, "elapsed", time.Since(start), "bytes", stdout.Len(), "err", err)

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, fmt.Errorf("render: gnuplot: %w after %s", ErrTimeout, g.timeout)
	case ctx.Err() != nil:
		return nil, fmt.Errorf("render: gnuplot: %w", ctx.Err())
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("render: %w: %s", ErrToolMissing, g.path)
	case err != nil:
		if msg := firstLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("render: gnuplot: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("render: gnuplot: %w", err)
	}

	if !IsPNG(stdout.Bytes()) {
		return nil, fmt.Errorf("render: gnuplot: %w", ErrNotPNG)
	}
	return stdout.Bytes(), nil
}

// Script generates the gnuplot program for c. The data travels inline as a
// datablock and the PNG goes to stdout because no output file is set.
func Script(c *Chart) string {
	var b strings.Builder
	fmt.Fprintf(&b, "set terminal png enhanced size %d,%d\n", c.Width, c.Height)
	fmt.Fprintf(&b, "set title %s noenhanced\n", quote(c.Title))
	fmt.Fprintf(&b, "set xlabel %s\n", quote(c.XLabel))
	fmt.Fprintf(&b, "set ylabel %s\n", quote(c.YLabel))
	b.WriteString("set grid xtics ytics\n")
	b.WriteString("set key top left\n")
	fmt.Fprintf(&b, "set xrange [%s:%s]\n", num(c.XRange.Min), num(c.XRange.Max))
	fmt.Fprintf(&b, "set yrange [%s:%s]\n", num(c.YRange.Min), num(c.YRange.Max))
	b.WriteString("set datafile separator \",\"\n")
	b.WriteString("$data << EOD\n")
	for _, p := range c.Points {
		b.WriteString(num(p.Time))
		b.WriteByte(',')
		b.WriteString(num(p.Value))
		b.WriteByte('\n')
	}
	b.WriteString("EOD\n")
	fmt.Fprintf(&b, "plot $data using 1:2 with lines lw 3 lc rgb \"blue\" title %s noenhanced\n", quote(c.SeriesName))
	return b.String()
}

// quote returns s as a gnuplot double-quoted string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ")
	return `"` + r.Replace(s) + `"`
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
