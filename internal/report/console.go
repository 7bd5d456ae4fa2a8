package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/sensorplot/sensorplot/internal/workspace"
)

// ruleWidth is the width of section separators.
const ruleWidth = 70

// Console prints human-readable progress. It is not safe for concurrent use.
type Console struct {
	w    io.Writer
	head *color.Color
	ok   *color.Color
	warn *color.Color
	fail *color.Color
	dim  *color.Color
}

// NewConsole returns a Console writing to w. With noColor set, no escape
// sequences are emitted regardless of the terminal.
func NewConsole(w io.Writer, noColor bool) *Console {
	c := &Console{
		w:    w,
		head: color.New(color.Bold, color.FgCyan),
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed, color.Bold),
		dim:  color.New(color.Faint),
	}
	if noColor {
		for _, col := range []*color.Color{c.head, c.ok, c.warn, c.fail, c.dim} {
			col.DisableColor()
		}
	}
	return c
}

// Section prints title between two rules.
func (c *Console) Section(title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(c.w)
	c.dim.Fprintln(c.w, rule)
	c.head.Fprintln(c.w, title)
	c.dim.Fprintln(c.w, rule)
}

// Rule prints a short separator.
func (c *Console) Rule() {
	c.dim.Fprintln(c.w, strings.Repeat("=", 50))
}

// Printf prints an uncolored line.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.w, format+"\n", args...)
}

// Item prints an indented list entry.
func (c *Console) Item(format string, args ...any) {
	fmt.Fprintf(c.w, "  - "+format+"\n", args...)
}

// OK prints a success line.
func (c *Console) OK(format string, args ...any) {
	c.ok.Fprintf(c.w, "[ok] "+format+"\n", args...)
}

// Warn prints a warning line.
func (c *Console) Warn(format string, args ...any) {
	c.warn.Fprintf(c.w, "[!] "+format+"\n", args...)
}

// Fail prints an error line.
func (c *Console) Fail(format string, args ...any) {
	c.fail.Fprintf(c.w, "[x] "+format+"\n", args...)
}

// Prompt prints label without a trailing newline.
func (c *Console) Prompt(label string) {
	c.head.Fprint(c.w, label)
}

// Files prints the final listing of produced files with sizes in KB.
func (c *Console) Files(files []workspace.File) {
	if len(files) == 0 {
		c.Fail("no files were created")
		return
	}
	for _, f := range files {
		c.Item("%s (%.1f KB)", f.Name, float64(f.Size)/1024)
	}
}
