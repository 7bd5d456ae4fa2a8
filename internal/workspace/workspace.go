package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned by Resolve when the named data file does not exist.
var ErrNotFound = errors.New("file not found")

// Output name suffixes appended to the base name.
const (
	suffixImage     = "_processed.png"
	suffixProcessed = "_processed.txt"
	suffixSmoothed  = "_smoothed.txt"
	suffixStats     = "_stats.prom"
)

// Workspace is the directory the tool reads data from and writes outputs to.
type Workspace struct {
	Dir        string
	Extensions []string
}

// New returns a Workspace rooted at dir that offers files with the given
// extensions (matched case-insensitively).
func New(dir string, extensions []string) *Workspace {
	return &Workspace{Dir: dir, Extensions: extensions}
}

// Outputs holds the absolute output paths derived from one base name.
type Outputs struct {
	Image     string
	Processed string
	Smoothed  string
	Stats     string
}

// All returns every output path in a fixed order.
func (o Outputs) All() []string {
	return []string{o.Image, o.Processed, o.Smoothed, o.Stats}
}

// File is one entry of a directory listing.
type File struct {
	Name string
	Size int64
}

// BaseName returns name without directory and extension.
func BaseName(name string) string {
	name = filepath.Base(name)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// DataFiles lists regular files whose extension is one of w.Extensions,
// sorted by name.
func (w *Workspace) DataFiles() ([]string, error) {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return nil, fmt.Errorf("workspace: read dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if w.hasDataExt(e.Name()) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func (w *Workspace) hasDataExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range w.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// Resolve returns the path of the named data file inside the workspace.
// It fails with ErrNotFound when nothing by that name exists or it is a
// directory.
func (w *Workspace) Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("workspace: %w: empty name", ErrNotFound)
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.Dir, name)
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("workspace: %w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("workspace: stat %s: %w", name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("workspace: %w: %s is a directory", ErrNotFound, name)
	}
	return path, nil
}

// Outputs returns the output paths for base.
func (w *Workspace) Outputs(base string) Outputs {
	return Outputs{
		Image:     filepath.Join(w.Dir, base+suffixImage),
		Processed: filepath.Join(w.Dir, base+suffixProcessed),
		Smoothed:  filepath.Join(w.Dir, base+suffixSmoothed),
		Stats:     filepath.Join(w.Dir, base+suffixStats),
	}
}

// Cleanup removes outputs left by an earlier run for base and returns the
// names it removed. Failures to remove are logged and skipped.
func (w *Workspace) Cleanup(base string) []string {
	var removed []string
	for _, path := range w.Outputs(base).All() {
		err := os.Remove(path)
		switch {
		case err == nil:
			removed = append(removed, filepath.Base(path))
		case errors.Is(err, fs.ErrNotExist):
		default:
			slog.Debug("workspace: could not remove old output", "path", path, "err", err)
		}
	}
	return removed
}

// Produced lists files named <base>_* in the workspace with their sizes,
// sorted by name.
func (w *Workspace) Produced(base string) ([]File, error) {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return nil, fmt.Errorf("workspace: read dir: %w", err)
	}
	prefix := base + "_"
	var out []File
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // removed between ReadDir and Info
		}
		out = append(out, File{Name: e.Name(), Size: info.Size()})
	}
	return out, nil
}
