package series

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Write emits one "time,value" line per sample with no header. Floats use
// the shortest representation that parses back to the same value.
func Write(w io.Writer, s Series) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)
	for _, p := range s {
		buf = buf[:0]
		buf = strconv.AppendFloat(buf, p.Time, 'f', -1, 64)
		buf = append(buf, ',')
		buf = strconv.AppendFloat(buf, p.Value, 'f', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("series: write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("series: flush: %w", err)
	}
	return nil
}

// WriteFile writes s to path, replacing any existing file.
func WriteFile(path string, s Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("series: create %s: %w", path, err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("series: close %s: %w", path, err)
	}
	return nil
}
