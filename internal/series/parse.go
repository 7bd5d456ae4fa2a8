package series

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Delimiter identifies how fields in a data file are separated.
type Delimiter int

// Delimiters in trial order.
const (
	Comma Delimiter = iota
	Semicolon
	Whitespace
)

// trialOrder is the sequence Parse tries; the first fully successful one wins.
var trialOrder = []Delimiter{Comma, Semicolon, Whitespace}

func (d Delimiter) String() string {
	switch d {
	case Comma:
		return "comma"
	case Semicolon:
		return "semicolon"
	case Whitespace:
		return "whitespace"
	default:
		return fmt.Sprintf("Delimiter(%d)", int(d))
	}
}

// ErrEmpty is reported when a file contains no samples.
var ErrEmpty = errors.New("no samples found")

// ParseError describes why none of the delimiters produced two numeric columns.
// It reports the attempt that got furthest into the file; on a tie, the later
// delimiter in trial order.
type ParseError struct {
	Delimiter Delimiter
	Line      int
	Err       error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("series: parse: %v", e.Err)
	}
	return fmt.Sprintf("series: parse line %d (%s): %v", e.Line, e.Delimiter, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads the data file at path. It returns the parsed series and the
// delimiter that was detected.
func Load(path string) (Series, Delimiter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("series: read file: %w", err)
	}
	return ParseBytes(data)
}

// Parse reads all of r and parses it as two-column numeric data.
func Parse(r io.Reader) (Series, Delimiter, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("series: read: %w", err)
	}
	return ParseBytes(data)
}

// utf8BOM is stripped from the start of the input.
var utf8BOM = []byte("\xef\xbb\xbf")

// ParseBytes tries comma, semicolon and whitespace in that order and accepts
// the first delimiter for which every non-blank line holds exactly two
// finite numeric fields.
func ParseBytes(data []byte) (Series, Delimiter, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	var furthest *ParseError
	for _, d := range trialOrder {
		s, err := parseWith(data, d)
		if err == nil {
			return s, d, nil
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			return nil, d, err
		}
		if furthest == nil || pe.Line >= furthest.Line {
			furthest = pe
		}
	}
	return nil, furthest.Delimiter, furthest
}

func parseWith(data []byte, d Delimiter) (Series, error) {
	if d == Whitespace {
		return parseFields(data)
	}
	return parseCSV(data, d)
}

// parseCSV handles the comma and semicolon cases through encoding/csv.
func parseCSV(data []byte, d Delimiter) (Series, error) {
	reader := csv.NewReader(bytes.NewReader(blankLines(data)))
	reader.Comma = ','
	if d == Semicolon {
		reader.Comma = ';'
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 2
	reader.ReuseRecord = true

	var out Series
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
				err = pe.Err
			}
			return nil, &ParseError{Delimiter: d, Line: line, Err: err}
		}
		line, _ := reader.FieldPos(0)
		s, err := sample(record[0], record[1])
		if err != nil {
			return nil, &ParseError{Delimiter: d, Line: line, Err: err}
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, &ParseError{Delimiter: d, Err: ErrEmpty}
	}
	return out, nil
}

// blankLines empties whitespace-only lines so encoding/csv skips them while
// keeping line numbers intact.
func blankLines(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, l := range lines {
		if len(bytes.TrimSpace(l)) == 0 {
			lines[i] = nil
		}
	}
	return bytes.Join(lines, []byte("\n"))
}

// parseFields handles runs of spaces and tabs.
func parseFields(data []byte) (Series, error) {
	var out Series
	for i, raw := range strings.Split(string(data), "\n") {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, &ParseError{
				Delimiter: Whitespace,
				Line:      i + 1,
				Err:       fmt.Errorf("expected 2 fields, got %d", len(fields)),
			}
		}
		s, err := sample(fields[0], fields[1])
		if err != nil {
			return nil, &ParseError{Delimiter: Whitespace, Line: i + 1, Err: err}
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, &ParseError{Delimiter: Whitespace, Err: ErrEmpty}
	}
	return out, nil
}

func sample(timeField, valueField string) (Sample, error) {
	t, err := number(timeField)
	if err != nil {
		return Sample{}, fmt.Errorf("time %w", err)
	}
	v, err := number(valueField)
	if err != nil {
		return Sample{}, fmt.Errorf("value %w", err)
	}
	return Sample{Time: t, Value: v}, nil
}

// number parses a finite float; NaN and ±Inf are rejected.
func number(field string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", field)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", field)
	}
	return f, nil
}
