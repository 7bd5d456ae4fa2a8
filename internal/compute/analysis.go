package compute

import (
	"sort"

	"github.com/sensorplot/sensorplot/internal/series"
)

// Repeat is a timestamp that occurs more than once in a series.
type Repeat struct {
	Time  float64
	Count int
}

// Analysis summarises timestamp quality before repair.
type Analysis struct {
	Samples int
	Unique  int

	// ConsecutiveDuplicates counts adjacent pairs with equal timestamps.
	ConsecutiveDuplicates int

	// Backward counts adjacent pairs where time decreases.
	Backward int

	// Repeats lists every timestamp seen more than once, most frequent first,
	// ties ordered by time.
	Repeats []Repeat
}

// NeedsRepair reports whether any adjacent pair is not strictly increasing.
func (a Analysis) NeedsRepair() bool {
	return a.ConsecutiveDuplicates > 0 || a.Backward > 0
}

// Analyze inspects the timestamps of s.
func Analyze(s series.Series) Analysis {
	counts := make(map[float64]int, len(s))
	a := Analysis{Samples: len(s)}
	for i, p := range s {
		counts[p.Time]++
		if i == 0 {
			continue
		}
		switch prev := s[i-1].Time; {
		case p.Time == prev:
			a.ConsecutiveDuplicates++
		case p.Time < prev:
			a.Backward++
		}
	}
	a.Unique = len(counts)

	for t, c := range counts {
		if c > 1 {
			a.Repeats = append(a.Repeats, Repeat{Time: t, Count: c})
		}
	}
	sort.Slice(a.Repeats, func(i, j int) bool {
		if a.Repeats[i].Count != a.Repeats[j].Count {
			return a.Repeats[i].Count > a.Repeats[j].Count
		}
		return a.Repeats[i].Time < a.Repeats[j].Time
	})
	return a
}
