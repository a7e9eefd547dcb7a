package predictor

import (
	"sort"

	"github.com/lox/roshambo/internal/move"
)

// PatternTable maps every length-n window seen in a history to the tally of
// moves that immediately followed it.
type PatternTable struct {
	window  int
	entries map[string]Counts
}

// BuildPatternTable scans history for every window of n consecutive moves
// that has a successor and counts what that successor was. A history no
// longer than n produces an empty table. n below 1 is treated as 1.
func BuildPatternTable(history []move.Move, n int) *PatternTable {
	if n < 1 {
		n = 1
	}
	t := &PatternTable{
		window:  n,
		entries: make(map[string]Counts),
	}
	for i := 0; i+n < len(history); i++ {
		next := history[i+n]
		if !next.Valid() {
			continue
		}
		key := move.FormatHistory(history[i : i+n])
		counts := t.entries[key]
		counts[next]++
		t.entries[key] = counts
	}
	return t
}

// Window returns the pattern length the table was built with.
func (t *PatternTable) Window() int {
	return t.window
}

// Len returns the number of distinct patterns.
func (t *PatternTable) Len() int {
	return len(t.entries)
}

// Lookup returns the successor tally for pattern, and false when the
// pattern was never followed by a move.
func (t *PatternTable) Lookup(pattern []move.Move) (Counts, bool) {
	if len(pattern) != t.window {
		return Counts{}, false
	}
	counts, ok := t.entries[move.FormatHistory(pattern)]
	return counts, ok
}

// Entry is a single pattern and its successor tally.
type Entry struct {
	Pattern    string
	Successors Counts
}

// Entries returns all patterns sorted by symbol string.
func (t *PatternTable) Entries() []Entry {
	entries := make([]Entry, 0, len(t.entries))
	for pattern, counts := range t.entries {
		entries = append(entries, Entry{Pattern: pattern, Successors: counts})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Pattern < entries[j].Pattern
	})
	return entries
}
