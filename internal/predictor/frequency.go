package predictor

import "github.com/lox/roshambo/internal/move"

// Counts holds one tally per move, indexed by move.Move.
type Counts [move.Count]int

// CountMoves tallies each move in seq. Moves outside the valid range are
// ignored; callers are expected to reject them with move.Parse first.
func CountMoves(seq []move.Move) Counts {
	var c Counts
	for _, m := range seq {
		if m.Valid() {
			c[m]++
		}
	}
	return c
}

// Of returns the tally for m.
func (c Counts) Of(m move.Move) int {
	if !m.Valid() {
		return 0
	}
	return c[m]
}

// Total returns the sum of all tallies.
func (c Counts) Total() int {
	return c[move.Rock] + c[move.Paper] + c[move.Scissors]
}

// MostFrequent returns the move with the highest tally. Ties go to the move
// that comes first in canonical order, so all-zero counts yield Rock.
func (c Counts) MostFrequent() move.Move {
	best := move.Rock
	for _, m := range move.All[1:] {
		if c[m] > c[best] {
			best = m
		}
	}
	return best
}
