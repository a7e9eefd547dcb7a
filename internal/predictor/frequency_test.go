package predictor

import (
	"testing"

	"github.com/lox/roshambo/internal/move"
	"github.com/stretchr/testify/assert"
)

const (
	R = move.Rock
	P = move.Paper
	S = move.Scissors
)

func TestCountMoves(t *testing.T) {
	c := CountMoves([]move.Move{R, R, P})
	assert.Equal(t, Counts{2, 1, 0}, c)
	assert.Equal(t, 2, c.Of(R))
	assert.Equal(t, 1, c.Of(P))
	assert.Equal(t, 0, c.Of(S))
	assert.Equal(t, 3, c.Total())

	assert.Equal(t, Counts{}, CountMoves(nil))
	assert.Equal(t, Counts{1, 0, 0}, CountMoves([]move.Move{R, move.Move(9)}))
}

func TestMostFrequent(t *testing.T) {
	tests := []struct {
		name   string
		counts Counts
		want   move.Move
	}{
		{"all zero picks first", Counts{0, 0, 0}, R},
		{"clear winner", Counts{1, 4, 2}, P},
		{"tie between paper and scissors", Counts{0, 3, 3}, P},
		{"tie between rock and scissors", Counts{2, 1, 2}, R},
		{"three way tie", Counts{5, 5, 5}, R},
		{"scissors only", Counts{0, 0, 1}, S},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.counts.MostFrequent())
		})
	}
}
