package statistics

import (
	"math"
	"testing"

	"github.com/lox/roshambo/internal/move"
	"github.com/lox/roshambo/internal/predictor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyStatistics(t *testing.T) {
	var s Statistics
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.StdError())
	assert.Zero(t, s.WinRate())
	assert.Zero(t, s.Accuracy())
	assert.Error(t, s.Validate())
}

func TestAdd(t *testing.T) {
	var s Statistics
	s.Add(RoundResult{Result: move.Lose, Source: predictor.SourcePattern, Correct: true})
	s.Add(RoundResult{Result: move.Lose, Source: predictor.SourcePattern, Correct: true})
	s.Add(RoundResult{Result: move.Win, Source: predictor.SourceWarmup})
	s.Add(RoundResult{Result: move.Tie, Source: predictor.SourceOpening})

	require.NoError(t, s.Validate())
	assert.Equal(t, 4, s.Rounds)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 1, s.Ties)
	assert.InDelta(t, 0.25, s.Mean(), 1e-9)
	assert.InDelta(t, 0.5, s.WinRate(), 1e-9)
	assert.InDelta(t, 0.5, s.Accuracy(), 1e-9)

	pattern := s.Sources[predictor.SourcePattern]
	assert.Equal(t, SourceStats{Rounds: 2, Correct: 2, Wins: 2}, pattern)
	assert.InDelta(t, 1.0, pattern.Accuracy(), 1e-9)
	assert.Zero(t, s.Sources[predictor.SourceUnmatched].Accuracy())
}

func TestSpread(t *testing.T) {
	var s Statistics
	for range 50 {
		s.Add(RoundResult{Result: move.Lose})
		s.Add(RoundResult{Result: move.Win})
	}
	assert.InDelta(t, 0, s.Mean(), 1e-9)
	// Sample variance of 50 x +1 and 50 x -1.
	assert.InDelta(t, 100.0/99.0, s.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(100.0/99.0)/10, s.StdError(), 1e-9)

	low, high := s.ConfidenceInterval95()
	assert.Less(t, low, 0.0)
	assert.Greater(t, high, 0.0)
	assert.InDelta(t, -low, high, 1e-9)
}

func TestValidateDetectsMismatch(t *testing.T) {
	s := Statistics{Rounds: 2, Wins: 1}
	assert.ErrorContains(t, s.Validate(), "ledger mismatch")
}
