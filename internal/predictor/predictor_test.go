package predictor

import (
	"testing"

	"github.com/lox/roshambo/internal/move"
	"github.com/lox/roshambo/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same value.
type fixedRand struct{ n int }

func (f fixedRand) IntN(int) int { return f.n }

func TestPredictEmptyHistory(t *testing.T) {
	p := New(Config{Rand: randutil.New(1)})

	for range 10 {
		assert.Equal(t, move.Paper, p.Predict(nil), "empty history always counters the opening rock")
	}

	pred := p.Analyze([]move.Move{})
	assert.Equal(t, SourceOpening, pred.Source)
	assert.Equal(t, move.Rock, pred.Opponent)
	assert.False(t, pred.Source.Random())
}

func TestPredictConfiguredOpening(t *testing.T) {
	p := New(Config{Opening: move.Scissors})
	assert.Equal(t, move.Rock, p.Predict(nil))
}

func TestPredictWarmupIsValidMove(t *testing.T) {
	p := New(Config{Rand: randutil.New(99)})
	histories := [][]move.Move{
		{R},
		{P, P},
		{S, R, P},
		{R, R, R, R},
	}
	for _, h := range histories {
		for range 20 {
			pred := p.Analyze(h)
			assert.True(t, pred.Counter.Valid())
			assert.Equal(t, SourceWarmup, pred.Source)
			assert.Equal(t, move.Counter(pred.Opponent), pred.Counter)
		}
	}
}

func TestPredictWarmupUsesRandSource(t *testing.T) {
	p := New(Config{Rand: fixedRand{n: 2}})
	pred := p.Analyze([]move.Move{R, R})
	assert.Equal(t, move.Scissors, pred.Opponent)
	assert.Equal(t, move.Rock, pred.Counter)
}

func TestPredictPatternMatch(t *testing.T) {
	// RRRRR was followed by P once; the last five moves are RRRRR again.
	history := []move.Move{R, R, R, R, R, P, R, R, R, R, R}
	p := New(Config{Rand: fixedRand{n: 0}})

	pred := p.Analyze(history)
	require.Equal(t, SourcePattern, pred.Source)
	assert.Equal(t, move.Paper, pred.Opponent)
	assert.Equal(t, move.Scissors, pred.Counter)
	assert.Equal(t, Counts{0, 1, 0}, pred.Successors)
	assert.Equal(t, 6, pred.Patterns)

	// Most frequent overall is rock, but it never decides the move.
	assert.Equal(t, move.Rock, pred.MostFrequent)
	assert.Equal(t, Counts{10, 1, 0}, pred.Frequencies)

	assert.Equal(t, pred.Counter, p.Predict(history), "pattern branch is deterministic")
}

func TestPredictPatternTieBreak(t *testing.T) {
	// Window of 1: R followed by S once and by P once; P comes first canonically.
	history := []move.Move{R, S, R, P, R}
	p := New(Config{Window: 1, Rand: fixedRand{n: 0}})

	pred := p.Analyze(history)
	require.Equal(t, SourcePattern, pred.Source)
	assert.Equal(t, Counts{0, 1, 1}, pred.Successors)
	assert.Equal(t, move.Paper, pred.Opponent)
	assert.Equal(t, move.Scissors, pred.Counter)
}

func TestPredictUnmatchedFallsBackToRandom(t *testing.T) {
	// Last window PSRRP never appeared earlier with a successor.
	history := []move.Move{R, R, R, R, R, R, P, S, R, R, P}
	p := New(Config{Rand: fixedRand{n: 1}})

	pred := p.Analyze(history)
	assert.Equal(t, SourceUnmatched, pred.Source)
	assert.True(t, pred.Source.Random())
	assert.Equal(t, move.Paper, pred.Opponent)
	assert.Equal(t, move.Scissors, pred.Counter)
}

func TestPredictHistoryEqualToWindow(t *testing.T) {
	// Five moves build an empty table, so the lookup misses.
	p := New(Config{Rand: fixedRand{n: 0}})
	pred := p.Analyze([]move.Move{R, P, S, R, P})
	assert.Equal(t, SourceUnmatched, pred.Source)
	assert.Equal(t, 0, pred.Patterns)
}

func TestPredictDoesNotMutateHistory(t *testing.T) {
	history := []move.Move{R, P, S, R, P, S, R, P, S}
	snapshot := append([]move.Move(nil), history...)

	p := New(Config{})
	p.Predict(history)
	assert.Equal(t, snapshot, history)
}

func TestPredictRandomBranchesStayInRange(t *testing.T) {
	p := New(Config{})
	history := []move.Move{S, S, P, R, P}
	for range 50 {
		got := p.Predict(history)
		assert.Contains(t, move.All[:], got)
	}
}

func TestNewDefaults(t *testing.T) {
	p := New(Config{Window: -3, Opening: move.Move(8)})
	assert.Equal(t, DefaultWindow, p.Window())
	assert.Equal(t, move.Paper, p.Predict(nil))
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "opening", SourceOpening.String())
	assert.Equal(t, "warmup", SourceWarmup.String())
	assert.Equal(t, "pattern", SourcePattern.String())
	assert.Equal(t, "unmatched", SourceUnmatched.String())
	assert.Equal(t, "unknown", Source(42).String())
}
