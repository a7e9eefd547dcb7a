package session

import (
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/roshambo/internal/move"
	"github.com/lox/roshambo/internal/predictor"
	"github.com/lox/roshambo/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))

	s := New(Config{
		Predictor: predictor.New(predictor.Config{Rand: randutil.New(1)}),
		Clock:     clock,
		Logger:    log.NewWithOptions(io.Discard, log.Options{}),
	})
	return s, clock
}

func TestFirstRoundUsesOpening(t *testing.T) {
	s, _ := newTestSession(t)

	round, err := s.Play(move.Rock)
	require.NoError(t, err)

	assert.Equal(t, 1, round.Number)
	assert.Equal(t, move.Paper, round.BotMove)
	assert.Equal(t, predictor.SourceOpening, round.Source)
	assert.Equal(t, move.Lose, round.Result)

	status := s.Status()
	assert.Equal(t, []move.Move{move.Rock}, status.History)
	assert.Equal(t, Score{Bot: 1}, status.Score)
}

func TestPredictorSeesHistoryBeforeAppend(t *testing.T) {
	s, _ := newTestSession(t)

	// Six rocks: the sixth prediction is built from five moves only, so
	// the table is empty and the branch is unmatched rather than pattern.
	var round Round
	var err error
	for range 6 {
		round, err = s.Play(move.Rock)
		require.NoError(t, err)
	}
	assert.Equal(t, predictor.SourceUnmatched, round.Source)

	// The seventh round sees RRRRRR: window RRRRR followed by R once.
	round, err = s.Play(move.Scissors)
	require.NoError(t, err)
	assert.Equal(t, predictor.SourcePattern, round.Source)
	assert.Equal(t, move.Rock, round.Predicted)
	assert.Equal(t, move.Paper, round.BotMove)
	assert.Equal(t, move.Win, round.Result)
}

func TestScoring(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.Play(move.Scissors) // bot opens with paper
	require.NoError(t, err)
	assert.Equal(t, Score{Player: 1}, s.Status().Score)

	_, err = s.Play(move.Paper)
	require.NoError(t, err)

	score := s.Status().Score
	assert.Equal(t, 2, score.Rounds())
}

func TestPauseResume(t *testing.T) {
	s, _ := newTestSession(t)

	s.Pause()
	assert.True(t, s.Paused())

	_, err := s.Play(move.Rock)
	assert.ErrorIs(t, err, ErrPaused)
	assert.Empty(t, s.Status().History, "paused rounds are not recorded")

	s.Resume()
	assert.False(t, s.Paused())
	_, err = s.Play(move.Rock)
	assert.NoError(t, err)
}

func TestInvalidMoveRejected(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.Play(move.Move(3))
	assert.ErrorIs(t, err, move.ErrInvalidMove)
	assert.Empty(t, s.Status().History)
}

func TestReset(t *testing.T) {
	s, clock := newTestSession(t)

	for _, m := range []move.Move{move.Rock, move.Paper, move.Scissors} {
		_, err := s.Play(m)
		require.NoError(t, err)
	}
	s.Pause()
	clock.Advance(time.Minute)
	s.Reset()

	status := s.Status()
	assert.Empty(t, status.History)
	assert.Equal(t, Score{}, status.Score)
	assert.False(t, status.Paused)
	assert.Nil(t, status.Last)
	assert.Equal(t, clock.Now(), status.StartedAt)
}

func TestStatusIsACopy(t *testing.T) {
	s, clock := newTestSession(t)

	_, err := s.Play(move.Rock)
	require.NoError(t, err)
	clock.Advance(30 * time.Second)

	status := s.Status()
	status.History[0] = move.Scissors
	status.Last.BotMove = move.Rock

	fresh := s.Status()
	assert.Equal(t, move.Rock, fresh.History[0])
	assert.Equal(t, move.Paper, fresh.Last.BotMove)
	assert.Equal(t, 30*time.Second, fresh.Uptime)
}

func TestRoundTimestamp(t *testing.T) {
	s, clock := newTestSession(t)
	clock.Advance(5 * time.Second)

	round, err := s.Play(move.Paper)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), round.PlayedAt)
}

func TestConcurrentPlaysAreSerialised(t *testing.T) {
	s, _ := newTestSession(t)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Play(move.Rock)
		}()
	}
	wg.Wait()

	status := s.Status()
	assert.Len(t, status.History, 50)
	assert.Equal(t, 50, status.Score.Rounds())
}

func TestStatusJSON(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.Play(move.Rock)
	require.NoError(t, err)

	data, err := json.Marshal(s.Status())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{"R"}, decoded["opponent_history"])
	assert.Equal(t, false, decoded["is_paused"])

	last := decoded["last_round"].(map[string]any)
	assert.Equal(t, "lose", last["result"])
	assert.Equal(t, "P", last["opponent_move"])
	assert.Equal(t, "opening", last["prediction_source"])
}
