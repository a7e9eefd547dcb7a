// Package session owns the state of a single game: the opponent's move
// history, the running score and the pause flag. It is the caller of the
// predictor and enforces the round timing the predictor relies on.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/roshambo/internal/move"
	"github.com/lox/roshambo/internal/predictor"
)

// ErrPaused is returned by Play while the game is paused.
var ErrPaused = errors.New("game is paused")

// Score tallies round results. Player counts the human's wins and Bot the
// predictor's wins.
type Score struct {
	Player int `json:"player_score"`
	Bot    int `json:"opponent_score"`
	Ties   int `json:"tie_score"`
}

// Rounds returns the number of scored rounds.
func (s Score) Rounds() int {
	return s.Player + s.Bot + s.Ties
}

// Round describes one resolved round.
type Round struct {
	Number     int              `json:"round"`
	PlayerMove move.Move        `json:"player_move"`
	BotMove    move.Move        `json:"opponent_move"`
	Predicted  move.Move        `json:"predicted_move"`
	Source     predictor.Source `json:"prediction_source"`
	Result     move.Result      `json:"result"`
	PlayedAt   time.Time        `json:"played_at"`
}

// Status is a point-in-time copy of the session state.
type Status struct {
	History   []move.Move   `json:"opponent_history"`
	Score     Score         `json:"score"`
	Paused    bool          `json:"is_paused"`
	Last      *Round        `json:"last_round,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Uptime    time.Duration `json:"uptime"`
}

// Config holds the collaborators of a Session.
type Config struct {
	Predictor *predictor.Predictor
	Clock     quartz.Clock
	Logger    *log.Logger
}

// Session is one game between a human and the predictor. Methods are safe
// for concurrent use; rounds are serialised so the predictor never sees
// more than one call at a time.
type Session struct {
	mu        sync.Mutex
	predictor *predictor.Predictor
	clock     quartz.Clock
	logger    *log.Logger

	history   []move.Move
	score     Score
	paused    bool
	last      *Round
	startedAt time.Time
}

// New creates a session with an empty history.
func New(config Config) *Session {
	if config.Predictor == nil {
		config.Predictor = predictor.New(predictor.Config{})
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	return &Session{
		predictor: config.Predictor,
		clock:     config.Clock,
		logger:    config.Logger.WithPrefix("session"),
		startedAt: config.Clock.Now(),
	}
}

// Play resolves a round in which the human plays choice. The predictor is
// consulted with the history as it stood before this round; choice is
// appended only after the bot's move is fixed.
func (s *Session) Play(choice move.Move) (Round, error) {
	if !choice.Valid() {
		return Round{}, move.ErrInvalidMove
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		return Round{}, ErrPaused
	}

	pred := s.predictor.Analyze(s.history)
	s.history = append(s.history, choice)

	result := move.Outcome(choice, pred.Counter)
	switch result {
	case move.Win:
		s.score.Player++
	case move.Lose:
		s.score.Bot++
	default:
		s.score.Ties++
	}

	round := Round{
		Number:     len(s.history),
		PlayerMove: choice,
		BotMove:    pred.Counter,
		Predicted:  pred.Opponent,
		Source:     pred.Source,
		Result:     result,
		PlayedAt:   s.clock.Now(),
	}
	s.last = &round

	s.logger.Debug("Round played",
		"round", round.Number,
		"player", choice,
		"bot", pred.Counter,
		"predicted", pred.Opponent,
		"source", pred.Source,
		"result", result)

	return round, nil
}

// Pause stops Play from accepting rounds until Resume is called.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
	s.logger.Info("Game paused", "rounds", len(s.history))
}

// Resume re-enables Play.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
	s.logger.Info("Game resumed", "rounds", len(s.history))
}

// Reset discards history, scores and the pause flag.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.score = Score{}
	s.paused = false
	s.last = nil
	s.startedAt = s.clock.Now()
	s.logger.Info("Game reset")
}

// Paused reports whether the game is paused.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Status returns a copy of the current state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		History:   append([]move.Move(nil), s.history...),
		Score:     s.score,
		Paused:    s.paused,
		StartedAt: s.startedAt,
		Uptime:    s.clock.Now().Sub(s.startedAt),
	}
	if s.last != nil {
		last := *s.last
		status.Last = &last
	}
	return status
}
