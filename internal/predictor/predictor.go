// Package predictor forecasts an opponent's next rock/paper/scissors move
// from their move history and picks the move that beats it.
//
// The forecast looks at the last Window moves, finds every earlier
// occurrence of that exact window in the history, and predicts the move
// that most often followed it. When the history is shorter than the window,
// or the window has never been seen with a successor, the prediction is
// drawn uniformly at random. An empty history always predicts the opening
// move.
//
// A Predictor keeps no state between calls besides its random source. The
// history belongs to the caller: pass the opponent's moves so far, oldest
// first and excluding the move being predicted, then append the observed
// move once the round is resolved. A Predictor is not safe for concurrent
// use and the caller must not mutate history during a call.
package predictor

import (
	rand "math/rand/v2"

	"github.com/lox/roshambo/internal/move"
)

const (
	// DefaultWindow is the pattern length used when none is configured.
	DefaultWindow = 5

	// DefaultOpening is the move predicted for an empty history.
	DefaultOpening = move.Rock
)

// RandSource supplies the random fallback. *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Source identifies which branch produced a prediction.
type Source int

const (
	SourceOpening   Source = iota // empty history
	SourceWarmup                  // history shorter than the window
	SourcePattern                 // last window found in the pattern table
	SourceUnmatched               // last window never seen with a successor
)

// String returns the branch name used in logs and reports
func (s Source) String() string {
	switch s {
	case SourceOpening:
		return "opening"
	case SourceWarmup:
		return "warmup"
	case SourcePattern:
		return "pattern"
	case SourceUnmatched:
		return "unmatched"
	default:
		return "unknown"
	}
}

// MarshalText encodes the branch name.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Random reports whether the branch picks uniformly at random.
func (s Source) Random() bool {
	return s == SourceWarmup || s == SourceUnmatched
}

// Prediction is the full result of a prediction, including diagnostics.
type Prediction struct {
	Opponent move.Move `json:"predicted"` // predicted opponent move
	Counter  move.Move `json:"play"`      // move to play
	Source   Source    `json:"source"`

	// MostFrequent is the opponent's most common move over the whole
	// history. It is reported for diagnostics only and never chooses the
	// move to play.
	MostFrequent move.Move `json:"most_frequent"`
	Frequencies  Counts    `json:"frequencies"`

	// Successors is the tally for the matched window; zero unless
	// Source is SourcePattern.
	Successors Counts `json:"successors"`
	Patterns   int    `json:"patterns"`
}

// Config configures a Predictor.
type Config struct {
	Window  int        // pattern length, DefaultWindow when zero
	Opening move.Move  // prediction for an empty history
	Rand    RandSource // random fallback, math/rand/v2 when nil
}

// Predictor implements the pattern-matching forecast.
type Predictor struct {
	window  int
	opening move.Move
	rng     RandSource
}

// New creates a predictor with the given configuration.
func New(config Config) *Predictor {
	p := &Predictor{
		window:  config.Window,
		opening: config.Opening,
		rng:     config.Rand,
	}
	if p.window < 1 {
		p.window = DefaultWindow
	}
	if !p.opening.Valid() {
		p.opening = DefaultOpening
	}
	if p.rng == nil {
		p.rng = globalRand{}
	}
	return p
}

// Window returns the configured pattern length.
func (p *Predictor) Window() int {
	return p.window
}

// Predict returns the move that beats the opponent's predicted next move.
func (p *Predictor) Predict(history []move.Move) move.Move {
	return p.Analyze(history).Counter
}

// Analyze runs the prediction and reports how it was reached.
func (p *Predictor) Analyze(history []move.Move) Prediction {
	if len(history) == 0 {
		return Prediction{
			Opponent:     p.opening,
			Counter:      move.Counter(p.opening),
			Source:       SourceOpening,
			MostFrequent: DefaultOpening,
		}
	}

	freq := CountMoves(history)
	table := BuildPatternTable(history, p.window)

	pred := Prediction{
		MostFrequent: freq.MostFrequent(),
		Frequencies:  freq,
		Patterns:     table.Len(),
	}

	switch {
	case len(history) < p.window:
		pred.Opponent = p.random()
		pred.Source = SourceWarmup
	default:
		last := history[len(history)-p.window:]
		if successors, ok := table.Lookup(last); ok {
			pred.Opponent = successors.MostFrequent()
			pred.Successors = successors
			pred.Source = SourcePattern
		} else {
			pred.Opponent = p.random()
			pred.Source = SourceUnmatched
		}
	}

	pred.Counter = move.Counter(pred.Opponent)
	return pred
}

func (p *Predictor) random() move.Move {
	return move.Move(p.rng.IntN(move.Count))
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}
