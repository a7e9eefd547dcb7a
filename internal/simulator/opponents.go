package simulator

import (
	"errors"
	"fmt"

	"github.com/lox/roshambo/internal/move"
	"github.com/lox/roshambo/internal/predictor"
)

// ErrUnknownOpponent is returned for an opponent name that has no strategy.
var ErrUnknownOpponent = errors.New("unknown opponent")

// Opponent is a scripted stand-in for the human player.
type Opponent interface {
	Name() string
	// Next chooses a move given the opponent's own moves and the bot's
	// moves so far, both oldest first.
	Next(own, bot []move.Move) move.Move
}

// OpponentNames lists every built-in strategy in report order.
var OpponentNames = []string{"constant", "cycle", "pattern", "beat-last", "frequency", "random"}

// NewOpponent creates the named strategy. rng is only used by "random".
func NewOpponent(name string, rng predictor.RandSource) (Opponent, error) {
	switch name {
	case "constant":
		return constantOpponent{m: move.Rock}, nil
	case "cycle":
		return sequenceOpponent{name: name, seq: []move.Move{move.Rock, move.Paper, move.Scissors}}, nil
	case "pattern":
		seq, _ := move.ParseHistory("RRPSPSR")
		return sequenceOpponent{name: name, seq: seq}, nil
	case "beat-last":
		return beatLastOpponent{}, nil
	case "frequency":
		return frequencyOpponent{}, nil
	case "random":
		if rng == nil {
			return nil, fmt.Errorf("opponent %q requires a random source", name)
		}
		return randomOpponent{rng: rng}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOpponent, name)
	}
}

// constantOpponent always plays the same move.
type constantOpponent struct {
	m move.Move
}

func (c constantOpponent) Name() string                   { return "constant" }
func (c constantOpponent) Next(_, _ []move.Move) move.Move { return c.m }

// sequenceOpponent repeats a fixed sequence.
type sequenceOpponent struct {
	name string
	seq  []move.Move
}

func (s sequenceOpponent) Name() string { return s.name }

func (s sequenceOpponent) Next(own, _ []move.Move) move.Move {
	return s.seq[len(own)%len(s.seq)]
}

// beatLastOpponent plays whatever beats the bot's previous move.
type beatLastOpponent struct{}

func (beatLastOpponent) Name() string { return "beat-last" }

func (beatLastOpponent) Next(_, bot []move.Move) move.Move {
	if len(bot) == 0 {
		return move.Rock
	}
	return move.Counter(bot[len(bot)-1])
}

// frequencyOpponent counters the bot's most common move.
type frequencyOpponent struct{}

func (frequencyOpponent) Name() string { return "frequency" }

func (frequencyOpponent) Next(_, bot []move.Move) move.Move {
	return move.Counter(predictor.CountMoves(bot).MostFrequent())
}

// randomOpponent plays uniformly at random.
type randomOpponent struct {
	rng predictor.RandSource
}

func (randomOpponent) Name() string { return "random" }

func (r randomOpponent) Next(_, _ []move.Move) move.Move {
	return move.Move(r.rng.IntN(move.Count))
}
