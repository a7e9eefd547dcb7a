// Package move defines the three rock/paper/scissors moves, the dominance
// cycle between them and parsing of move symbols.
package move

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMove is returned when a symbol does not name one of the three moves.
var ErrInvalidMove = errors.New("invalid move symbol")

// Move is one of Rock, Paper or Scissors.
type Move uint8

// Canonical order. Tie-breaks everywhere prefer the earlier move.
const (
	Rock Move = iota
	Paper
	Scissors
)

// Count is the number of distinct moves.
const Count = 3

// All lists the moves in canonical order.
var All = [Count]Move{Rock, Paper, Scissors}

// String returns the full lowercase name of the move
func (m Move) String() string {
	switch m {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return "?"
	}
}

// Symbol returns the single-letter symbol of the move
func (m Move) Symbol() string {
	switch m {
	case Rock:
		return "R"
	case Paper:
		return "P"
	case Scissors:
		return "S"
	default:
		return "?"
	}
}

// Emoji returns a pictogram for display
func (m Move) Emoji() string {
	switch m {
	case Rock:
		return "🪨"
	case Paper:
		return "📄"
	case Scissors:
		return "✂️"
	default:
		return "❓"
	}
}

// Valid reports whether m is one of the three moves.
func (m Move) Valid() bool {
	return m < Count
}

// Counter returns the move that defeats m. Applying it three times returns m.
func Counter(m Move) Move {
	return (m + 1) % Count
}

// MarshalText encodes the move as its single-letter symbol.
func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMove, uint8(m))
	}
	return []byte(m.Symbol()), nil
}

// UnmarshalText accepts anything Parse accepts.
func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Beats reports whether a defeats b.
func Beats(a, b Move) bool {
	return a == Counter(b)
}

// Parse converts a symbol ("R", "paper", ...) into a Move. Matching is
// case-insensitive and surrounding whitespace is ignored.
func Parse(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "rock":
		return Rock, nil
	case "p", "paper":
		return Paper, nil
	case "s", "scissors":
		return Scissors, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMove, s)
}

// ParseHistory parses a compact history such as "RRPS" or "r, p, s".
// Whitespace and commas between symbols are ignored.
func ParseHistory(s string) ([]Move, error) {
	var history []Move
	for i, r := range s {
		if r == ',' || r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		m, err := Parse(string(r))
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		history = append(history, m)
	}
	return history, nil
}

// FormatHistory renders moves as a compact symbol string, the inverse of
// ParseHistory.
func FormatHistory(history []Move) string {
	var b strings.Builder
	b.Grow(len(history))
	for _, m := range history {
		b.WriteString(m.Symbol())
	}
	return b.String()
}

// Result is the outcome of a round from the human player's point of view.
type Result int

const (
	Tie Result = iota
	Win
	Lose
)

// String returns the result as reported to clients
func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "tie"
	}
}

// MarshalText encodes the result as "win", "lose" or "tie".
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Outcome scores a round in which the player chose player and the bot chose bot.
func Outcome(player, bot Move) Result {
	switch {
	case player == bot:
		return Tie
	case Beats(player, bot):
		return Win
	default:
		return Lose
	}
}
