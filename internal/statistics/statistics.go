// Package statistics aggregates simulated round results for the predictor.
package statistics

import (
	"fmt"
	"math"

	"github.com/lox/roshambo/internal/move"
	"github.com/lox/roshambo/internal/predictor"
)

// RoundResult is the outcome of one simulated round, seen from the bot.
type RoundResult struct {
	Result  move.Result      // from the human's point of view
	Source  predictor.Source // branch that chose the bot's move
	Correct bool             // predicted move matched the opponent's move
}

// Score returns +1 when the bot won, -1 when it lost and 0 on a tie.
func (r RoundResult) Score() float64 {
	switch r.Result {
	case move.Lose:
		return 1
	case move.Win:
		return -1
	default:
		return 0
	}
}

// SourceStats tracks results for a single prediction branch
type SourceStats struct {
	Rounds  int `json:"rounds"`
	Correct int `json:"correct"`
	Wins    int `json:"wins"`
}

// Accuracy returns the fraction of correct predictions for the branch
func (s SourceStats) Accuracy() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Rounds)
}

// Statistics accumulates bot results over a run
type Statistics struct {
	Rounds int     `json:"rounds"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Ties   int     `json:"ties"`
	Sum    float64 `json:"sum"`
	Sum2   float64 `json:"-"` // sum of squares for variance

	Sources [4]SourceStats `json:"sources"` // indexed by predictor.Source
}

// Add incorporates a round result
func (s *Statistics) Add(r RoundResult) {
	score := r.Score()
	s.Rounds++
	s.Sum += score
	s.Sum2 += score * score

	switch {
	case score > 0:
		s.Wins++
	case score < 0:
		s.Losses++
	default:
		s.Ties++
	}

	if int(r.Source) >= 0 && int(r.Source) < len(s.Sources) {
		src := &s.Sources[r.Source]
		src.Rounds++
		if r.Correct {
			src.Correct++
		}
		if score > 0 {
			src.Wins++
		}
	}
}

// Mean returns the bot's average score per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of round scores
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of rounds the bot won
func (s *Statistics) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// Accuracy returns the fraction of rounds where the predicted move was played
func (s *Statistics) Accuracy() float64 {
	correct := 0
	for _, src := range s.Sources {
		correct += src.Correct
	}
	if s.Rounds == 0 {
		return 0
	}
	return float64(correct) / float64(s.Rounds)
}

// Validate checks that the tallies are consistent
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if s.Wins+s.Losses+s.Ties != s.Rounds {
		return fmt.Errorf("ledger mismatch: wins=%d losses=%d ties=%d rounds=%d",
			s.Wins, s.Losses, s.Ties, s.Rounds)
	}
	if math.Abs(s.Sum-float64(s.Wins-s.Losses)) > 1e-9 {
		return fmt.Errorf("score sum %.3f does not match wins-losses %d", s.Sum, s.Wins-s.Losses)
	}

	total := 0
	for _, src := range s.Sources {
		total += src.Rounds
	}
	if total != s.Rounds {
		return fmt.Errorf("source rounds total (%d) does not match rounds (%d)", total, s.Rounds)
	}
	return nil
}
