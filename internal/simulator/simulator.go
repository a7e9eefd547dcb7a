// Package simulator plays the predictor against scripted opponents and
// collects statistics on how well it anticipates them.
package simulator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/roshambo/internal/move"
	"github.com/lox/roshambo/internal/predictor"
	"github.com/lox/roshambo/internal/randutil"
	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds    int
	Opponents []string
	Seed      int64
	Window    int
	Opening   move.Move
	Clock     quartz.Clock
	Logger    *log.Logger
}

// Result is the outcome of a run against one opponent
type Result struct {
	Opponent string                 `json:"opponent"`
	Seed     int64                  `json:"seed"`
	Stats    *statistics.Statistics `json:"stats"`
	Score    session.Score          `json:"score"`
	Elapsed  time.Duration          `json:"elapsed"`
}

// Simulator runs predictor-vs-opponent matches
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if len(config.Opponents) == 0 {
		config.Opponents = OpponentNames
	}
	return &Simulator{
		config: config,
		logger: config.Logger.WithPrefix("simulator"),
	}
}

// Run plays every configured opponent in turn. Each opponent gets its own
// session and seeds derived from the configured seed.
func (s *Simulator) Run(ctx context.Context) ([]Result, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}

	results := make([]Result, 0, len(s.config.Opponents))
	for i, name := range s.config.Opponents {
		result, err := s.play(ctx, name, randutil.Derive(s.config.Seed, i))
		if err != nil {
			return results, fmt.Errorf("opponent %s: %w", name, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Simulator) play(ctx context.Context, name string, seed int64) (Result, error) {
	opponent, err := NewOpponent(name, randutil.New(randutil.Derive(seed, 1)))
	if err != nil {
		return Result{}, err
	}

	game := session.New(session.Config{
		Predictor: predictor.New(predictor.Config{
			Window:  s.config.Window,
			Opening: s.config.Opening,
			Rand:    randutil.New(randutil.Derive(seed, 0)),
		}),
		Clock:  s.config.Clock,
		Logger: s.config.Logger,
	})

	stats := &statistics.Statistics{}
	own := make([]move.Move, 0, s.config.Rounds)
	bot := make([]move.Move, 0, s.config.Rounds)
	start := s.config.Clock.Now()

	s.logger.Debug("Starting match", "opponent", name, "rounds", s.config.Rounds, "seed", seed)

	for i := 0; i < s.config.Rounds; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		choice := opponent.Next(own, bot)
		round, err := game.Play(choice)
		if err != nil {
			return Result{}, fmt.Errorf("round %d: %w", i+1, err)
		}
		own = append(own, choice)
		bot = append(bot, round.BotMove)

		stats.Add(statistics.RoundResult{
			Result:  round.Result,
			Source:  round.Source,
			Correct: round.Predicted == choice,
		})
	}

	if err := stats.Validate(); err != nil {
		return Result{}, fmt.Errorf("statistics validation failed: %w", err)
	}

	result := Result{
		Opponent: name,
		Seed:     seed,
		Stats:    stats,
		Score:    game.Status().Score,
		Elapsed:  s.config.Clock.Now().Sub(start),
	}

	s.logger.Info("Match finished",
		"opponent", name,
		"winRate", fmt.Sprintf("%.1f%%", stats.WinRate()*100),
		"accuracy", fmt.Sprintf("%.1f%%", stats.Accuracy()*100))

	return result, nil
}

// PrintSummary writes a report of the results to w
func PrintSummary(w io.Writer, results []Result) {
	fmt.Fprintf(w, "\n=== PREDICTOR vs SCRIPTED OPPONENTS ===\n")
	fmt.Fprintf(w, "%-10s %7s %7s %7s %7s %9s %8s  %s\n",
		"opponent", "rounds", "won", "lost", "tied", "win rate", "mean", "95% CI")

	for _, r := range results {
		low, high := r.Stats.ConfidenceInterval95()
		fmt.Fprintf(w, "%-10s %7d %7d %7d %7d %8.1f%% %+8.3f  [%+.3f, %+.3f]\n",
			r.Opponent, r.Stats.Rounds, r.Stats.Wins, r.Stats.Losses, r.Stats.Ties,
			r.Stats.WinRate()*100, r.Stats.Mean(), low, high)
	}

	fmt.Fprintf(w, "\n=== PREDICTION SOURCES ===\n")
	for _, r := range results {
		fmt.Fprintf(w, "%-10s", r.Opponent)
		for src, ss := range r.Stats.Sources {
			if ss.Rounds == 0 {
				continue
			}
			fmt.Fprintf(w, "  %s=%d (%.0f%% correct)", predictor.Source(src), ss.Rounds, ss.Accuracy()*100)
		}
		fmt.Fprintln(w)
	}
}
