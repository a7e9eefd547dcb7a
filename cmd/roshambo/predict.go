package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/roshambo/internal/move"
	"github.com/lox/roshambo/internal/predictor"
	"github.com/lox/roshambo/internal/randutil"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
)

// PredictCmd prints the prediction for a history given on the command line
type PredictCmd struct {
	History string `arg:"" optional:"" help:"Opponent history, oldest first (e.g. RRPSP)"`
	JSON    bool   `help:"Print the prediction as JSON"`
}

func (c *PredictCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	history, err := move.ParseHistory(c.History)
	if err != nil {
		return err
	}

	seed, err := randutil.Resolve(cfg.Game.Seed)
	if err != nil {
		return err
	}

	p := predictor.New(predictor.Config{
		Window:  cfg.Game.Window,
		Opening: cfg.Opening(),
		Rand:    randutil.New(seed),
	})
	pred := p.Analyze(history)
	logger.Debug("Prediction", "history", c.History, "source", pred.Source, "seed", seed)

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pred)
	}

	printPrediction(os.Stdout, history, pred, predictor.BuildPatternTable(history, p.Window()))
	return nil
}

func printPrediction(w io.Writer, history []move.Move, pred predictor.Prediction, table *predictor.PatternTable) {
	row := func(label, value string) {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-14s", label)), valueStyle.Render(value))
	}

	row("history", fmt.Sprintf("%s (%d moves)", move.FormatHistory(history), len(history)))
	row("predicted", pred.Opponent.String())
	row("play", fmt.Sprintf("%s %s", pred.Counter.Emoji(), pred.Counter))
	row("branch", pred.Source.String())
	row("most frequent", pred.MostFrequent.String())
	row("frequencies", formatCounts(pred.Frequencies))

	entries := table.Entries()
	if len(entries) == 0 {
		return
	}

	var last string
	if len(history) >= table.Window() {
		last = move.FormatHistory(history[len(history)-table.Window():])
	}

	fmt.Fprintf(w, "\n%s\n", labelStyle.Render(fmt.Sprintf("patterns (window %d)", table.Window())))
	for _, e := range entries {
		line := fmt.Sprintf("  %s -> %s", e.Pattern, formatCounts(e.Successors))
		if e.Pattern == last {
			line = matchStyle.Render(line + "  <- current")
		}
		fmt.Fprintln(w, line)
	}
}

func formatCounts(c predictor.Counts) string {
	return fmt.Sprintf("R:%d P:%d S:%d", c.Of(move.Rock), c.Of(move.Paper), c.Of(move.Scissors))
}
