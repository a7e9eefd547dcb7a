package main

import (
	"os"

	"github.com/lox/roshambo/cmd/roshambo/shared"
	"github.com/lox/roshambo/internal/fileutil"
	"github.com/lox/roshambo/internal/randutil"
	"github.com/lox/roshambo/internal/simulator"
)

// SimulateCmd plays the predictor against scripted opponents
type SimulateCmd struct {
	Rounds    int      `short:"n" help:"Rounds per opponent, overrides config"`
	Opponents []string `short:"o" help:"Opponents to play (constant, cycle, pattern, beat-last, frequency, random)"`
	Output    string   `help:"Write a JSON report to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	if c.Rounds > 0 {
		cfg.Simulation.Rounds = c.Rounds
	}
	if len(c.Opponents) > 0 {
		cfg.Simulation.Opponents = c.Opponents
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	seed, err := randutil.Resolve(cfg.Game.Seed)
	if err != nil {
		return err
	}
	logger.Info("Starting simulation",
		"rounds", cfg.Simulation.Rounds,
		"opponents", len(cfg.Simulation.Opponents),
		"seed", seed)

	sim := simulator.New(simulator.Config{
		Rounds:    cfg.Simulation.Rounds,
		Opponents: cfg.Simulation.Opponents,
		Seed:      seed,
		Window:    cfg.Game.Window,
		Opening:   cfg.Opening(),
		Logger:    logger,
	})

	results, err := sim.Run(shared.SetupSignalHandler(logger))
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, results)

	if c.Output != "" {
		if err := fileutil.WriteJSONAtomic(c.Output, results); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Output)
	}
	return nil
}
