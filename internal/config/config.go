// Package config loads game settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/roshambo/internal/move"
	"github.com/lox/roshambo/internal/predictor"
	"github.com/lox/roshambo/internal/simulator"
)

// DefaultFile is the config path used when none is given.
const DefaultFile = "roshambo.hcl"

// Config represents the complete configuration
type Config struct {
	Game       GameSettings       `hcl:"game,block"`
	Log        LogSettings        `hcl:"log,block"`
	Simulation SimulationSettings `hcl:"simulation,block"`
}

// GameSettings configures the predictor
type GameSettings struct {
	Window      int    `hcl:"window,optional"`
	OpeningMove string `hcl:"opening_move,optional"`
	Seed        int64  `hcl:"seed,optional"` // 0 draws a fresh seed per run
}

// LogSettings configures logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// SimulationSettings configures the simulate command
type SimulationSettings struct {
	Rounds    int      `hcl:"rounds,optional"`
	Opponents []string `hcl:"opponents,optional"`
}

// file mirrors Config with optional blocks so any of them may be omitted.
type file struct {
	Game       *GameSettings       `hcl:"game,block"`
	Log        *LogSettings        `hcl:"log,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			Window:      predictor.DefaultWindow,
			OpeningMove: predictor.DefaultOpening.String(),
		},
		Log: LogSettings{
			Level: "info",
		},
		Simulation: SimulationSettings{
			Rounds:    1000,
			Opponents: append([]string(nil), simulator.OpponentNames...),
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Game != nil {
		if raw.Game.Window != 0 {
			cfg.Game.Window = raw.Game.Window
		}
		if raw.Game.OpeningMove != "" {
			cfg.Game.OpeningMove = raw.Game.OpeningMove
		}
		cfg.Game.Seed = raw.Game.Seed
	}
	if raw.Log != nil && raw.Log.Level != "" {
		cfg.Log.Level = raw.Log.Level
	}
	if raw.Simulation != nil {
		if raw.Simulation.Rounds != 0 {
			cfg.Simulation.Rounds = raw.Simulation.Rounds
		}
		if len(raw.Simulation.Opponents) > 0 {
			cfg.Simulation.Opponents = raw.Simulation.Opponents
		}
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.Window < 1 {
		return fmt.Errorf("game: window must be at least 1, got %d", c.Game.Window)
	}
	if _, err := move.Parse(c.Game.OpeningMove); err != nil {
		return fmt.Errorf("game: opening_move: %w", err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: invalid level %q", c.Log.Level)
	}
	if c.Simulation.Rounds < 1 {
		return fmt.Errorf("simulation: rounds must be positive, got %d", c.Simulation.Rounds)
	}
	for _, name := range c.Simulation.Opponents {
		if _, err := simulator.NewOpponent(name, nopRand{}); err != nil {
			return fmt.Errorf("simulation: %w", err)
		}
	}
	return nil
}

// Opening returns the parsed opening move
func (c *Config) Opening() move.Move {
	m, err := move.Parse(c.Game.OpeningMove)
	if err != nil {
		return predictor.DefaultOpening
	}
	return m
}

type nopRand struct{}

func (nopRand) IntN(int) int { return 0 }
