package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/roshambo/cmd/roshambo/shared"
	"github.com/lox/roshambo/internal/config"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command. Set values override the
// config file.
type Globals struct {
	Config   string `short:"c" default:"${config_file}" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level (debug|info|warn|error), overrides config"`
	Seed     *int64 `help:"Deterministic RNG seed, overrides config"`
	Window   int    `short:"w" help:"Pattern length used by the predictor, overrides config"`
	NoColor  bool   `help:"Disable colour output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play against the predictor in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Run the predictor against scripted opponents"`
	Predict  PredictCmd       `cmd:"" help:"Show the prediction for a move history"`
}

// load reads the config file, applies flag overrides and builds the logger.
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.Seed != nil {
		cfg.Game.Seed = *g.Seed
	}
	if g.Window != 0 {
		cfg.Game.Window = g.Window
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, shared.SetupLogger(cfg.Log.Level, os.Stderr), nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("roshambo"),
		kong.Description("Rock paper scissors against a pattern-matching predictor"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
