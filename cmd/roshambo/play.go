package main

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/roshambo/cmd/roshambo/shared"
	"github.com/lox/roshambo/internal/predictor"
	"github.com/lox/roshambo/internal/randutil"
	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/internal/tui"
	"golang.org/x/sync/errgroup"
)

// PlayCmd runs an interactive game
type PlayCmd struct {
	LogFile string `help:"Write logs to this file while the TUI owns the terminal"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	// The TUI owns stdout, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger = shared.SetupLogger(cfg.Log.Level, logOut)

	seed, err := randutil.Resolve(cfg.Game.Seed)
	if err != nil {
		return err
	}
	logger.Info("Starting game", "seed", seed, "window", cfg.Game.Window, "opening", cfg.Opening())

	game := session.New(session.Config{
		Predictor: predictor.New(predictor.Config{
			Window:  cfg.Game.Window,
			Opening: cfg.Opening(),
			Rand:    randutil.New(seed),
		}),
		Logger: logger,
	})

	return runProgram(shared.SetupSignalHandler(logger), tui.NewModel(game, logger), logger)
}

// runProgram runs the TUI until the user quits or ctx is cancelled.
func runProgram(ctx context.Context, model tea.Model, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(model, tea.WithAltScreen())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		program.Quit()
		return nil
	})

	err := g.Wait()
	logger.Info("Game over")
	return err
}
