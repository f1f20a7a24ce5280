package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hazadus/fb24/internal/logging"
	"github.com/hazadus/fb24/internal/player"
	"github.com/hazadus/fb24/internal/tui"
	"github.com/hazadus/fb24/internal/viewport"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch the same track list in the terminal, with a playback screen and progress bar.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI(ctx)
		},
	}
}

func (app *Application) launchTUI(ctx context.Context) error {
	cfg := app.Config

	// Консольный журнал испортил бы альтернативный экран
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log, closer, err := logging.NewFile(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer closer.Close()
	app.Logger = log

	policy, err := viewport.ParsePolicy(cfg.Selection)
	if err != nil {
		return err
	}

	p := player.NewPlayer(logging.Component(log, "player"))
	defer p.Close()

	if err := app.autoplay(ctx, p); err != nil {
		return err
	}

	src, err := app.source()
	if err != nil {
		return err
	}
	names, err := app.listNames(ctx, src)
	if err != nil {
		return err
	}

	var playing string
	if cfg.Track != "" {
		playing = filepath.Base(cfg.Track)
	}

	tuiApp := tui.NewApp(tui.Options{
		Title: src.Location(),
		Names: names,
		Open: func(name string) (io.ReadCloser, error) {
			return src.Open(ctx, name)
		},
		Player:   p,
		Bindings: app.bindings(),
		Policy:   policy,
		Loops:    cfg.Loops,
		Label:    app.labeler(src),
		Playing:  playing,
		Log:      logging.Component(log, "tui"),
	})

	return tuiApp.Run()
}
