package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hazadus/fb24/internal/config"
	"github.com/hazadus/fb24/internal/library"
	"github.com/hazadus/fb24/internal/logging"
	"github.com/hazadus/fb24/internal/metadata"
	"github.com/hazadus/fb24/internal/player"
	"github.com/hazadus/fb24/internal/render"
	"github.com/hazadus/fb24/internal/viewport"
	"github.com/hazadus/fb24/internal/window"
)

// createWindowCommand создает команду window с привязкой к экземпляру приложения
func (app *Application) createWindowCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Open the player window (default command)",
		Long:  `Open the player window with the list of files from music_dir and autoplay the configured track.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.runWindow(ctx)
		},
	}
}

func (app *Application) runWindow(ctx context.Context) error {
	cfg := app.Config

	policy, err := viewport.ParsePolicy(cfg.Selection)
	if err != nil {
		return err
	}
	border, err := viewport.ParseBorderMode(cfg.Border)
	if err != nil {
		return err
	}
	fg, err := config.ParseColor(cfg.Foreground)
	if err != nil {
		return err
	}

	p := player.NewPlayer(logging.Component(app.Logger, "player"))
	defer p.Close()

	if err := app.autoplay(ctx, p); err != nil {
		return err
	}

	typesetter, err := render.NewTypesetter(cfg.FontPath, cfg.FontSize, fg)
	if err != nil {
		return err
	}

	src, err := app.source()
	if err != nil {
		typesetter.Close()
		return err
	}
	names, err := app.listNames(ctx, src)
	if err != nil {
		typesetter.Close()
		return err
	}

	// Game владеет шрифтом с этого момента
	game := window.New(ctx, window.Options{
		Title:    cfg.Window.Title,
		Width:    cfg.Window.Width,
		Height:   cfg.Window.Height,
		X:        cfg.Window.X,
		Y:        cfg.Window.Y,
		Policy:   policy,
		Border:   border,
		Bindings: app.bindings(),
	}, typesetter, names, logging.Component(app.Logger, "window"))

	game.OnPlay(app.playFromList(ctx, src, p, game.SetTitle))
	game.OnPause(p.Pause)

	app.Logger.Info().Int("tracks", len(names)).Msg("окно открыто")
	return game.Run()
}

// trackPlayer часть плеера, нужная окну для запуска трека
type trackPlayer interface {
	Play(rc io.ReadCloser, name string, loops int) error
}

// playFromList возвращает обработчик выбора строки в окне.
// Файл, который не удалось воспроизвести, только пишется в лог: окно остается открытым.
func (app *Application) playFromList(ctx context.Context, src library.Source, p trackPlayer, setTitle func(string)) func(int, string) {
	labels := app.labeler(src)
	return func(_ int, name string) {
		rc, err := src.Open(ctx, name)
		if err == nil {
			err = p.Play(rc, name, app.Config.Loops)
		}
		if err != nil {
			app.Logger.Warn().Err(err).Str("track", name).Msg("ошибка воспроизведения")
			return
		}
		if labels != nil {
			setTitle(fmt.Sprintf("%s - %s", app.Config.Window.Title, labels(name)))
		}
	}
}

// autoplay запускает трек из конфигурации до открытия окна
func (app *Application) autoplay(ctx context.Context, p *player.Player) error {
	track := app.Config.Track
	if track == "" {
		app.Logger.Info().Msg("трек для автозапуска не задан")
		return nil
	}

	rc, err := library.Open(ctx, track, app.s3Options())
	if err != nil {
		return fmt.Errorf("ошибка открытия трека %s: %w", track, err)
	}
	if err := p.Play(rc, track, app.Config.Loops); err != nil {
		return fmt.Errorf("ошибка воспроизведения %s: %w", track, err)
	}
	return nil
}

// labeler возвращает функцию подписи трека по тегам. Только для каталога на диске.
func (app *Application) labeler(src library.Source) func(name string) string {
	dir, ok := src.(*library.DirSource)
	if !ok {
		return nil
	}
	extractor := metadata.NewExtractor()
	return func(name string) string {
		return extractor.ExtractFromFile(dir.Path(name)).Label()
	}
}
